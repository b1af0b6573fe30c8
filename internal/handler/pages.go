package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"pdf-to-speech/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type indexView struct {
	Error   string
	Details string
}

type resultView struct {
	Result      *domain.ConversionResult
	Filename    string
	AudioURL    string
	DownloadURL string
}

func renderIndex(w http.ResponseWriter, status int, view indexView) {
	render(w, status, "index.html", view)
}

func renderResult(w http.ResponseWriter, view resultView) {
	render(w, http.StatusOK, "result.html", view)
}

func render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
