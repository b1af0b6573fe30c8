// Package handler provides HTTP handlers for the conversion web app.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"pdf-to-speech/internal/domain"
	"pdf-to-speech/internal/service"
	apperrors "pdf-to-speech/pkg/errors"

	"github.com/gorilla/mux"
)

const multipartMemory = 8 << 20

// ConversionHandler handles uploads and serves generated audio.
type ConversionHandler struct {
	service       domain.ConversionService
	maxUploadSize int64
	logger        domain.Logger
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(service domain.ConversionService, maxUploadSize int64, logger domain.Logger) *ConversionHandler {
	return &ConversionHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

type conversionResponse struct {
	*domain.ConversionResult
	AudioURL    string `json:"audio_url"`
	DownloadURL string `json:"download_url"`
	DurationMS  int64  `json:"duration_ms"`
}

// Index renders the upload form.
func (h *ConversionHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderIndex(w, http.StatusOK, indexView{})
}

// Convert handles a multipart upload with fields pdf (or file), page and read_full.
func (h *ConversionHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			appErr := apperrors.NewValidationError("File too large.", fmt.Sprintf("maximum upload size is %d bytes", h.maxUploadSize))
			appErr.StatusCode = http.StatusRequestEntityTooLarge
			h.respondError(w, r, appErr)
		case errors.Is(err, http.ErrNotMultipart):
			h.respondError(w, r, apperrors.NewMissingInputError("No PDF file uploaded."))
		default:
			h.respondError(w, r, apperrors.NewValidationError("Invalid form data.", err.Error()))
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("pdf")
	if errors.Is(err, http.ErrMissingFile) {
		file, header, err = r.FormFile("file")
	}
	if err != nil {
		h.respondError(w, r, apperrors.NewMissingInputError("No PDF file uploaded."))
		return
	}
	defer file.Close()

	if header.Size == 0 {
		h.respondError(w, r, apperrors.NewMissingInputError("No PDF file uploaded."))
		return
	}

	selector, err := domain.ParseSelector(r.FormValue("page"), domain.ParseBool(r.FormValue("read_full")))
	if err != nil {
		h.respondError(w, r, service.ClassifySelectorError(err))
		return
	}

	result, err := h.service.Convert(r.Context(), domain.ConversionRequest{
		Document: file,
		Filename: header.Filename,
		Selector: selector,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	audioURL := "/media/" + url.PathEscape(result.Artifact.Name)
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, conversionResponse{
			ConversionResult: result,
			AudioURL:         audioURL,
			DownloadURL:      audioURL + "?download=1",
			DurationMS:       result.Duration.Milliseconds(),
		})
		return
	}
	renderResult(w, resultView{
		Result:      result,
		Filename:    header.Filename,
		AudioURL:    audioURL,
		DownloadURL: audioURL + "?download=1",
	})
}

// ServeAudio streams a generated artifact. ?download=1 asks the browser to save it.
func (h *ConversionHandler) ServeAudio(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	artifact, err := h.service.ResolveArtifact(name)
	if err != nil {
		writeAppError(w, err)
		return
	}

	f, err := os.Open(artifact.Path)
	if err != nil {
		if os.IsNotExist(err) {
			writeAppError(w, apperrors.NewNotFoundError("Audio file not found"))
			return
		}
		h.logger.Error("Failed to open artifact", err, "artifact", name)
		writeError(w, http.StatusInternalServerError, "Failed to read audio file")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.logger.Error("Failed to stat artifact", err, "artifact", name)
		writeError(w, http.StatusInternalServerError, "Failed to read audio file")
		return
	}

	disposition := "inline"
	if domain.ParseBool(r.URL.Query().Get("download")) {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, artifact.Name))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, artifact.Name, info.ModTime(), f)
}

func (h *ConversionHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if wantsJSON(r) {
		writeAppError(w, err)
		return
	}

	status := apperrors.GetStatusCode(err)
	view := indexView{Error: "Internal server error"}
	if appErr, ok := apperrors.As(err); ok {
		view.Error = appErr.Message
		if appErr.Type != apperrors.ErrorTypeInternal {
			view.Details = appErr.Details
		}
	}
	renderIndex(w, status, view)
}
