package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "pdf-to-speech/pkg/errors"
)

type errorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type,omitempty"`
	Details string `json:"details,omitempty"`
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

// writeAppError maps err onto its status code. Errors outside the AppError
// taxonomy are reported as a generic 500.
func writeAppError(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	resp := errorResponse{Error: appErr.Message, Type: string(appErr.Type)}
	if appErr.Type != apperrors.ErrorTypeInternal {
		resp.Details = appErr.Details
	}
	writeJSON(w, appErr.StatusCode, resp)
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// wantsJSON reports whether the client asked for a JSON response instead of HTML.
func wantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
