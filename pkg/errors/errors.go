package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeMissingInput  ErrorType = "missing_input"
	ErrorTypeOutOfRange    ErrorType = "out_of_range"
	ErrorTypeNoContent     ErrorType = "no_content"
	ErrorTypeEngineFailure ErrorType = "engine_failure"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewMissingInputError reports a required field or selector the caller left out.
func NewMissingInputError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeMissingInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewOutOfRangeError reports a page number that does not exist in the document.
func NewOutOfRangeError(message string, details ...string) *AppError {
	return &AppError{
		Type:       ErrorTypeOutOfRange,
		Message:    message,
		Details:    firstDetail(details),
		StatusCode: http.StatusBadRequest,
	}
}

// NewNoContentError reports a document or page without extractable text.
func NewNoContentError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNoContent,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewEngineFailureError wraps an extraction or synthesis engine error.
// The cause's message is carried in Details so callers see what the engine said.
func NewEngineFailureError(message string, cause error) *AppError {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypeEngineFailure,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    firstDetail(details),
		StatusCode: http.StatusBadRequest,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// As extracts the AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := As(err); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func firstDetail(details []string) string {
	if len(details) > 0 {
		return details[0]
	}
	return ""
}
