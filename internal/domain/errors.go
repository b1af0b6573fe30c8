package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidName    = errors.New("invalid storage name")
	ErrEmptyUpload    = errors.New("empty upload")
	ErrPageRequired   = errors.New("page number is required if not reading the full document")
	ErrNoSelector     = errors.New("page selector is required")
	ErrUnsupportedTTS = errors.New("unsupported tts provider")
)

// PageRangeError reports a page outside [1, PageCount].
// PageCount is -1 when the document was never opened.
type PageRangeError struct {
	Page      int
	PageCount int
}

func (e *PageRangeError) Error() string {
	if e.PageCount < 0 {
		return fmt.Sprintf("page %d is out of range", e.Page)
	}
	return fmt.Sprintf("page %d is out of range (document has %d pages)", e.Page, e.PageCount)
}
