package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pdf-to-speech/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// pageSource is the slice of the MuPDF document API the extractor needs.
type pageSource interface {
	NumPage() int
	Text(pageNumber int) (string, error)
	Close() error
}

func openFitz(path string) (pageSource, error) {
	return fitz.New(path)
}

// PDFExtractor handles PDF text extraction
type PDFExtractor struct {
	logger      domain.Logger
	pageTimeout time.Duration
	open        func(path string) (pageSource, error)
}

// NewPDFExtractor creates a new PDF extractor backed by go-fitz.
// pageTimeout bounds a single page's text extraction; zero disables it.
func NewPDFExtractor(logger domain.Logger, pageTimeout time.Duration) *PDFExtractor {
	return &PDFExtractor{
		logger:      logger,
		pageTimeout: pageTimeout,
		open:        openFitz,
	}
}

// Extract opens the document at path and returns the text of the selected pages.
// Pages are visited in increasing order; a page with no text contributes "".
func (e *PDFExtractor) Extract(ctx context.Context, path string, selector domain.PageSelector) (*domain.ExtractedText, error) {
	if !selector.IsSet() {
		return nil, domain.ErrNoSelector
	}

	doc, err := e.open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	// pending is non-nil while an abandoned page call still uses the document.
	var pending <-chan struct{}
	defer func() {
		if pending != nil {
			go func() {
				<-pending
				_ = doc.Close()
			}()
			return
		}
		_ = doc.Close()
	}()

	pageCount := doc.NumPage()
	if err := selector.CheckRange(pageCount); err != nil {
		return nil, err
	}

	var pages []int
	if page, ok := selector.Page(); ok {
		pages = []int{page}
	} else {
		pages = make([]int, 0, pageCount)
		for p := 1; p <= pageCount; p++ {
			pages = append(pages, p)
		}
	}

	result := &domain.ExtractedText{
		PageCount: pageCount,
		PagesRead: make([]int, 0, len(pages)),
	}
	parts := make([]string, 0, len(pages))

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.logger.Debug("PDF processing page", "page", page, "total", pageCount)

		text, inFlight, err := e.pageText(ctx, doc, page-1)
		if inFlight != nil {
			pending = inFlight
		}
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", page, err)
		}

		text = strings.TrimSpace(sanitizeText(text))
		if text == "" {
			result.EmptyPages = append(result.EmptyPages, page)
		}
		parts = append(parts, text)
		result.PagesRead = append(result.PagesRead, page)
	}

	result.Content = strings.Join(parts, "\n")
	return result, nil
}

// pageText runs doc.Text for a 0-indexed page under the page timeout. When it
// gives up on a page it returns a channel closed once the Text call returns;
// the document must stay open until then.
func (e *PDFExtractor) pageText(ctx context.Context, doc pageSource, idx int) (string, <-chan struct{}, error) {
	if e.pageTimeout <= 0 {
		text, err := doc.Text(idx)
		return text, nil, err
	}

	type pageResult struct {
		text string
		err  error
	}
	resultCh := make(chan pageResult, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		t, err := doc.Text(idx)
		resultCh <- pageResult{text: t, err: err}
	}()

	timer := time.NewTimer(e.pageTimeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		return res.text, nil, res.err
	case <-timer.C:
		e.logger.Warn("PDF page extraction timeout", "page", idx+1, "timeout_sec", int(e.pageTimeout.Seconds()))
		return "", done, fmt.Errorf("timeout after %v", e.pageTimeout)
	case <-ctx.Done():
		return "", done, ctx.Err()
	}
}

// sanitizeText removes NUL and other control characters and invalid UTF-8,
// keeping tabs and line breaks.
func sanitizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
			continue
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7F:
			continue
		case r >= 0x80 && r < 0xA0:
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
