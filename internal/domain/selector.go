package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type selectorKind int

const (
	selectorUnset selectorKind = iota
	selectorSinglePage
	selectorFullDocument
)

// PageSelector chooses which page(s) of a document to narrate.
// The zero value selects nothing and is rejected by the conversion service.
type PageSelector struct {
	kind selectorKind
	page int
}

// SinglePage selects the 1-based page n.
func SinglePage(n int) PageSelector {
	return PageSelector{kind: selectorSinglePage, page: n}
}

// FullDocument selects every page in document order.
func FullDocument() PageSelector {
	return PageSelector{kind: selectorFullDocument}
}

// IsSet reports whether a variant has been chosen.
func (s PageSelector) IsSet() bool {
	return s.kind != selectorUnset
}

// IsFullDocument reports whether the whole document is selected.
func (s PageSelector) IsFullDocument() bool {
	return s.kind == selectorFullDocument
}

// Page returns the selected page for SinglePage selectors.
func (s PageSelector) Page() (int, bool) {
	if s.kind != selectorSinglePage {
		return 0, false
	}
	return s.page, true
}

// CheckRange validates a SinglePage selector against the document's page count.
func (s PageSelector) CheckRange(pageCount int) error {
	page, ok := s.Page()
	if !ok {
		return nil
	}
	if page < 1 || page > pageCount {
		return &PageRangeError{Page: page, PageCount: pageCount}
	}
	return nil
}

func (s PageSelector) String() string {
	switch s.kind {
	case selectorSinglePage:
		return fmt.Sprintf("page:%d", s.page)
	case selectorFullDocument:
		return "full"
	default:
		return "unset"
	}
}

// ParseSelector builds a selector from transport fields. readFull wins over page.
// A blank or non-numeric page yields ErrPageRequired; a page below 1 yields a
// PageRangeError with an unknown page count.
func ParseSelector(page string, readFull bool) (PageSelector, error) {
	if readFull {
		return FullDocument(), nil
	}

	page = strings.TrimSpace(page)
	if page == "" {
		return PageSelector{}, ErrPageRequired
	}

	n, err := strconv.Atoi(page)
	if err != nil {
		return PageSelector{}, fmt.Errorf("%w: %q is not a page number", ErrPageRequired, page)
	}
	if n < 1 {
		return PageSelector{}, &PageRangeError{Page: n, PageCount: -1}
	}
	return SinglePage(n), nil
}

// ParseBool interprets the form values browsers and API clients send for checkboxes.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
