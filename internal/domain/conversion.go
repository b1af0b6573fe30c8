package domain

import (
	"io"
	"time"
)

// UploadedDocument is a document held by the DocumentStore for the duration
// of a single conversion.
type UploadedDocument struct {
	OriginalName string `json:"original_name"`
	Name         string `json:"name"`
	Path         string `json:"-"`
	Size         int64  `json:"size"`
}

// ExtractedText is the text pulled from a document for one PageSelector.
type ExtractedText struct {
	Content    string `json:"content"`
	PageCount  int    `json:"page_count"`
	PagesRead  []int  `json:"pages_read"`
	EmptyPages []int  `json:"empty_pages,omitempty"` // 1-indexed pages that yielded no text
}

// Audio is raw synthesized speech.
type Audio struct {
	Data        []byte
	ContentType string // e.g. "audio/mpeg"
	Extension   string // e.g. ".mp3"
}

// AudioArtifact is a generated audio file owned by the ArtifactStore.
type AudioArtifact struct {
	Name        string    `json:"name"`
	Path        string    `json:"-"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConversionRequest is the input to a single document-to-audio conversion.
type ConversionRequest struct {
	Document io.Reader
	Filename string
	Selector PageSelector
}

// ConversionResult references the artifact produced by a successful conversion.
type ConversionResult struct {
	Artifact   *AudioArtifact `json:"artifact"`
	Selector   string         `json:"selector"`
	Language   string         `json:"language"`
	PageCount  int            `json:"page_count"`
	Characters int            `json:"characters"`
	EmptyPages []int          `json:"empty_pages,omitempty"`
	Duration   time.Duration  `json:"-"`
}

// EmptyPagePolicy decides what happens when pages yield no extractable text.
type EmptyPagePolicy string

const (
	// EmptyPagePolicyIgnore silently contributes an empty string for the page.
	EmptyPagePolicyIgnore EmptyPagePolicy = "ignore"
	// EmptyPagePolicyWarn logs the textless pages and reports them in the result.
	EmptyPagePolicyWarn EmptyPagePolicy = "warn"
)

// ParseEmptyPagePolicy returns the policy named by s, defaulting to ignore.
func ParseEmptyPagePolicy(s string) EmptyPagePolicy {
	if EmptyPagePolicy(s) == EmptyPagePolicyWarn {
		return EmptyPagePolicyWarn
	}
	return EmptyPagePolicyIgnore
}
