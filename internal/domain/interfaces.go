package domain

import (
	"context"
	"io"
	"time"
)

// ConversionService converts uploaded documents into audio artifacts.
type ConversionService interface {
	Convert(ctx context.Context, req ConversionRequest) (*ConversionResult, error)
	ResolveArtifact(name string) (*AudioArtifact, error)
}

// TextExtractor pulls text out of a stored document.
type TextExtractor interface {
	// Extract returns the text selected by selector. It fails with a
	// *PageRangeError when a single page exceeds the document's page count.
	Extract(ctx context.Context, path string, selector PageSelector) (*ExtractedText, error)
}

// Synthesizer converts text to Audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, language string) (*Audio, error)
	Name() string
}

// DocumentStore holds uploads while they are being converted.
type DocumentStore interface {
	Store(ctx context.Context, r io.Reader, suggestedName string) (*UploadedDocument, error)
	// Delete removes the upload. Deleting an absent name is not an error.
	Delete(name string) error
	Resolve(name string) (string, error)
}

// ArtifactStore persists generated audio until something outside the service removes it.
type ArtifactStore interface {
	Save(ctx context.Context, audio *Audio) (*AudioArtifact, error)
	Resolve(name string) (*AudioArtifact, error)
}

// ArtifactMirror copies finished artifacts to remote object storage.
type ArtifactMirror interface {
	Publish(ctx context.Context, artifact *AudioArtifact) error
	Name() string
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMediaPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetLanguage() string
	GetTTSProvider() string
	GetGTTSBaseURL() string
	GetOpenAIAPIKey() string
	GetOpenAIModel() string
	GetOpenAIVoice() string
	GetOpenAIBaseURL() string
	GetSynthesisTimeout() time.Duration
	GetPageTimeout() time.Duration
	GetEmptyPagePolicy() EmptyPagePolicy
	GetCORSAllowedOrigins() []string
	GetArtifactTTL() time.Duration
	GetJanitorInterval() time.Duration
	GetArtifactMirror() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseBucket() string
	GetGCSBucket() string
}
