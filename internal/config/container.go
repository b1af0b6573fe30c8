package config

import (
	"context"
	"fmt"
	"net/http"

	"pdf-to-speech/internal/domain"
	"pdf-to-speech/internal/infra/gcs"
	"pdf-to-speech/internal/infra/supabase"
	"pdf-to-speech/internal/infra/tts"
	"pdf-to-speech/internal/repository"
	"pdf-to-speech/internal/service"
	"pdf-to-speech/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	DocumentStore     *repository.FileDocumentStore
	ArtifactStore     domain.ArtifactStore
	Synthesizer       domain.Synthesizer
	ConversionService *service.ConversionService
	// Janitor is nil unless ARTIFACT_TTL is set.
	Janitor *service.ArtifactJanitor

	closers []func() error
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context) (*Container, error) {
	return NewContainerWithConfig(ctx, NewConfig())
}

// NewContainerWithConfig wires the application from an explicit configuration.
func NewContainerWithConfig(ctx context.Context, cfg domain.Config) (*Container, error) {
	appLogger := logger.NewLogger(cfg.GetLogLevel(), cfg.GetLogFormat())
	c := &Container{Config: cfg, Logger: appLogger}

	documents, err := repository.NewFileDocumentStore(cfg.GetUploadPath(), appLogger)
	if err != nil {
		return nil, err
	}
	c.DocumentStore = documents

	localArtifacts, err := repository.NewFileArtifactStore(cfg.GetMediaPath(), appLogger)
	if err != nil {
		return nil, err
	}

	mirror, err := c.newMirror(ctx)
	if err != nil {
		return nil, err
	}
	if mirror != nil {
		c.ArtifactStore = repository.NewMirroredArtifactStore(localArtifacts, mirror, appLogger)
	} else {
		c.ArtifactStore = localArtifacts
	}

	synthesizer, err := newSynthesizer(cfg, appLogger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Synthesizer = synthesizer

	extractor := service.NewPDFExtractor(appLogger, cfg.GetPageTimeout())
	c.ConversionService = service.NewConversionService(documents, extractor, synthesizer, c.ArtifactStore, appLogger, service.ConversionOptions{
		Language:         cfg.GetLanguage(),
		SynthesisTimeout: cfg.GetSynthesisTimeout(),
		EmptyPagePolicy:  cfg.GetEmptyPagePolicy(),
	})

	if ttl := cfg.GetArtifactTTL(); ttl > 0 {
		c.Janitor = service.NewArtifactJanitor(localArtifacts, ttl, cfg.GetJanitorInterval(), appLogger)
	}

	appLogger.Info("Container initialized",
		"tts_provider", synthesizer.Name(),
		"language", cfg.GetLanguage(),
		"upload_path", cfg.GetUploadPath(),
		"media_path", cfg.GetMediaPath(),
		"artifact_mirror", cfg.GetArtifactMirror(),
	)
	return c, nil
}

func newSynthesizer(cfg domain.Config, log domain.Logger) (domain.Synthesizer, error) {
	client := &http.Client{Timeout: cfg.GetSynthesisTimeout()}

	switch cfg.GetTTSProvider() {
	case "", "gtts":
		return tts.NewGoogleTranslateSynthesizer(cfg.GetGTTSBaseURL(), client, log), nil
	case "openai":
		return tts.NewOpenAISynthesizer(tts.OpenAIOptions{
			APIKey:  cfg.GetOpenAIAPIKey(),
			BaseURL: cfg.GetOpenAIBaseURL(),
			Model:   cfg.GetOpenAIModel(),
			Voice:   cfg.GetOpenAIVoice(),
		}, client, log)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedTTS, cfg.GetTTSProvider())
	}
}

func (c *Container) newMirror(ctx context.Context) (domain.ArtifactMirror, error) {
	cfg := c.Config
	switch cfg.GetArtifactMirror() {
	case "", "none":
		return nil, nil
	case "supabase":
		return supabase.NewStorageMirror(cfg.GetSupabaseURL(), cfg.GetSupabaseKey(), cfg.GetSupabaseBucket(), c.Logger)
	case "gcs":
		mirror, err := gcs.NewStorageMirror(ctx, cfg.GetGCSBucket(), c.Logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, mirror.Close)
		return mirror, nil
	default:
		return nil, fmt.Errorf("unsupported artifact mirror %q", cfg.GetArtifactMirror())
	}
}

// Close releases clients held by the container.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
