package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pdf-to-speech/internal/domain"
	apperrors "pdf-to-speech/pkg/errors"
)

// ConversionOptions tunes the conversion pipeline.
type ConversionOptions struct {
	Language         string
	SynthesisTimeout time.Duration
	EmptyPagePolicy  domain.EmptyPagePolicy
}

// ConversionService turns uploaded PDFs into narrated audio artifacts.
// Every returned error is an *apperrors.AppError.
type ConversionService struct {
	documents   domain.DocumentStore
	extractor   domain.TextExtractor
	synthesizer domain.Synthesizer
	artifacts   domain.ArtifactStore
	logger      domain.Logger
	opts        ConversionOptions
}

func NewConversionService(
	documents domain.DocumentStore,
	extractor domain.TextExtractor,
	synthesizer domain.Synthesizer,
	artifacts domain.ArtifactStore,
	logger domain.Logger,
	opts ConversionOptions,
) *ConversionService {
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.EmptyPagePolicy == "" {
		opts.EmptyPagePolicy = domain.EmptyPagePolicyIgnore
	}
	return &ConversionService{
		documents:   documents,
		extractor:   extractor,
		synthesizer: synthesizer,
		artifacts:   artifacts,
		logger:      logger,
		opts:        opts,
	}
}

// Convert stores the upload, extracts the selected text, synthesizes it and
// saves the audio. The upload is deleted on every return path.
func (s *ConversionService) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	start := time.Now()

	if req.Document == nil {
		return nil, apperrors.NewMissingInputError("No PDF file uploaded.")
	}

	doc, err := s.documents.Store(ctx, req.Document, req.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyUpload) {
			return nil, apperrors.NewMissingInputError("No PDF file uploaded.")
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apperrors.NewInternalError("Upload interrupted", ctxErr)
		}
		s.logger.Error("Failed to store upload", err, "filename", req.Filename)
		return nil, apperrors.NewInternalError("Failed to store upload", err)
	}
	defer s.release(doc)

	logFields := []interface{}{"upload", doc.Name, "selector", req.Selector.String()}
	s.logger.Info("Conversion started", append(logFields, "size", doc.Size)...)

	if !req.Selector.IsSet() {
		return nil, ClassifySelectorError(domain.ErrPageRequired)
	}
	if page, ok := req.Selector.Page(); ok && page < 1 {
		return nil, ClassifySelectorError(&domain.PageRangeError{Page: page, PageCount: -1})
	}

	var extracted *domain.ExtractedText
	err = guard(func() error {
		var extractErr error
		extracted, extractErr = s.extractor.Extract(ctx, doc.Path, req.Selector)
		return extractErr
	})
	if err != nil {
		var rangeErr *domain.PageRangeError
		if errors.As(err, &rangeErr) {
			s.logger.Info("Conversion rejected", append(logFields, "reason", rangeErr.Error())...)
			return nil, ClassifySelectorError(rangeErr)
		}
		s.logger.Error("Text extraction failed", err, logFields...)
		return nil, apperrors.NewEngineFailureError("Failed to read PDF", err)
	}

	text := strings.TrimSpace(extracted.Content)
	if text == "" {
		s.logger.Info("Conversion rejected", append(logFields, "reason", "no readable text", "page_count", extracted.PageCount)...)
		return nil, apperrors.NewNoContentError("No readable text found in PDF.")
	}

	result := &domain.ConversionResult{
		Selector:   req.Selector.String(),
		Language:   s.opts.Language,
		PageCount:  extracted.PageCount,
		Characters: len([]rune(text)),
	}
	if len(extracted.EmptyPages) > 0 && s.opts.EmptyPagePolicy == domain.EmptyPagePolicyWarn {
		s.logger.Warn("Pages without extractable text were skipped", append(logFields, "empty_pages", extracted.EmptyPages)...)
		result.EmptyPages = extracted.EmptyPages
	}

	audio, err := s.synthesize(ctx, text)
	if err != nil {
		s.logger.Error("Speech synthesis failed", err, append(logFields, "engine", s.synthesizer.Name())...)
		return nil, apperrors.NewEngineFailureError("Speech synthesis failed", err)
	}

	artifact, err := s.artifacts.Save(ctx, audio)
	if err != nil {
		s.logger.Error("Failed to store audio", err, logFields...)
		return nil, apperrors.NewInternalError("Failed to store audio", err)
	}

	result.Artifact = artifact
	result.Duration = time.Since(start)
	s.logger.Info("Conversion completed", append(logFields,
		"artifact", artifact.Name,
		"page_count", result.PageCount,
		"characters", result.Characters,
		"audio_bytes", artifact.Size,
		"duration", result.Duration,
	)...)
	return result, nil
}

// ResolveArtifact looks up generated audio by its unique name.
func (s *ConversionService) ResolveArtifact(name string) (*domain.AudioArtifact, error) {
	artifact, err := s.artifacts.Resolve(name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Audio file not found")
		}
		return nil, apperrors.NewInternalError("Failed to look up audio file", err)
	}
	return artifact, nil
}

func (s *ConversionService) synthesize(ctx context.Context, text string) (*domain.Audio, error) {
	if s.opts.SynthesisTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SynthesisTimeout)
		defer cancel()
	}

	started := time.Now()
	var audio *domain.Audio
	err := guard(func() error {
		var synthErr error
		audio, synthErr = s.synthesizer.Synthesize(ctx, text, s.opts.Language)
		return synthErr
	})
	if err != nil {
		return nil, err
	}
	if audio == nil || len(audio.Data) == 0 {
		return nil, fmt.Errorf("%s returned no audio", s.synthesizer.Name())
	}

	s.logger.Debug("Speech synthesized", "engine", s.synthesizer.Name(), "bytes", len(audio.Data), "took", time.Since(started))
	return audio, nil
}

// release deletes the upload. Failures are logged; the conversion outcome stands.
func (s *ConversionService) release(doc *domain.UploadedDocument) {
	if err := s.documents.Delete(doc.Name); err != nil {
		s.logger.Error("Failed to delete upload", err, "upload", doc.Name)
		return
	}
	s.logger.Debug("Upload deleted", "upload", doc.Name)
}

// ClassifySelectorError maps selector parsing and range errors onto the
// conversion failure kinds.
func ClassifySelectorError(err error) error {
	var rangeErr *domain.PageRangeError
	switch {
	case errors.As(err, &rangeErr):
		return apperrors.NewOutOfRangeError("Page number out of range.", rangeErr.Error())
	case errors.Is(err, domain.ErrPageRequired), errors.Is(err, domain.ErrNoSelector):
		return apperrors.NewMissingInputError("Page number is required if not reading full PDF.")
	default:
		return apperrors.NewInternalError("Invalid page selection", err)
	}
}

// guard converts a panic inside an engine call into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panic: %v", r)
		}
	}()
	return fn()
}
