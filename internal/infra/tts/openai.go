package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pdf-to-speech/internal/domain"
)

const (
	// DefaultOpenAIURL is the OpenAI API host.
	DefaultOpenAIURL = "https://api.openai.com"

	openAIMaxChars = 4096
)

// OpenAIOptions configures the OpenAI speech endpoint.
type OpenAIOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
}

// OpenAISynthesizer implements domain.Synthesizer using the OpenAI TTS endpoint.
// The voice determines pronunciation; language is only logged.
type OpenAISynthesizer struct {
	apiKey  string
	baseURL string
	model   string
	voice   string
	client  *http.Client
	logger  domain.Logger
}

func NewOpenAISynthesizer(opts OpenAIOptions, client *http.Client, logger domain.Logger) (*OpenAISynthesizer, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultOpenAIURL
	}
	if opts.Model == "" {
		opts.Model = "tts-1"
	}
	if opts.Voice == "" {
		opts.Voice = "alloy"
	}
	if client == nil {
		client = &http.Client{Timeout: 90 * time.Second}
	}
	return &OpenAISynthesizer{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		model:   opts.Model,
		voice:   opts.Voice,
		client:  client,
		logger:  logger,
	}, nil
}

func (s *OpenAISynthesizer) Name() string { return "openai" }

// Synthesize converts text to mp3 bytes.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string, language string) (*domain.Audio, error) {
	chunks := SplitText(text, openAIMaxChars)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no text to synthesize")
	}

	s.logger.Debug("OpenAI TTS request", "model", s.model, "voice", s.voice, "language", language, "chunks", len(chunks))

	var buf bytes.Buffer
	for i, chunk := range chunks {
		if err := s.speak(ctx, &buf, chunk); err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return &domain.Audio{Data: buf.Bytes(), ContentType: "audio/mpeg", Extension: ".mp3"}, nil
}

func (s *OpenAISynthesizer) speak(ctx context.Context, dst *bytes.Buffer, text string) error {
	payload := map[string]interface{}{
		"model":           s.model,
		"input":           text,
		"voice":           s.voice,
		"response_format": "mp3",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("openai error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("openai returned an empty body")
	}
	return nil
}
