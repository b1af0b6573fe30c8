package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"pdf-to-speech/internal/domain"
)

const (
	// DefaultGoogleTranslateURL is the public Google Translate host.
	DefaultGoogleTranslateURL = "https://translate.google.com"

	googleTranslateMaxChars = 100
	googleTranslateAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// GoogleTranslateSynthesizer speaks text through the Google Translate TTS
// endpoint. Long text is sent in chunks and the MP3 frames are concatenated.
type GoogleTranslateSynthesizer struct {
	baseURL string
	client  *http.Client
	logger  domain.Logger
}

func NewGoogleTranslateSynthesizer(baseURL string, client *http.Client, logger domain.Logger) *GoogleTranslateSynthesizer {
	if baseURL == "" {
		baseURL = DefaultGoogleTranslateURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &GoogleTranslateSynthesizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

func (s *GoogleTranslateSynthesizer) Name() string { return "gtts" }

// Synthesize returns MP3 audio of text read in language.
func (s *GoogleTranslateSynthesizer) Synthesize(ctx context.Context, text string, language string) (*domain.Audio, error) {
	chunks := SplitText(text, googleTranslateMaxChars)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no text to synthesize")
	}
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = "en"
	}

	s.logger.Debug("Google Translate TTS request", "chunks", len(chunks), "language", language)

	var buf bytes.Buffer
	for i, chunk := range chunks {
		if err := s.fetch(ctx, &buf, chunk, language, i, len(chunks)); err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}

	return &domain.Audio{Data: buf.Bytes(), ContentType: "audio/mpeg", Extension: ".mp3"}, nil
}

func (s *GoogleTranslateSynthesizer) fetch(ctx context.Context, dst *bytes.Buffer, chunk, language string, idx, total int) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", chunk)
	q.Set("tl", language)
	q.Set("client", "tw-ob")
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", googleTranslateAgent)
	req.Header.Set("Referer", s.baseURL+"/")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("google translate error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("google translate returned an empty body")
	}
	return nil
}
