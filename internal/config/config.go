package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-to-speech/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	UploadPath         string
	MediaPath          string
	MaxFileSize        int64
	LogLevel           string
	LogFormat          string
	Language           string
	TTSProvider        string
	GTTSBaseURL        string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIVoice        string
	OpenAIBaseURL      string
	SynthesisTimeout   time.Duration
	PageTimeout        time.Duration
	EmptyPagePolicy    domain.EmptyPagePolicy
	CORSAllowedOrigins []string
	ArtifactTTL        time.Duration
	JanitorInterval    time.Duration
	ArtifactMirror     string
	SupabaseURL        string
	SupabaseKey        string
	SupabaseBucket     string
	GCSBucket          string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:         getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		MediaPath:          getEnvOrDefault("MEDIA_PATH", "./media"),
		MaxFileSize:        getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          getEnvOrDefault("LOG_FORMAT", "json"),
		Language:           getEnvOrDefault("TTS_LANGUAGE", "en"),
		TTSProvider:        strings.ToLower(getEnvOrDefault("TTS_PROVIDER", "gtts")),
		GTTSBaseURL:        getEnvOrDefault("GTTS_BASE_URL", "https://translate.google.com"),
		OpenAIAPIKey:       getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnvOrDefault("OPENAI_TTS_MODEL", "tts-1"),
		OpenAIVoice:        getEnvOrDefault("OPENAI_TTS_VOICE", "alloy"),
		OpenAIBaseURL:      getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com"),
		SynthesisTimeout:   getEnvDurationOrDefault("SYNTHESIS_TIMEOUT", 90*time.Second),
		PageTimeout:        getEnvDurationOrDefault("PAGE_TIMEOUT", 90*time.Second),
		EmptyPagePolicy:    domain.ParseEmptyPagePolicy(strings.ToLower(getEnvOrDefault("EMPTY_PAGE_POLICY", "ignore"))),
		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ArtifactTTL:        getEnvDurationOrDefault("ARTIFACT_TTL", 0),
		JanitorInterval:    getEnvDurationOrDefault("JANITOR_INTERVAL", 10*time.Minute),
		ArtifactMirror:     strings.ToLower(getEnvOrDefault("ARTIFACT_MIRROR", "")),
		SupabaseURL:        getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:        getEnvOrDefault("SUPABASE_SERVICE_KEY", ""),
		SupabaseBucket:     getEnvOrDefault("SUPABASE_BUCKET", "audio"),
		GCSBucket:          getEnvOrDefault("GCS_BUCKET", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMediaPath returns the generated audio directory path
func (c *AppConfig) GetMediaPath() string {
	return c.MediaPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns json or console
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetLanguage returns the synthesis language code
func (c *AppConfig) GetLanguage() string {
	return c.Language
}

// GetTTSProvider returns the configured speech engine
func (c *AppConfig) GetTTSProvider() string {
	return c.TTSProvider
}

func (c *AppConfig) GetGTTSBaseURL() string {
	return c.GTTSBaseURL
}

func (c *AppConfig) GetOpenAIAPIKey() string {
	return c.OpenAIAPIKey
}

func (c *AppConfig) GetOpenAIModel() string {
	return c.OpenAIModel
}

func (c *AppConfig) GetOpenAIVoice() string {
	return c.OpenAIVoice
}

func (c *AppConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

// GetSynthesisTimeout bounds one synthesis call
func (c *AppConfig) GetSynthesisTimeout() time.Duration {
	return c.SynthesisTimeout
}

// GetPageTimeout bounds text extraction of a single page
func (c *AppConfig) GetPageTimeout() time.Duration {
	return c.PageTimeout
}

func (c *AppConfig) GetEmptyPagePolicy() domain.EmptyPagePolicy {
	return c.EmptyPagePolicy
}

func (c *AppConfig) GetCORSAllowedOrigins() []string {
	return c.CORSAllowedOrigins
}

// GetArtifactTTL returns how long generated audio is kept; zero keeps it forever
func (c *AppConfig) GetArtifactTTL() time.Duration {
	return c.ArtifactTTL
}

func (c *AppConfig) GetJanitorInterval() time.Duration {
	return c.JanitorInterval
}

// GetArtifactMirror returns "", "supabase" or "gcs"
func (c *AppConfig) GetArtifactMirror() string {
	return c.ArtifactMirror
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

func (c *AppConfig) GetSupabaseBucket() string {
	return c.SupabaseBucket
}

func (c *AppConfig) GetGCSBucket() string {
	return c.GCSBucket
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
