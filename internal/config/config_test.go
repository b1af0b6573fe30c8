package config

import (
	"testing"
	"time"

	"pdf-to-speech/internal/domain"
)

const defaultMaxFileSize int64 = 50 * 1024 * 1024

var configEnvKeys = []string{
	"PORT", "SERVER_PORT", "UPLOAD_PATH", "MEDIA_PATH", "MAX_FILE_SIZE", "LOG_LEVEL", "LOG_FORMAT",
	"TTS_LANGUAGE", "TTS_PROVIDER", "GTTS_BASE_URL", "OPENAI_API_KEY", "OPENAI_TTS_MODEL",
	"OPENAI_TTS_VOICE", "OPENAI_BASE_URL", "SYNTHESIS_TIMEOUT", "PAGE_TIMEOUT", "EMPTY_PAGE_POLICY",
	"CORS_ALLOWED_ORIGINS", "ARTIFACT_TTL", "JANITOR_INTERVAL", "ARTIFACT_MIRROR",
	"SUPABASE_URL", "SUPABASE_SERVICE_KEY", "SUPABASE_BUCKET", "GCS_BUCKET",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetUploadPath() != "./uploads" {
		t.Fatalf("expected default upload path ./uploads, got %s", cfg.GetUploadPath())
	}
	if cfg.GetMediaPath() != "./media" {
		t.Fatalf("expected default media path ./media, got %s", cfg.GetMediaPath())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetLanguage() != "en" {
		t.Fatalf("expected default language en, got %s", cfg.GetLanguage())
	}
	if cfg.GetTTSProvider() != "gtts" {
		t.Fatalf("expected default tts provider gtts, got %s", cfg.GetTTSProvider())
	}
	if cfg.GetSynthesisTimeout() != 90*time.Second {
		t.Fatalf("expected default synthesis timeout 90s, got %s", cfg.GetSynthesisTimeout())
	}
	if cfg.GetEmptyPagePolicy() != domain.EmptyPagePolicyIgnore {
		t.Fatalf("expected default empty page policy ignore, got %s", cfg.GetEmptyPagePolicy())
	}
	if origins := cfg.GetCORSAllowedOrigins(); len(origins) != 1 || origins[0] != "*" {
		t.Fatalf("expected default cors origins [*], got %v", origins)
	}
	if cfg.GetArtifactTTL() != 0 {
		t.Fatalf("expected artifact ttl disabled by default, got %s", cfg.GetArtifactTTL())
	}
	if cfg.GetArtifactMirror() != "" {
		t.Fatalf("expected no artifact mirror by default, got %s", cfg.GetArtifactMirror())
	}
	if cfg.GetSupabaseBucket() != "audio" {
		t.Fatalf("expected default supabase bucket audio, got %s", cfg.GetSupabaseBucket())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TTS_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PAGE_TIMEOUT", "5s")
	t.Setenv("EMPTY_PAGE_POLICY", "WARN")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://localhost:3000 ,")
	t.Setenv("ARTIFACT_TTL", "24h")
	t.Setenv("ARTIFACT_MIRROR", "GCS")
	t.Setenv("GCS_BUCKET", "narrations")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if cfg.GetTTSProvider() != "openai" {
		t.Fatalf("expected tts provider openai, got %s", cfg.GetTTSProvider())
	}
	if cfg.GetOpenAIAPIKey() != "sk-test" {
		t.Fatalf("expected openai key sk-test, got %s", cfg.GetOpenAIAPIKey())
	}
	if cfg.GetPageTimeout() != 5*time.Second {
		t.Fatalf("expected page timeout 5s, got %s", cfg.GetPageTimeout())
	}
	if cfg.GetEmptyPagePolicy() != domain.EmptyPagePolicyWarn {
		t.Fatalf("expected empty page policy warn, got %s", cfg.GetEmptyPagePolicy())
	}
	origins := cfg.GetCORSAllowedOrigins()
	if len(origins) != 2 || origins[0] != "http://localhost:5173" || origins[1] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins %v", origins)
	}
	if cfg.GetArtifactTTL() != 24*time.Hour {
		t.Fatalf("expected artifact ttl 24h, got %s", cfg.GetArtifactTTL())
	}
	if cfg.GetArtifactMirror() != "gcs" || cfg.GetGCSBucket() != "narrations" {
		t.Fatalf("expected gcs mirror to narrations, got %s/%s", cfg.GetArtifactMirror(), cfg.GetGCSBucket())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("SYNTHESIS_TIMEOUT", "soon")
	t.Setenv("JANITOR_INTERVAL", "-5m")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetSynthesisTimeout() != 90*time.Second {
		t.Fatalf("expected default synthesis timeout, got %s", cfg.GetSynthesisTimeout())
	}
	if cfg.GetJanitorInterval() != 10*time.Minute {
		t.Fatalf("expected default janitor interval, got %s", cfg.GetJanitorInterval())
	}
}
