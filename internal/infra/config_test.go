package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_MODELS", "")
	t.Setenv("LLM_MAX_RETRIES", "")
	t.Setenv("LLM_TIMEOUT_SECONDS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Fatalf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.GoogleAPIKey != "" {
		t.Fatalf("GoogleAPIKey = %q, want empty", cfg.GoogleAPIKey)
	}
	if len(cfg.GeminiModels) != 1 || cfg.GeminiModels[0] != "gemini-1.5-flash" {
		t.Fatalf("GeminiModels mismatch: %#v", cfg.GeminiModels)
	}
	if cfg.LLMMaxRetries != 3 {
		t.Fatalf("LLMMaxRetries = %d, want 3", cfg.LLMMaxRetries)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("LLMTimeout = %s, want 60s", cfg.LLMTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigMissingCredentialIsNotFatal(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig returned error without credential: %v", err)
	}
}

func TestLoadConfigModelListKeepsOrder(t *testing.T) {
	t.Setenv("GEMINI_MODELS", " gemini-2.0-flash, gemini-1.5-flash ,,gemini-2.0-flash")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := []string{"gemini-2.0-flash", "gemini-1.5-flash"}
	if len(cfg.GeminiModels) != len(expected) {
		t.Fatalf("GeminiModels mismatch: got %#v want %#v", cfg.GeminiModels, expected)
	}
	for i, m := range expected {
		if cfg.GeminiModels[i] != m {
			t.Fatalf("GeminiModels[%d] = %q, want %q", i, cfg.GeminiModels[i], m)
		}
	}
}

func TestLoadConfigRejectsNegativeRetries(t *testing.T) {
	t.Setenv("LLM_MAX_RETRIES", "-1")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for negative LLM_MAX_RETRIES")
	}
}

func TestLoadConfigInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	t.Setenv("GEMINI_VERIFY_MODEL", "maybe")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Fatalf("RateLimitPerMin = %d, want 30", cfg.RateLimitPerMin)
	}
	if cfg.GeminiVerifyModel {
		t.Fatal("GeminiVerifyModel should fall back to false")
	}
}
