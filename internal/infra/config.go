package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	DatabaseURL         string
	ExportDir           string
	GoogleAPIKey        string
	GeminiModels        []string
	GeminiBaseURL       string
	GeminiVerifyModel   bool
	LLMMaxRetries       int
	LLMTimeout          time.Duration
	TranscriptLanguages []string
	TranscriptTimeout   time.Duration
	CORSAllowedOrigins  []string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// The model credential is deliberately optional here: its absence is reported on first use.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "8000"),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ExportDir:           strings.TrimSpace(os.Getenv("EXPORT_DIR")),
		GoogleAPIKey:        strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		GeminiModels:        getEnvList("GEMINI_MODELS", []string{"gemini-1.5-flash"}),
		GeminiBaseURL:       getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiVerifyModel:   getEnvBool("GEMINI_VERIFY_MODEL", false),
		LLMMaxRetries:       getEnvInt("LLM_MAX_RETRIES", 3),
		LLMTimeout:          time.Second * time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 60)),
		TranscriptLanguages: getEnvList("TRANSCRIPT_LANGUAGES", []string{"en"}),
		TranscriptTimeout:   time.Second * time.Duration(getEnvInt("TRANSCRIPT_TIMEOUT_SECONDS", 30)),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 300)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if len(cfg.GeminiModels) == 0 {
		return nil, fmt.Errorf("GEMINI_MODELS must list at least one model")
	}
	if cfg.LLMMaxRetries < 0 {
		return nil, fmt.Errorf("LLM_MAX_RETRIES must not be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blanks and duplicates
// while keeping the original order.
func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
