package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// OpenRouter API
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Upload policy
	MaxUploadBytes    int64
	AllowedExtensions []string

	// Job completion
	CompletionThreshold time.Duration

	// Server
	Port        string
	Environment string
	BaseURL     string
}

const DefaultMaxUploadBytes = 10 << 20 // 10 MiB

var defaultAllowedExtensions = []string{".json", ".yaml", ".yml", ".postman_collection"}

func Load() (*Config, error) {
	cfg := &Config{
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_API_BASE_URL", "https://openrouter.ai/api/v1/"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "spec-uploads"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		MaxUploadBytes:    getEnvInt64("MAX_UPLOAD_SIZE_BYTES", DefaultMaxUploadBytes),
		AllowedExtensions: getEnvList("ALLOWED_EXTENSIONS", defaultAllowedExtensions),

		CompletionThreshold: time.Duration(getEnvInt64("COMPLETION_THRESHOLD_MS", 30000)) * time.Millisecond,

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OpenRouterAPIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_BYTES must be positive")
	}
	if c.CompletionThreshold <= 0 {
		return fmt.Errorf("COMPLETION_THRESHOLD_MS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
