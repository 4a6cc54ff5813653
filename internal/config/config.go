package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TransportREST = "rest"
	TransportSDK  = "sdk"

	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

type Config struct {
	Port     string
	LogLevel string

	// Gemini
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	GeminiTransport string
	UpstreamTimeout time.Duration

	// HTTP
	AllowedOrigins []string
	MaxRequestSize int64
}

// Load reads the process configuration from the environment. A .env file in
// the working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:   strings.TrimRight(getEnv("GEMINI_BASE_URL", DefaultGeminiBaseURL), "/"),
		GeminiTransport: strings.ToLower(getEnv("GEMINI_TRANSPORT", TransportREST)),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	switch cfg.GeminiTransport {
	case TransportREST, TransportSDK:
	default:
		return nil, fmt.Errorf("GEMINI_TRANSPORT must be %q or %q, got %q", TransportREST, TransportSDK, cfg.GeminiTransport)
	}

	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "60s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be a positive duration")
	}
	cfg.UpstreamTimeout = timeout

	size, err := strconv.ParseInt(getEnv("MAX_REQUEST_SIZE", "10485760"), 10, 64)
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_SIZE must be a positive number of bytes")
	}
	cfg.MaxRequestSize = size

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
