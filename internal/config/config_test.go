package config

import (
	"testing"
	"time"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	for _, key := range []string{"PORT", "MODEL", "LOG_LEVEL", "GEMINI_BASE_URL", "GEMINI_TRANSPORT", "UPSTREAM_TIMEOUT", "ALLOWED_ORIGINS", "MAX_REQUEST_SIZE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("GeminiModel = %q, want gemini-1.5-flash", cfg.GeminiModel)
	}
	if cfg.GeminiTransport != TransportREST {
		t.Errorf("GeminiTransport = %q, want %q", cfg.GeminiTransport, TransportREST)
	}
	if cfg.UpstreamTimeout != 60*time.Second {
		t.Errorf("UpstreamTimeout = %v, want 60s", cfg.UpstreamTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.MaxRequestSize != 10<<20 {
		t.Errorf("MaxRequestSize = %d, want %d", cfg.MaxRequestSize, 10<<20)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "8081")
	t.Setenv("MODEL", "gemini-2.0-flash")
	t.Setenv("GEMINI_BASE_URL", "http://localhost:9999/v1beta/")
	t.Setenv("GEMINI_TRANSPORT", "SDK")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8081" || cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("unexpected port/model: %q %q", cfg.Port, cfg.GeminiModel)
	}
	if cfg.GeminiBaseURL != "http://localhost:9999/v1beta" {
		t.Errorf("GeminiBaseURL = %q, trailing slash not trimmed", cfg.GeminiBaseURL)
	}
	if cfg.GeminiTransport != TransportSDK {
		t.Errorf("GeminiTransport = %q, want %q", cfg.GeminiTransport, TransportSDK)
	}
	if cfg.UpstreamTimeout != 5*time.Second {
		t.Errorf("UpstreamTimeout = %v, want 5s", cfg.UpstreamTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"transport": {"GEMINI_TRANSPORT", "grpc"},
		"timeout":   {"UPSTREAM_TIMEOUT", "soon"},
		"size":      {"MAX_REQUEST_SIZE", "-1"},
	}

	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "test-key")
			t.Setenv(kv[0], kv[1])

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
