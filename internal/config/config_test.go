package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LIFTOFF_API_URL", "")
	t.Setenv("LIFTOFF_HTTP_TIMEOUT", "")
	t.Setenv("LIFTOFF_AI_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Fatalf("unexpected default base url: %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.HTTPTimeout)
	}
	if cfg.SessionDBPath == "" {
		t.Fatalf("session db path must default to a non-empty path")
	}
	if cfg.AIConfigured() {
		t.Fatalf("AI must not be configured without a key")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LIFTOFF_API_URL", "https://pm.example.com/api")
	t.Setenv("LIFTOFF_HTTP_TIMEOUT", "5s")
	t.Setenv("LIFTOFF_AI_KEY", "k")
	t.Setenv("LIFTOFF_SESSION_DB", "/tmp/liftoff-test.sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://pm.example.com/api" {
		t.Fatalf("override not applied: %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("timeout override not applied: %v", cfg.HTTPTimeout)
	}
	if !cfg.AIConfigured() {
		t.Fatalf("AI should be configured with endpoint+key")
	}
}

func TestLoadBadTimeout(t *testing.T) {
	t.Setenv("LIFTOFF_HTTP_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
