package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds client configuration loaded from environment variables.
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration

	AIEndpoint string
	AIKey      string

	SessionDBPath string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

const defaultAIEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// Load reads configuration from environment variables and validates required fields.
func Load() (Config, error) {
	timeout, err := getEnvDuration("LIFTOFF_HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIFTOFF_HTTP_TIMEOUT: %w", err)
	}

	sessionPath := getEnv("LIFTOFF_SESSION_DB", "")
	if sessionPath == "" {
		sessionPath = defaultSessionDBPath()
	}

	cfg := Config{
		APIBaseURL:         getEnv("LIFTOFF_API_URL", "http://localhost:8080/api"),
		HTTPTimeout:        timeout,
		AIEndpoint:         getEnv("LIFTOFF_AI_URL", defaultAIEndpoint),
		AIKey:              getEnv("LIFTOFF_AI_KEY", ""),
		SessionDBPath:      sessionPath,
		GoogleClientID:     getEnv("LIFTOFF_GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("LIFTOFF_GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("LIFTOFF_GOOGLE_REDIRECT_URL", "urn:ietf:wg:oauth:2.0:oob"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("LIFTOFF_API_URL is required")
	}
	if c.SessionDBPath == "" {
		return fmt.Errorf("LIFTOFF_SESSION_DB is required")
	}
	return nil
}

// AIConfigured reports whether the external AI endpoint can be called.
// The key is only required by the analyst chat, so Load does not demand it.
func (c Config) AIConfigured() bool {
	return c.AIEndpoint != "" && c.AIKey != ""
}

func defaultSessionDBPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "liftoff", "session.sqlite")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(v)
}
