package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BackendURL         string
	SessionToken       string
	SessionFile        string
	SessionPassword    string
	BindAddress        string
	RequireBearerToken bool
	BearerToken        string
	AllowedOrigins     []string
	RequestTimeout     time.Duration
	BadgePollInterval  time.Duration
	LogLevel           string
	EnableTray         bool
}

func Load() (Config, error) {
	cfg := Config{
		BackendURL:         strings.TrimRight(strings.TrimSpace(os.Getenv("CBD_BACKEND_URL")), "/"),
		SessionToken:       strings.TrimSpace(os.Getenv("CBD_SESSION_TOKEN")),
		SessionFile:        strings.TrimSpace(os.Getenv("CBD_SESSION_FILE")),
		SessionPassword:    os.Getenv("CBD_SESSION_PASSWORD"),
		BindAddress:        getenvDefault("CBD_BIND_ADDRESS", "127.0.0.1:8745"),
		RequireBearerToken: getenvBool("CBD_REQUIRE_TOKEN", true),
		BearerToken:        strings.TrimSpace(os.Getenv("CBD_BEARER_TOKEN")),
		AllowedOrigins:     splitList(getenvDefault("CBD_ALLOWED_ORIGINS", "http://localhost:3000")),
		RequestTimeout:     getenvDuration("CBD_REQUEST_TIMEOUT", 10*time.Second),
		BadgePollInterval:  getenvDuration("CBD_BADGE_POLL_INTERVAL", 30*time.Second),
		LogLevel:           getenvDefault("CBD_LOG_LEVEL", "info"),
		EnableTray:         getenvBool("CBD_ENABLE_TRAY", false),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("CBD_BACKEND_URL is required")
	}
	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("backend url must be http(s): %s", c.BackendURL)
	}
	if c.BindAddress == "" {
		return errors.New("bind address must be configured")
	}
	if c.RequireBearerToken && c.BearerToken == "" {
		return errors.New("CBD_BEARER_TOKEN is required when token auth is enabled")
	}
	if c.SessionFile != "" && c.SessionPassword == "" {
		return errors.New("CBD_SESSION_PASSWORD is required when a session file is configured")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be > 0")
	}
	if c.BadgePollInterval <= 0 {
		return errors.New("badge poll interval must be > 0")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
