package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadSuccess(t *testing.T) {
	t.Setenv("CBD_BACKEND_URL", "https://campus.example.test/")
	t.Setenv("CBD_BIND_ADDRESS", "127.0.0.1:9999")
	t.Setenv("CBD_REQUIRE_TOKEN", "true")
	t.Setenv("CBD_BEARER_TOKEN", "secret")
	t.Setenv("CBD_REQUEST_TIMEOUT", "5s")
	t.Setenv("CBD_BADGE_POLL_INTERVAL", "15s")
	t.Setenv("CBD_LOG_LEVEL", "debug")
	t.Setenv("CBD_ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BackendURL != "https://campus.example.test" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
	if cfg.BadgePollInterval != 15*time.Second {
		t.Fatalf("unexpected poll interval: %v", cfg.BadgePollInterval)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestValidateErrors(t *testing.T) {
	base := Config{
		BackendURL:        "https://campus.example.test",
		BindAddress:       "127.0.0.1:1",
		RequestTimeout:    time.Second,
		BadgePollInterval: time.Second,
		LogLevel:          "info",
	}

	cases := map[string]func(*Config){
		"missing backend":      func(c *Config) { c.BackendURL = "" },
		"non-http backend":     func(c *Config) { c.BackendURL = "ftp://x" },
		"missing bind":         func(c *Config) { c.BindAddress = "" },
		"token required":       func(c *Config) { c.RequireBearerToken = true },
		"session password":     func(c *Config) { c.SessionFile = "/tmp/session" },
		"bad timeout":          func(c *Config) { c.RequestTimeout = 0 },
		"bad poll interval":    func(c *Config) { c.BadgePollInterval = -time.Second },
		"invalid log level":    func(c *Config) { c.LogLevel = "trace" },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestDefaultsWhenEnvInvalid(t *testing.T) {
	for _, key := range []string{"CBD_BIND_ADDRESS", "CBD_LOG_LEVEL", "CBD_ALLOWED_ORIGINS", "CBD_ENABLE_TRAY"} {
		_ = os.Unsetenv(key)
	}
	t.Setenv("CBD_BACKEND_URL", "https://campus.example.test")
	t.Setenv("CBD_BEARER_TOKEN", "secret")
	t.Setenv("CBD_REQUEST_TIMEOUT", "oops")
	t.Setenv("CBD_REQUIRE_TOKEN", "oops")
	t.Setenv("CBD_BADGE_POLL_INTERVAL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.BadgePollInterval != 30*time.Second {
		t.Fatalf("expected default poll interval, got %v", cfg.BadgePollInterval)
	}
	if !cfg.RequireBearerToken {
		t.Fatal("expected default true for RequireBearerToken")
	}
	if cfg.BindAddress != "127.0.0.1:8745" {
		t.Fatalf("unexpected default bind: %s", cfg.BindAddress)
	}
}
