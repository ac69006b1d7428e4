package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusdesk/booking-dashboard/internal/backend"
	"github.com/campusdesk/booking-dashboard/internal/config"
)

func testBackend(t *testing.T) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	t.Cleanup(srv.Close)
	return backend.New(backend.Options{BaseURL: srv.URL, Timeout: time.Second})
}

func TestApplicationRunCancel(t *testing.T) {
	cfg := config.Config{
		BindAddress:        "127.0.0.1:0",
		RequireBearerToken: false,
		BadgePollInterval:  time.Minute,
	}
	a := New(cfg, testBackend(t), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

type errTray struct{}

func (errTray) Run(context.Context) error { return nil }

func (errTray) SetPending(int, bool) {}

func TestApplicationRunNoListener(t *testing.T) {
	cfg := config.Config{BindAddress: "", BadgePollInterval: time.Minute}
	a := New(cfg, testBackend(t), errTray{}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
}

func TestApplicationRunBadBind(t *testing.T) {
	cfg := config.Config{BindAddress: "256.0.0.1:bogus", BadgePollInterval: time.Minute}
	a := New(cfg, testBackend(t), nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.Run(ctx); err == nil {
		t.Fatal("expected listen error")
	}
}
