package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/campusdesk/booking-dashboard/internal/auth"
)

func TestLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "warn": slog.LevelWarn, "error": slog.LevelError, "info": slog.LevelInfo, "x": slog.LevelInfo}
	for in, want := range cases {
		if got := level(in); got != want {
			t.Fatalf("level(%q)=%v want %v", in, got, want)
		}
	}
}

func TestRunValidationError(t *testing.T) {
	t.Setenv("CBD_BACKEND_URL", "")
	t.Setenv("CBD_BEARER_TOKEN", "")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := run(ctx); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestRunSuccessCancel(t *testing.T) {
	t.Setenv("CBD_BACKEND_URL", "http://127.0.0.1:9")
	t.Setenv("CBD_SESSION_TOKEN", "tok")
	t.Setenv("CBD_REQUIRE_TOKEN", "false")
	t.Setenv("CBD_BIND_ADDRESS", "127.0.0.1:0")
	t.Setenv("CBD_BADGE_POLL_INTERVAL", "1m")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(40 * time.Millisecond)
		cancel()
	}()
	err := run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected run error: %v", err)
	}
}

func TestRunLoadsSessionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	store := auth.Store{Path: path}
	if err := store.Save(auth.Session{Token: "file-token"}, "pw"); err != nil {
		t.Fatalf("seed session file: %v", err)
	}

	t.Setenv("CBD_BACKEND_URL", "http://127.0.0.1:9")
	t.Setenv("CBD_SESSION_TOKEN", "")
	t.Setenv("CBD_SESSION_FILE", path)
	t.Setenv("CBD_SESSION_PASSWORD", "wrong")
	t.Setenv("CBD_REQUIRE_TOKEN", "false")
	t.Setenv("CBD_BIND_ADDRESS", "127.0.0.1:0")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := run(ctx); err == nil {
		t.Fatal("expected decrypt error with wrong store password")
	}

	t.Setenv("CBD_SESSION_PASSWORD", "pw")
	ctx2, cancel2 := context.WithCancel(context.Background())
	go func() {
		time.Sleep(40 * time.Millisecond)
		cancel2()
	}()
	if err := run(ctx2); err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected run error: %v", err)
	}
}
