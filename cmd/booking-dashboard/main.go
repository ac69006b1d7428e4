package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/campusdesk/booking-dashboard/internal/app"
	"github.com/campusdesk/booking-dashboard/internal/auth"
	"github.com/campusdesk/booking-dashboard/internal/backend"
	"github.com/campusdesk/booking-dashboard/internal/config"
	"github.com/campusdesk/booking-dashboard/internal/tray"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level(cfg.LogLevel)}))

	token := cfg.SessionToken
	if token == "" && cfg.SessionFile != "" {
		session, err := auth.Store{Path: cfg.SessionFile}.Load(cfg.SessionPassword)
		if err != nil {
			return err
		}
		token = session.Token
	}

	client := backend.New(backend.Options{
		BaseURL:      cfg.BackendURL,
		SessionToken: token,
		Timeout:      cfg.RequestTimeout,
		Logger:       logger,
	})

	tr := tray.New("Campus Booking Dashboard", nil)
	application := app.New(cfg, client, tr, logger)
	return application.Run(ctx)
}

func level(v string) slog.Level {
	switch v {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
