// Package app wires the dashboard components together and supervises
// their goroutines.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/campusdesk/booking-dashboard/internal/api"
	"github.com/campusdesk/booking-dashboard/internal/backend"
	"github.com/campusdesk/booking-dashboard/internal/chat"
	"github.com/campusdesk/booking-dashboard/internal/config"
	"github.com/campusdesk/booking-dashboard/internal/dashboard"
	"github.com/campusdesk/booking-dashboard/internal/security"
	"github.com/campusdesk/booking-dashboard/internal/tray"
	"github.com/campusdesk/booking-dashboard/internal/workflow"
)

type Application struct {
	cfg    config.Config
	client *backend.Client
	tray   tray.App
	logger *slog.Logger
}

func New(cfg config.Config, client *backend.Client, tr tray.App, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	if tr == nil {
		tr = tray.NewNoop()
	}
	return &Application{cfg: cfg, client: client, tray: tr, logger: logger}
}

// Run assembles the components and blocks until the context is canceled
// or one of the goroutines fails. The first error wins; cancellation is a
// clean exit.
func (a *Application) Run(ctx context.Context) error {
	snapshot := dashboard.NewStore(a.client, a.logger)
	refresh := snapshot.Reload

	approvals := workflow.NewApprovals(workflow.ApprovalsOptions{
		API:              a.client,
		RefreshDashboard: refresh,
		PollInterval:     a.cfg.BadgePollInterval,
		OnBadge:          a.tray.SetPending,
		Logger:           a.logger,
	})

	server := api.New(api.Options{
		Snapshot:  snapshot,
		Status:    dashboard.NewStatusToggle(),
		Wizards:   workflow.NewWizardSet(a.client, refresh, a.logger),
		Approvals: approvals,
		Chat:      chat.NewSession(a.client, refresh, a.logger),
		Auth: security.BearerAuth{
			Enabled: a.cfg.RequireBearerToken,
			Token:   a.cfg.BearerToken,
		},
		AllowedOrigins: a.cfg.AllowedOrigins,
		Logger:         a.logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 3)
	wg := sync.WaitGroup{}

	if a.cfg.BindAddress != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.ServeTCP(ctx, a.cfg.BindAddress); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := approvals.RunBadge(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("badge poller: %w", err)
		}
	}()

	if a.cfg.EnableTray {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.tray.Run(ctx); err != nil {
				errCh <- fmt.Errorf("tray: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		cancel()
		wg.Wait()
		return err
	case <-ctx.Done():
		wg.Wait()
		return nil
	}
}
