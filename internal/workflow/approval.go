package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/campusdesk/booking-dashboard/internal/backend"
	"github.com/campusdesk/booking-dashboard/internal/domain"
)

// Source is the provenance discriminant of a queue item. It is assigned
// when the queues are merged and travels with the item so decisions are
// dispatched to the right endpoint pair; it is never inferred from content
// (creation and deletion titles can collide).
type Source string

const (
	SourceCreation Source = "creation"
	SourceDeletion Source = "deletion"
)

// QueueItem is one reviewer card in the merged approval queue.
type QueueItem struct {
	Source      Source    `json:"source"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Capacity    int       `json:"capacity,omitempty"`
	Start       time.Time `json:"start_time,omitempty"`
	End         time.Time `json:"end_time,omitempty"`
	Description string    `json:"description,omitempty"`
	RequestedBy string    `json:"requested_by,omitempty"`
	// EventID is set for deletion items only: the event the request targets.
	EventID string `json:"event_id,omitempty"`
}

// ApprovalAPI is the slice of the backend client the approval workflow
// needs.
type ApprovalAPI interface {
	ListPendingEvents(ctx context.Context) ([]domain.Event, error)
	ListDeletionRequests(ctx context.Context) ([]domain.DeletionRequest, error)
	ApproveEvent(ctx context.Context, eventID string) error
	RejectEvent(ctx context.Context, eventID, reason string) error
	ApproveDeletion(ctx context.Context, requestID string) error
	RejectDeletion(ctx context.Context, requestID string) error
}

// Approvals reconciles the two pending queues into one reviewer view and
// routes decisions back by provenance. The queue is re-derived from
// backend truth after every decision; nothing is patched locally.
type Approvals struct {
	api              ApprovalAPI
	refreshDashboard func(context.Context) error
	pollInterval     time.Duration
	onBadge          func(count int, visible bool)
	log              *slog.Logger

	mu         sync.RWMutex
	badgeCount int
}

type ApprovalsOptions struct {
	API              ApprovalAPI
	RefreshDashboard func(context.Context) error
	PollInterval     time.Duration
	// OnBadge is invoked with the new count after every successful badge
	// refresh; visible is false only at zero.
	OnBadge func(count int, visible bool)
	Logger  *slog.Logger
}

func NewApprovals(opts ApprovalsOptions) *Approvals {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Approvals{
		api:              opts.API,
		refreshDashboard: opts.RefreshDashboard,
		pollInterval:     interval,
		onBadge:          opts.OnBadge,
		log:              logger,
	}
}

// LoadQueue issues the two pending queries concurrently and merges once
// both settle: creation items first in backend order, then deletion items
// in backend order. One failed source degrades to an empty contribution;
// only when both fail at the transport level is the whole queue reported
// unavailable, which callers must render distinctly from an empty queue.
func (a *Approvals) LoadQueue(ctx context.Context) ([]QueueItem, error) {
	var (
		wg       sync.WaitGroup
		pending  []domain.Event
		pendErr  error
		requests []domain.DeletionRequest
		delErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		pending, pendErr = a.api.ListPendingEvents(ctx)
	}()
	go func() {
		defer wg.Done()
		requests, delErr = a.api.ListDeletionRequests(ctx)
	}()
	wg.Wait()

	if backend.IsUnreachable(pendErr) && backend.IsUnreachable(delErr) {
		return nil, fmt.Errorf("%w: %v", ErrQueueUnavailable, pendErr)
	}
	if pendErr != nil {
		a.log.Error("loading pending events failed", "error", pendErr)
		pending = nil
	}
	if delErr != nil {
		a.log.Error("loading deletion requests failed", "error", delErr)
		requests = nil
	}

	items := make([]QueueItem, 0, len(pending)+len(requests))
	for _, evt := range pending {
		items = append(items, QueueItem{
			Source:      SourceCreation,
			ID:          evt.ID,
			Title:       evt.Title,
			Type:        evt.Type,
			Capacity:    evt.Capacity,
			Start:       evt.Start,
			End:         evt.End,
			Description: evt.Description,
			RequestedBy: evt.RequestedBy,
		})
	}
	for _, req := range requests {
		items = append(items, QueueItem{
			Source:      SourceDeletion,
			ID:          req.ID,
			Title:       req.EventTitle,
			Type:        req.EventType,
			RequestedBy: req.RequestedBy,
			EventID:     req.EventID,
		})
	}
	return items, nil
}

// RefreshBadge re-counts the badge from the pending-events queue only;
// deletion requests do not contribute. On failure the last-known badge is
// kept rather than cleared.
func (a *Approvals) RefreshBadge(ctx context.Context) (int, error) {
	pending, err := a.api.ListPendingEvents(ctx)
	if err != nil {
		a.log.Error("badge refresh failed", "error", err)
		return a.BadgeCount(), err
	}
	count := len(pending)
	a.mu.Lock()
	a.badgeCount = count
	a.mu.Unlock()
	if a.onBadge != nil {
		a.onBadge(count, count > 0)
	}
	return count, nil
}

func (a *Approvals) BadgeCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.badgeCount
}

// RunBadge refreshes once immediately, then on every poll tick until the
// context is canceled.
func (a *Approvals) RunBadge(ctx context.Context) error {
	_, _ = a.RefreshBadge(ctx)
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_, _ = a.RefreshBadge(ctx)
		}
	}
}

// Decide applies one reviewer decision. Decisions are irreversible, so the
// caller must pass confirmed=true or nothing is sent. On success the queue
// is re-derived with the full two-query fetch and the badge re-counted;
// approvals of either provenance additionally refresh the dashboard
// snapshot, since only they change the active-event set. On failure the
// item stays queued and the backend reason propagates to the caller.
func (a *Approvals) Decide(ctx context.Context, source Source, id string, approve bool, reason string, confirmed bool) ([]QueueItem, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	var err error
	switch {
	case source == SourceCreation && approve:
		err = a.api.ApproveEvent(ctx, id)
	case source == SourceCreation:
		err = a.api.RejectEvent(ctx, id, reason)
	case source == SourceDeletion && approve:
		err = a.api.ApproveDeletion(ctx, id)
	case source == SourceDeletion:
		err = a.api.RejectDeletion(ctx, id)
	default:
		err = fmt.Errorf("unknown queue source: %s", source)
	}
	if err != nil {
		return nil, err
	}

	if approve && a.refreshDashboard != nil {
		if rerr := a.refreshDashboard(ctx); rerr != nil {
			a.log.Error("dashboard refresh after approval failed", "error", rerr)
		}
	}
	_, _ = a.RefreshBadge(ctx)
	return a.LoadQueue(ctx)
}
