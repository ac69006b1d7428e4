package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/campusdesk/booking-dashboard/internal/backend"
	"github.com/campusdesk/booking-dashboard/internal/domain"
)

type fakeApprovalAPI struct {
	mu          sync.Mutex
	pending     []domain.Event
	pendingErr  error
	requests    []domain.DeletionRequest
	requestsErr error

	approveEventErr error
	rejectEventErr  error

	approvedEvents    []string
	rejectedEvents    []string
	rejectReasons     []string
	approvedDeletions []string
	rejectedDeletions []string
}

func (f *fakeApprovalAPI) ListPendingEvents(context.Context) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending, f.pendingErr
}

func (f *fakeApprovalAPI) ListDeletionRequests(context.Context) ([]domain.DeletionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests, f.requestsErr
}

func (f *fakeApprovalAPI) ApproveEvent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.approveEventErr != nil {
		return f.approveEventErr
	}
	f.approvedEvents = append(f.approvedEvents, id)
	f.dropPending(id)
	return nil
}

func (f *fakeApprovalAPI) RejectEvent(_ context.Context, id, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rejectEventErr != nil {
		return f.rejectEventErr
	}
	f.rejectedEvents = append(f.rejectedEvents, id)
	f.rejectReasons = append(f.rejectReasons, reason)
	f.dropPending(id)
	return nil
}

func (f *fakeApprovalAPI) ApproveDeletion(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.approvedDeletions = append(f.approvedDeletions, id)
	f.dropRequest(id)
	return nil
}

func (f *fakeApprovalAPI) RejectDeletion(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejectedDeletions = append(f.rejectedDeletions, id)
	f.dropRequest(id)
	return nil
}

func (f *fakeApprovalAPI) dropPending(id string) {
	kept := f.pending[:0]
	for _, evt := range f.pending {
		if evt.ID != id {
			kept = append(kept, evt)
		}
	}
	f.pending = kept
}

func (f *fakeApprovalAPI) dropRequest(id string) {
	kept := f.requests[:0]
	for _, req := range f.requests {
		if req.ID != id {
			kept = append(kept, req)
		}
	}
	f.requests = kept
}

func pendingEvent(id string) domain.Event {
	return domain.Event{ID: id, Title: "Event " + id, Type: "Seminar"}
}

func deletionRequest(id, eventID string) domain.DeletionRequest {
	return domain.DeletionRequest{ID: id, EventID: eventID, EventTitle: "Event " + eventID, EventType: "Class", Status: "pending"}
}

func TestLoadQueueMergeOrderAndTagging(t *testing.T) {
	t.Parallel()
	api := &fakeApprovalAPI{
		pending:  []domain.Event{pendingEvent("E1"), pendingEvent("E2")},
		requests: []domain.DeletionRequest{deletionRequest("D7", "E12")},
	}
	a := NewApprovals(ApprovalsOptions{API: api})

	items, err := a.LoadQueue(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []struct {
		source Source
		id     string
	}{
		{SourceCreation, "E1"},
		{SourceCreation, "E2"},
		{SourceDeletion, "D7"},
	}
	for i, w := range want {
		if items[i].Source != w.source || items[i].ID != w.id {
			t.Fatalf("item %d = %s/%s, want %s/%s", i, items[i].Source, items[i].ID, w.source, w.id)
		}
	}
	if items[2].EventID != "E12" {
		t.Fatalf("deletion item must carry its target event, got %+v", items[2])
	}
}

func TestLoadQueueDegradesPerSource(t *testing.T) {
	t.Parallel()
	api := &fakeApprovalAPI{
		pendingErr: &backend.APIError{Status: 500, Reason: "boom"},
		requests:   []domain.DeletionRequest{deletionRequest("D1", "E1"), deletionRequest("D2", "E2")},
	}
	a := NewApprovals(ApprovalsOptions{API: api})

	items, err := a.LoadQueue(context.Background())
	if err != nil {
		t.Fatalf("one failed source must not be fatal: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("failed source contributes zero, got %d items", len(items))
	}
	for _, item := range items {
		if item.Source != SourceDeletion {
			t.Fatalf("unexpected source: %s", item.Source)
		}
	}
}

func TestLoadQueueBothUnreachable(t *testing.T) {
	t.Parallel()
	api := &fakeApprovalAPI{
		pendingErr:  errors.New("dial tcp: connection refused"),
		requestsErr: errors.New("dial tcp: connection refused"),
	}
	a := NewApprovals(ApprovalsOptions{API: api})
	if _, err := a.LoadQueue(context.Background()); !errors.Is(err, ErrQueueUnavailable) {
		t.Fatalf("expected ErrQueueUnavailable, got %v", err)
	}
}

func TestBadgeShowsAndHides(t *testing.T) {
	t.Parallel()
	api := &fakeApprovalAPI{pending: []domain.Event{pendingEvent("E1"), pendingEvent("E2"), pendingEvent("E3")}}
	var gotCount int
	var gotVisible bool
	a := NewApprovals(ApprovalsOptions{
		API:     api,
		OnBadge: func(count int, visible bool) { gotCount, gotVisible = count, visible },
	})

	if count, err := a.RefreshBadge(context.Background()); err != nil || count != 3 {
		t.Fatalf("refresh = %d, %v", count, err)
	}
	if gotCount != 3 || !gotVisible {
		t.Fatalf("badge callback = (%d, %v), want (3, true)", gotCount, gotVisible)
	}

	api.mu.Lock()
	api.pending = nil
	api.mu.Unlock()
	if count, err := a.RefreshBadge(context.Background()); err != nil || count != 0 {
		t.Fatalf("refresh = %d, %v", count, err)
	}
	if gotVisible {
		t.Fatal("badge must hide at zero")
	}
}

func TestBadgeFailsOpen(t *testing.T) {
	t.Parallel()
	api := &fakeApprovalAPI{pending: []domain.Event{pendingEvent("E1"), pendingEvent("E2")}}
	calls := 0
	a := NewApprovals(ApprovalsOptions{API: api, OnBadge: func(int, bool) { calls++ }})
	if _, err := a.RefreshBadge(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	api.mu.Lock()
	api.pendingErr = errors.New("network down")
	api.mu.Unlock()
	count, err := a.RefreshBadge(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if count != 2 {
		t.Fatalf("badge must keep last-known count, got %d", count)
	}
	if calls != 1 {
		t.Fatalf("failed refresh must not re-render the badge, callbacks = %d", calls)
	}
}

func TestDecideRequiresConfirmation(t *testing.T) {
	t.Parallel()
	api := &fakeApprovalAPI{pending: []domain.Event{pendingEvent("E1")}}
	a := NewApprovals(ApprovalsOptions{API: api})
	if _, err := a.Decide(context.Background(), SourceCreation, "E1", true, "", false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if len(api.approvedEvents) != 0 {
		t.Fatal("declined confirmation must not reach the backend")
	}
}

func TestApproveCreationRefreshesDashboard(t *testing.T) {
	t.Parallel()
	api := &fakeApprovalAPI{pending: []domain.Event{pendingEvent("E1"), pendingEvent("E2")}}
	refreshed := 0
	a := NewApprovals(ApprovalsOptions{
		API:              api,
		RefreshDashboard: func(context.Context) error { refreshed++; return nil },
	})

	items, err := a.Decide(context.Background(), SourceCreation, "E1", true, "", true)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if len(api.approvedEvents) != 1 || api.approvedEvents[0] != "E1" {
		t.Fatalf("unexpected approvals: %v", api.approvedEvents)
	}
	if refreshed != 1 {
		t.Fatalf("creation approval must refresh dashboard, got %d", refreshed)
	}
	if len(items) != 1 || items[0].ID != "E2" {
		t.Fatalf("queue must be re-derived from backend truth: %+v", items)
	}
	if a.BadgeCount() != 1 {
		t.Fatalf("badge must be re-counted, got %d", a.BadgeCount())
	}
}

func TestRejectDoesNotRefreshDashboard(t *testing.T) {
	t.Parallel()
	api := &fakeApprovalAPI{
		pending:  []domain.Event{pendingEvent("E9")},
		requests: []domain.DeletionRequest{deletionRequest("D1", "E5")},
	}
	refreshed := 0
	a := NewApprovals(ApprovalsOptions{
		API:              api,
		RefreshDashboard: func(context.Context) error { refreshed++; return nil },
	})

	items, err := a.Decide(context.Background(), SourceCreation, "E9", false, "Room conflict", true)
	if err != nil {
		t.Fatalf("reject event: %v", err)
	}
	if api.rejectReasons[0] != "Room conflict" {
		t.Fatalf("reason must pass through, got %v", api.rejectReasons)
	}
	for _, item := range items {
		if item.ID == "E9" {
			t.Fatal("rejected event must leave the pending queue")
		}
	}

	if _, err := a.Decide(context.Background(), SourceDeletion, "D1", false, "", true); err != nil {
		t.Fatalf("reject deletion: %v", err)
	}
	if len(api.rejectedDeletions) != 1 {
		t.Fatalf("deletion rejection must hit the deletion endpoint, got %v", api.rejectedDeletions)
	}
	if refreshed != 0 {
		t.Fatalf("rejections must not refresh the dashboard, got %d", refreshed)
	}
}

func TestApproveDeletionRoutesBySource(t *testing.T) {
	t.Parallel()
	// A creation request and a deletion request share a title; only the
	// provenance tag may decide the endpoint.
	api := &fakeApprovalAPI{
		pending:  []domain.Event{{ID: "E7", Title: "Exam Review", Type: "Class"}},
		requests: []domain.DeletionRequest{{ID: "D7", EventID: "E12", EventTitle: "Exam Review", EventType: "Class", Status: "pending"}},
	}
	refreshed := 0
	a := NewApprovals(ApprovalsOptions{
		API:              api,
		RefreshDashboard: func(context.Context) error { refreshed++; return nil },
	})

	if _, err := a.Decide(context.Background(), SourceDeletion, "D7", true, "", true); err != nil {
		t.Fatalf("approve deletion: %v", err)
	}
	if len(api.approvedDeletions) != 1 || api.approvedDeletions[0] != "D7" {
		t.Fatalf("expected deletion endpoint, got deletions=%v events=%v", api.approvedDeletions, api.approvedEvents)
	}
	if len(api.approvedEvents) != 0 {
		t.Fatal("creation endpoint must not be touched")
	}
	if refreshed != 1 {
		t.Fatal("deletion approval changes the active set and must refresh")
	}
}

func TestDecideFailureKeepsItemQueued(t *testing.T) {
	t.Parallel()
	api := &fakeApprovalAPI{
		pending:         []domain.Event{pendingEvent("E1")},
		approveEventErr: &backend.APIError{Status: 400, Reason: "Failed to create event: conflict"},
	}
	refreshed := 0
	a := NewApprovals(ApprovalsOptions{
		API:              api,
		RefreshDashboard: func(context.Context) error { refreshed++; return nil },
	})

	_, err := a.Decide(context.Background(), SourceCreation, "E1", true, "", true)
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.Reason != "Failed to create event: conflict" {
		t.Fatalf("backend reason must surface, got %v", err)
	}
	if refreshed != 0 {
		t.Fatal("failed decision must not refresh the dashboard")
	}
	items, lerr := a.LoadQueue(context.Background())
	if lerr != nil || len(items) != 1 || items[0].ID != "E1" {
		t.Fatalf("item must remain queued: %+v (%v)", items, lerr)
	}
}
