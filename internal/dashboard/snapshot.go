// Package dashboard holds the client-side snapshot of events and resources
// and derives the read-only views from it. The snapshot is never patched in
// place: every mutation elsewhere in the system triggers a full Reload, so
// the views can never drift from backend truth.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/campusdesk/booking-dashboard/internal/backend"
	"github.com/campusdesk/booking-dashboard/internal/domain"
)

// API is the slice of the backend client the dashboard needs.
type API interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListResources(ctx context.Context) ([]domain.Resource, error)
	EventDetail(ctx context.Context, eventID string) (domain.Event, []domain.Resource, error)
	DeleteEvent(ctx context.Context, eventID string) (backend.DeleteOutcome, error)
	ListArchivedEvents(ctx context.Context) ([]domain.ArchivedEvent, error)
}

type Store struct {
	api API
	log *slog.Logger

	mu        sync.RWMutex
	events    []domain.Event
	resources []domain.Resource
	loadedAt  time.Time
}

func NewStore(api API, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{api: api, log: logger}
}

// Reload replaces the snapshot with a fresh read. The two fetches are
// independent: one failing leaves the other's data current, matching the
// panel-by-panel degradation of the dashboard. ErrUnauthorized wins over
// everything else so the surface can redirect to login.
func (s *Store) Reload(ctx context.Context) error {
	events, evErr := s.api.ListEvents(ctx)
	resources, resErr := s.api.ListResources(ctx)

	s.mu.Lock()
	if evErr == nil {
		s.events = events
	}
	if resErr == nil {
		s.resources = resources
	}
	if evErr == nil || resErr == nil {
		s.loadedAt = time.Now()
	}
	s.mu.Unlock()

	if errors.Is(evErr, backend.ErrUnauthorized) || errors.Is(resErr, backend.ErrUnauthorized) {
		return backend.ErrUnauthorized
	}
	if evErr != nil {
		s.log.Error("loading events failed", "error", evErr)
	}
	if resErr != nil {
		s.log.Error("loading resources failed", "error", resErr)
	}
	return errors.Join(evErr, resErr)
}

// Events returns a copy of the active-event snapshot.
func (s *Store) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Rooms returns the room panel of the resource directory.
func (s *Store) Rooms() []domain.Resource {
	return s.byCategory(domain.CategoryRoom)
}

// Instructors returns the instructor panel of the resource directory.
func (s *Store) Instructors() []domain.Resource {
	return s.byCategory(domain.CategoryInstructor)
}

func (s *Store) byCategory(cat domain.ResourceCategory) []domain.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Resource
	for _, r := range s.resources {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}

// EventCard is the list-view rendering of one active event.
type EventCard struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	When  string `json:"when"`
}

func (s *Store) EventCards() []EventCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cards := make([]EventCard, 0, len(s.events))
	for _, evt := range s.events {
		cards = append(cards, EventCard{
			ID:    evt.ID,
			Title: evt.Title,
			Type:  evt.Type,
			When:  evt.Start.Format("Jan 2, 2006 3:04 PM"),
		})
	}
	return cards
}

const noResourcesPlaceholder = "No resources allocated directly."

// Detail is the expanded view of one event plus its allocations.
type Detail struct {
	Event     domain.Event      `json:"event"`
	Resources []domain.Resource `json:"resources"`
	Note      string            `json:"note,omitempty"`
}

// EventDetail fetches one event on demand; it never reads the snapshot.
func (s *Store) EventDetail(ctx context.Context, eventID string) (Detail, error) {
	evt, resources, err := s.api.EventDetail(ctx, eventID)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{Event: evt, Resources: resources}
	if len(resources) == 0 {
		d.Note = noResourcesPlaceholder
	}
	return d, nil
}

// RequestDelete triggers deletion of an event. Depending on the caller's
// role the backend either deletes immediately or files a deletion request;
// only an immediate delete changes the active set, so only that outcome
// reloads the snapshot.
func (s *Store) RequestDelete(ctx context.Context, eventID string) (backend.DeleteOutcome, error) {
	outcome, err := s.api.DeleteEvent(ctx, eventID)
	if err != nil {
		return backend.DeleteOutcome{}, err
	}
	if outcome.Immediate() {
		if rerr := s.Reload(ctx); rerr != nil {
			s.log.Error("snapshot reload after delete failed", "error", rerr)
		}
	}
	return outcome, nil
}

// TrashCard is the archive rendering of a deleted event.
type TrashCard struct {
	OriginalID string `json:"original_id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	DeletedOn  string `json:"deleted_on"`
}

// TrashCards fetches the archive fresh on every open.
func (s *Store) TrashCards(ctx context.Context) ([]TrashCard, error) {
	archived, err := s.api.ListArchivedEvents(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]TrashCard, 0, len(archived))
	for _, evt := range archived {
		cards = append(cards, TrashCard{
			OriginalID: evt.OriginalID,
			Title:      evt.Title,
			Type:       evt.Type,
			DeletedOn:  evt.DeletedAt.Format("Jan 2, 2006"),
		})
	}
	return cards, nil
}

// ReportRow is one line of the active-events report.
type ReportRow struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Date      string `json:"date"`
	CreatedBy string `json:"created_by"`
}

func (s *Store) ReportRows() []ReportRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]ReportRow, 0, len(s.events))
	for _, evt := range s.events {
		createdBy := evt.CreatedBy
		if createdBy == "" {
			createdBy = "Unknown"
		}
		rows = append(rows, ReportRow{
			ID:        evt.ID,
			Title:     evt.Title,
			Type:      evt.Type,
			Date:      evt.Start.Format("2006-01-02"),
			CreatedBy: createdBy,
		})
	}
	return rows
}
