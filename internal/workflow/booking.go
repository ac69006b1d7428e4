// Package workflow implements the two stateful pieces of the dashboard:
// the manual booking wizard and the approval queue. Both coordinate
// backend calls with client-held transient state and invoke the shared
// snapshot refresh after any mutation that changes the active-event set.
package workflow

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/campusdesk/booking-dashboard/internal/backend"
	"github.com/campusdesk/booking-dashboard/internal/domain"
)

type WizardState string

const (
	StateIdle           WizardState = "idle"
	StateTimeSelect     WizardState = "time_select"
	StateResourceSelect WizardState = "resource_select"
	StateSubmitting     WizardState = "submitting"
)

// DefaultEventTitle is substituted when the booking is submitted without a
// title.
const DefaultEventTitle = "Manual Event"

// Draft is the transient wizard state between step 1 and step 2. It lives
// only inside its wizard and is destroyed on submit success, cancel, or
// close.
type Draft struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Capacity int       `json:"capacity"`

	Title     string `json:"title"`
	EventType string `json:"event_type"`
	Purpose   string `json:"purpose"`

	RoomID       string   `json:"room_id"`
	InstructorID string   `json:"instructor_id"`
	EquipmentIDs []string `json:"equipment_ids"`

	Candidates domain.Availability `json:"candidates"`
}

func (d Draft) selectedResources() []string {
	var ids []string
	if d.RoomID != "" {
		ids = append(ids, d.RoomID)
	}
	if d.InstructorID != "" {
		ids = append(ids, d.InstructorID)
	}
	ids = append(ids, d.EquipmentIDs...)
	return ids
}

// BookingAPI is the slice of the backend client the wizard needs.
type BookingAPI interface {
	CheckAvailability(ctx context.Context, start, end time.Time, capacity int) (domain.Availability, error)
	BookManual(ctx context.Context, req backend.BookingRequest) error
}

// Wizard is the manual booking state machine:
//
//	Idle -> TimeSelect -> ResourceSelect -> Submitting -> Idle (success)
//	                                                   -> ResourceSelect (failure)
//
// One wizard serves one modal instance; concurrent instances each get
// their own.
type Wizard struct {
	api     BookingAPI
	refresh func(context.Context) error
	log     *slog.Logger

	mu    sync.Mutex
	state WizardState
	draft Draft
}

func NewWizard(api BookingAPI, refresh func(context.Context) error, logger *slog.Logger) *Wizard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Wizard{api: api, refresh: refresh, log: logger, state: StateIdle}
}

// Open resets to step 1 with an empty draft. Any prior draft is discarded;
// there is no resume-on-reopen.
func (w *Wizard) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = Draft{}
	w.state = StateTimeSelect
}

// Close discards the draft. Closing is refused while a submission is in
// flight so the outcome can still be applied consistently.
func (w *Wizard) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	w.draft = Draft{}
	w.state = StateIdle
	return nil
}

func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Snapshot returns the current state and a copy of the draft.
func (w *Wizard) Snapshot() (WizardState, Draft) {
	w.mu.Lock()
	defer w.mu.Unlock()
	draft := w.draft
	draft.EquipmentIDs = slices.Clone(draft.EquipmentIDs)
	draft.Candidates.Rooms = slices.Clone(draft.Candidates.Rooms)
	draft.Candidates.Instructors = slices.Clone(draft.Candidates.Instructors)
	draft.Candidates.Equipment = slices.Clone(draft.Candidates.Equipment)
	return w.state, draft
}

// CheckAvailability validates the window locally, queries the candidate
// sets, and advances to step 2 unless both rooms and instructors came back
// empty. The query itself is read-only, so a redundant re-entrant check is
// harmless.
func (w *Wizard) CheckAvailability(ctx context.Context, start, end time.Time, capacity int) (domain.Availability, error) {
	w.mu.Lock()
	if w.state != StateTimeSelect {
		w.mu.Unlock()
		return domain.Availability{}, ErrWrongStep
	}
	if start.IsZero() || end.IsZero() {
		w.mu.Unlock()
		return domain.Availability{}, ErrMissingTimeRange
	}
	w.draft.Start = start
	w.draft.End = end
	w.draft.Capacity = capacity
	w.mu.Unlock()

	avail, err := w.api.CheckAvailability(ctx, start, end, capacity)
	if err != nil {
		return domain.Availability{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateTimeSelect {
		// Closed (or re-opened) while the query was outstanding; the
		// result no longer has a home.
		return domain.Availability{}, ErrWrongStep
	}
	if len(avail.Rooms) == 0 && len(avail.Instructors) == 0 {
		return avail, ErrNoAvailability
	}
	w.draft.Candidates = avail
	w.draft.RoomID = ""
	w.draft.InstructorID = ""
	w.draft.EquipmentIDs = nil
	w.state = StateResourceSelect
	return avail, nil
}

// Back returns to step 1 keeping the time window and capacity. Selections
// and candidates are dropped; they are recomputed by the next check.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateResourceSelect:
	default:
		return ErrWrongStep
	}
	w.draft.RoomID = ""
	w.draft.InstructorID = ""
	w.draft.EquipmentIDs = nil
	w.draft.Candidates = domain.Availability{}
	w.state = StateTimeSelect
	return nil
}

// SelectRoom picks a single room from the candidates; an empty ID clears
// the selection.
func (w *Wizard) SelectRoom(id string) error {
	return w.selectSingle(id, func(d *Draft) (*string, []domain.Resource) {
		return &d.RoomID, d.Candidates.Rooms
	})
}

// SelectInstructor picks a single instructor from the candidates; an empty
// ID clears the selection.
func (w *Wizard) SelectInstructor(id string) error {
	return w.selectSingle(id, func(d *Draft) (*string, []domain.Resource) {
		return &d.InstructorID, d.Candidates.Instructors
	})
}

func (w *Wizard) selectSingle(id string, field func(*Draft) (*string, []domain.Resource)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateResourceSelect {
		return ErrWrongStep
	}
	target, candidates := field(&w.draft)
	if id == "" {
		*target = ""
		return nil
	}
	if !containsResource(candidates, id) {
		return ErrUnknownResource
	}
	*target = id
	return nil
}

// ToggleEquipment flips one equipment checkbox and reports whether it is
// now selected.
func (w *Wizard) ToggleEquipment(id string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateResourceSelect {
		return false, ErrWrongStep
	}
	if !containsResource(w.draft.Candidates.Equipment, id) {
		return false, ErrUnknownResource
	}
	if idx := slices.Index(w.draft.EquipmentIDs, id); idx >= 0 {
		w.draft.EquipmentIDs = slices.Delete(w.draft.EquipmentIDs, idx, idx+1)
		return false, nil
	}
	w.draft.EquipmentIDs = append(w.draft.EquipmentIDs, id)
	return true, nil
}

// Metadata is the step-2 event form.
type Metadata struct {
	Title     string
	EventType string
	Purpose   string
}

// Confirm assembles and submits the booking as one atomic request. A
// booking with zero resources is unusual but not forbidden; it requires
// ack=true, otherwise ErrConfirmationRequired is returned and nothing is
// sent. Success discards the draft, closes the wizard, and refreshes the
// dashboard snapshot; failure returns to step 2 with the draft intact.
func (w *Wizard) Confirm(ctx context.Context, meta Metadata, ack bool) error {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return ErrSubmitInFlight
	}
	if w.state != StateResourceSelect {
		w.mu.Unlock()
		return ErrWrongStep
	}
	w.draft.Title = meta.Title
	w.draft.EventType = meta.EventType
	w.draft.Purpose = meta.Purpose

	resources := w.draft.selectedResources()
	if len(resources) == 0 && !ack {
		w.mu.Unlock()
		return ErrConfirmationRequired
	}

	title := w.draft.Title
	if title == "" {
		title = DefaultEventTitle
	}
	req := backend.BookingRequest{
		Title:       title,
		Type:        w.draft.EventType,
		Capacity:    w.draft.Capacity,
		Purpose:     w.draft.Purpose,
		Start:       w.draft.Start,
		End:         w.draft.End,
		ResourceIDs: resources,
	}
	w.state = StateSubmitting
	w.mu.Unlock()

	err := w.api.BookManual(ctx, req)

	w.mu.Lock()
	if err != nil {
		w.state = StateResourceSelect
		w.mu.Unlock()
		return err
	}
	w.draft = Draft{}
	w.state = StateIdle
	w.mu.Unlock()

	if w.refresh != nil {
		if rerr := w.refresh(ctx); rerr != nil {
			w.log.Error("snapshot refresh after booking failed", "error", rerr)
		}
	}
	return nil
}

func containsResource(resources []domain.Resource, id string) bool {
	for _, r := range resources {
		if r.ID == id {
			return true
		}
	}
	return false
}
