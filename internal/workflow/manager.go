package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

var ErrUnknownWizard = errors.New("unknown booking session")

// WizardSet hands out independent wizard instances keyed by session ID, so
// concurrent booking modals never share a draft.
type WizardSet struct {
	api     BookingAPI
	refresh func(context.Context) error
	log     *slog.Logger

	mu      sync.Mutex
	wizards map[string]*Wizard
}

func NewWizardSet(api BookingAPI, refresh func(context.Context) error, logger *slog.Logger) *WizardSet {
	if logger == nil {
		logger = slog.Default()
	}
	return &WizardSet{
		api:     api,
		refresh: refresh,
		log:     logger,
		wizards: make(map[string]*Wizard),
	}
}

// Open creates a fresh wizard at step 1 and returns its session ID.
func (s *WizardSet) Open() (string, *Wizard) {
	w := NewWizard(s.api, s.refresh, s.log)
	w.Open()
	id := uuid.NewString()
	s.mu.Lock()
	s.wizards[id] = w
	s.mu.Unlock()
	return id, w
}

func (s *WizardSet) Get(id string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wizards[id]
	if !ok {
		return nil, ErrUnknownWizard
	}
	return w, nil
}

// Close discards the wizard's draft and removes the session. A wizard in
// the middle of a submission refuses to close.
func (s *WizardSet) Close(id string) error {
	s.mu.Lock()
	w, ok := s.wizards[id]
	s.mu.Unlock()
	if !ok {
		return ErrUnknownWizard
	}
	if err := w.Close(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.wizards, id)
	s.mu.Unlock()
	return nil
}

// Reap drops sessions whose wizard has returned to idle (successful
// submissions leave the map entry behind).
func (s *WizardSet) Reap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.wizards {
		if w.State() == StateIdle {
			delete(s.wizards, id)
		}
	}
}
