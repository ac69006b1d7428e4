// Package chat drives the conversational booking front end. The session
// owns a transcript, forwards user text verbatim to the backend
// interpreter, and kicks the shared dashboard refresh when a reply signals
// a completed booking.
package chat

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusdesk/booking-dashboard/internal/markup"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var ErrEmptyMessage = errors.New("chat message is empty")

// successMarkers is the interpreter's implicit success contract: when the
// raw reply contains one of these, a booking went through and the dashboard
// snapshot is stale. Fragile, but it is the contract the backend exposes.
var successMarkers = []string{"Confirmed", "Successfully"}

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	HTML      string    `json:"html"`
	Failed    bool      `json:"failed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Sender is the backend interpreter collaborator.
type Sender interface {
	SendChat(ctx context.Context, message string) (string, error)
}

type Session struct {
	sender  Sender
	refresh func(context.Context) error
	log     *slog.Logger

	mu         sync.Mutex
	transcript []Message
}

func NewSession(sender Sender, refresh func(context.Context) error, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{sender: sender, refresh: refresh, log: logger}
}

// Send records the user's message, forwards it, and records the reply. A
// transport failure still leaves an error entry in the transcript so the
// exchange is never silently dropped.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	s.append(Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		HTML:      html.EscapeString(text),
		CreatedAt: time.Now(),
	})

	reply, err := s.sender.SendChat(ctx, text)
	if err != nil {
		s.log.Error("chat request failed", "error", err)
		failed := Message{
			ID:        uuid.NewString(),
			Role:      RoleAssistant,
			Text:      "Error connecting to the assistant.",
			HTML:      "Error connecting to the assistant.",
			Failed:    true,
			CreatedAt: time.Now(),
		}
		s.append(failed)
		return failed, err
	}

	msg := Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Text:      reply,
		HTML:      markup.Render(reply),
		CreatedAt: time.Now(),
	}
	s.append(msg)

	if s.refresh != nil && containsSuccessMarker(reply) {
		if err := s.refresh(ctx); err != nil {
			s.log.Error("dashboard refresh after chat booking failed", "error", err)
		}
	}
	return msg, nil
}

func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, msg)
}

func containsSuccessMarker(reply string) bool {
	for _, marker := range successMarkers {
		if strings.Contains(reply, marker) {
			return true
		}
	}
	return false
}
