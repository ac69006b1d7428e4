package backend

import (
	"context"
	"net/http"

	"github.com/campusdesk/booking-dashboard/internal/domain"
)

// ListEvents returns the active (non-deleted, non-pending) events.
func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.get(ctx, "/api/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// EventDetail fetches one event together with its allocated resources.
func (c *Client) EventDetail(ctx context.Context, eventID string) (domain.Event, []domain.Resource, error) {
	var out struct {
		Event     domain.Event      `json:"event"`
		Resources []domain.Resource `json:"resources"`
	}
	if err := c.get(ctx, "/api/event/"+eventID, &out); err != nil {
		return domain.Event{}, nil, err
	}
	return out.Event, out.Resources, nil
}

const (
	DeleteStatusDeleted = "deleted"
	DeleteStatusPending = "pending"
)

// DeleteOutcome reports what the backend did with a delete: an immediate
// delete, or a deletion request parked for approval.
type DeleteOutcome struct {
	Status  string
	Message string
}

func (o DeleteOutcome) Immediate() bool { return o.Status == DeleteStatusDeleted }

func (c *Client) DeleteEvent(ctx context.Context, eventID string) (DeleteOutcome, error) {
	env, err := c.send(ctx, http.MethodDelete, "/api/events/"+eventID, nil)
	if err != nil {
		return DeleteOutcome{}, err
	}
	status := env.Status
	if status == "" {
		status = DeleteStatusDeleted
	}
	return DeleteOutcome{Status: status, Message: env.Message}, nil
}

// ListArchivedEvents returns the trash history.
func (c *Client) ListArchivedEvents(ctx context.Context) ([]domain.ArchivedEvent, error) {
	var events []domain.ArchivedEvent
	if err := c.get(ctx, "/api/archived-events", &events); err != nil {
		return nil, err
	}
	return events, nil
}
