package backend

import (
	"context"
	"net/http"

	"github.com/campusdesk/booking-dashboard/internal/domain"
)

// DefaultRejectReason is substituted when the reviewer gives no reason.
const DefaultRejectReason = "No reason provided"

// ListPendingEvents returns event-creation requests awaiting review.
func (c *Client) ListPendingEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.get(ctx, "/api/pending-events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) ApproveEvent(ctx context.Context, eventID string) error {
	_, err := c.send(ctx, http.MethodPost, "/api/approve-event/"+eventID, nil)
	return err
}

func (c *Client) RejectEvent(ctx context.Context, eventID, reason string) error {
	if reason == "" {
		reason = DefaultRejectReason
	}
	payload := struct {
		Reason string `json:"reason"`
	}{Reason: reason}
	_, err := c.send(ctx, http.MethodPost, "/api/reject-event/"+eventID, payload)
	return err
}

// ListDeletionRequests returns pending deletion requests.
func (c *Client) ListDeletionRequests(ctx context.Context) ([]domain.DeletionRequest, error) {
	var requests []domain.DeletionRequest
	if err := c.get(ctx, "/api/deletion-requests", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) ApproveDeletion(ctx context.Context, requestID string) error {
	_, err := c.send(ctx, http.MethodPost, "/api/approve-deletion/"+requestID, nil)
	return err
}

func (c *Client) RejectDeletion(ctx context.Context, requestID string) error {
	_, err := c.send(ctx, http.MethodPost, "/api/reject-deletion/"+requestID, nil)
	return err
}
