package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/campusdesk/booking-dashboard/internal/domain"
)

// CheckAvailability queries the candidate sets for a time window. The query
// is read-only on the backend and safe to repeat.
func (c *Client) CheckAvailability(ctx context.Context, start, end time.Time, capacity int) (domain.Availability, error) {
	payload := struct {
		Start    time.Time `json:"start"`
		End      time.Time `json:"end"`
		Capacity int       `json:"capacity,omitempty"`
	}{Start: start, End: end, Capacity: capacity}

	var avail domain.Availability
	if err := c.postAs(ctx, "/api/check-availability", payload, &avail); err != nil {
		return domain.Availability{}, err
	}
	return avail, nil
}

// BookingRequest is the atomic manual-booking submission: event metadata
// plus the chosen resource identifiers.
type BookingRequest struct {
	Title       string
	Type        string
	Capacity    int
	Purpose     string
	Start       time.Time
	End         time.Time
	ResourceIDs []string
}

func (c *Client) BookManual(ctx context.Context, req BookingRequest) error {
	payload := struct {
		Event struct {
			Title    string    `json:"title"`
			Type     string    `json:"type"`
			Capacity int       `json:"capacity,omitempty"`
			Purpose  string    `json:"purpose,omitempty"`
			Start    time.Time `json:"start"`
			End      time.Time `json:"end"`
		} `json:"event"`
		Resources []string `json:"resources"`
	}{Resources: req.ResourceIDs}
	payload.Event.Title = req.Title
	payload.Event.Type = req.Type
	payload.Event.Capacity = req.Capacity
	payload.Event.Purpose = req.Purpose
	payload.Event.Start = req.Start
	payload.Event.End = req.End
	if payload.Resources == nil {
		payload.Resources = []string{}
	}

	_, err := c.send(ctx, http.MethodPost, "/api/book-manual", payload)
	return err
}
