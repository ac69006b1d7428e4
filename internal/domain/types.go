package domain

import "time"

type ResourceCategory string

const (
	CategoryRoom       ResourceCategory = "Room"
	CategoryInstructor ResourceCategory = "Instructor"
	CategoryEquipment  ResourceCategory = "Equipment"
)

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
	Capacity    int       `json:"capacity,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	RequestedBy string    `json:"requested_by,omitempty"`
}

type Resource struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Category       ResourceCategory `json:"type"`
	Capacity       int              `json:"capacity,omitempty"`
	Specialization string           `json:"specialization,omitempty"`
}

// DeletionRequest is a pending request to remove an event. The title and
// type are snapshots taken when the request was filed, so they may differ
// from a later rename of the event itself.
type DeletionRequest struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	EventTitle  string `json:"event_title"`
	EventType   string `json:"event_type"`
	RequestedBy string `json:"requested_by,omitempty"`
	Status      string `json:"status"`
}

type ArchivedEvent struct {
	OriginalID string    `json:"original_id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	DeletedAt  time.Time `json:"deleted_at"`
}

// Availability holds the three independently computed candidate sets for a
// time window. Rooms and instructors gate the booking wizard; equipment is
// always optional.
type Availability struct {
	Rooms       []Resource `json:"rooms"`
	Instructors []Resource `json:"instructors"`
	Equipment   []Resource `json:"equipment"`
}
