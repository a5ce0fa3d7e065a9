package domain

import (
	"context"
	"time"
)

// Event represents a capacity-limited event run by an organizer. Entrants
// sign up to the event's waitlist; a lottery later promotes a bounded random
// subset of them to invited.
type Event struct {
	ID             string     `json:"id"`
	OrganizerID    string     `json:"organizer_id"`
	Name           string     `json:"name"`
	Capacity       int        `json:"capacity"`
	EntrantsToDraw int        `json:"entrants_to_draw"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	SelectionDate  *time.Time `json:"selection_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(organizerID, name string, capacity, entrantsToDraw int, startTime, endTime, createdAt, updatedAt time.Time) *Event {
	return &Event{
		OrganizerID:    organizerID,
		Name:           name,
		Capacity:       capacity,
		EntrantsToDraw: entrantsToDraw,
		StartTime:      startTime,
		EndTime:        endTime,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// EventRepository defines the interface for event storage, including the raw
// waitlist set on each event. Waitlist writes are commutative set operations:
// AddToWaitlist is a union (adding a present id is a no-op) and
// RemoveFromWaitlist is a difference (removing an absent id is a no-op), so
// concurrent callers never need coordination.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	AddToWaitlist(ctx context.Context, eventID, userID string, lat, lng *float64) error
	RemoveFromWaitlist(ctx context.Context, eventID, userID string) error
	ListWaitlist(ctx context.Context, eventID string) ([]string, error)
}

// EventService defines organizer-facing event operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
}

// WaitlistService defines entrant signup bookkeeping on an event's waitlist.
// The waitlist only records "interested"; it has no effect on the invitation
// list, and eligibility policy lives with the caller.
type WaitlistService interface {
	// Join adds the user to the event's waitlist. Joining twice leaves the
	// membership identical to joining once. lat/lng are the optional signup
	// location.
	Join(ctx context.Context, eventID, userID string, lat, lng *float64) error
	// Leave removes the user from the event's waitlist. Leaving an absent
	// user is a no-op, never an error.
	Leave(ctx context.Context, eventID, userID string) error
}
