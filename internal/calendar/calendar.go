// Package calendar abstracts the remote calendar the assistant commits
// events to.
package calendar

import (
	"context"
	"errors"
	"time"
)

// Event is a time-ranged calendar entry.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Link        string
}

// ErrEventNotFound is returned when an event id does not exist.
var ErrEventNotFound = errors.New("event not found")

// EventSource enumerates and mutates events on a single calendar.
// All timestamps are timezone-qualified; implementations must return
// listed events ordered by start time.
type EventSource interface {
	// ListEvents returns events overlapping [timeMin, timeMax), sorted by start.
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error)

	// CreateEvent commits a new event and returns it with ID and Link set.
	CreateEvent(ctx context.Context, event Event) (Event, error)

	// UpdateEvent replaces the mutable fields of an existing event.
	UpdateEvent(ctx context.Context, id string, event Event) (Event, error)

	// DeleteEvent removes an event by id.
	DeleteEvent(ctx context.Context, id string) error
}
