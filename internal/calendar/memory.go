package calendar

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Memory is an in-memory EventSource. It backs offline mode and tests,
// with the same list/overlap semantics as the Google source.
type Memory struct {
	nextID int
	events map[string]Event
}

// NewMemory creates an empty in-memory event source.
func NewMemory() *Memory {
	return &Memory{events: make(map[string]Event)}
}

// ListEvents returns events overlapping [timeMin, timeMax), sorted by start.
func (m *Memory) ListEvents(_ context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	var out []Event
	for _, e := range m.events {
		if e.Start.Before(timeMax) && timeMin.Before(e.End) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Event) int {
		return a.Start.Compare(b.Start)
	})
	return out, nil
}

// CreateEvent stores the event and assigns a synthetic id and link.
func (m *Memory) CreateEvent(_ context.Context, event Event) (Event, error) {
	m.nextID++
	event.ID = fmt.Sprintf("evt-%d", m.nextID)
	event.Link = "memory://" + event.ID
	m.events[event.ID] = event
	return event, nil
}

// UpdateEvent replaces a stored event's mutable fields.
func (m *Memory) UpdateEvent(_ context.Context, id string, event Event) (Event, error) {
	stored, ok := m.events[id]
	if !ok {
		return Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	stored.Summary = event.Summary
	stored.Description = event.Description
	stored.Start = event.Start
	stored.End = event.End
	m.events[id] = stored
	return stored, nil
}

// DeleteEvent removes a stored event.
func (m *Memory) DeleteEvent(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	delete(m.events, id)
	return nil
}

// Len reports the number of stored events.
func (m *Memory) Len() int {
	return len(m.events)
}
