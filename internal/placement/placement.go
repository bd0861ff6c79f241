// Package placement fits tasks into free calendar slots and commits them.
package placement

import (
	"context"
	"fmt"
	"time"

	"github.com/anandpillai/mitra/internal/calendar"
	"github.com/anandpillai/mitra/internal/dateutil"
	"github.com/anandpillai/mitra/internal/slot"
	"github.com/anandpillai/mitra/internal/todo"
)

// Outcome classifies the result of a single placement attempt.
type Outcome string

const (
	// OutcomeScheduled means a slot was found and the event committed.
	OutcomeScheduled Outcome = "scheduled"
	// OutcomeNoSlot means no free gap met the requested duration.
	OutcomeNoSlot Outcome = "no_slot"
	// OutcomeFailed means the window was invalid or the remote source errored.
	OutcomeFailed Outcome = "failed"
)

// Result reports one placement attempt. It is a value, not an error: a full
// day is an outcome the caller correlates to its input, and a batch carries
// one Result per item in input order.
type Result struct {
	Outcome     Outcome
	Description string
	Date        time.Time
	Duration    time.Duration
	Start       time.Time
	EventID     string
	Link        string
	Err         error
}

// Message renders the result as a human-readable status line.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeScheduled:
		return fmt.Sprintf("Scheduled %q on %s at %s. Link: %s",
			r.Description, r.Date.Format("2006-01-02"), r.Start.Format("15:04"), r.Link)
	case OutcomeNoSlot:
		return fmt.Sprintf("No available slot of %d minutes on %s for %q.",
			int(r.Duration.Minutes()), r.Date.Format("2006-01-02"), r.Description)
	default:
		return fmt.Sprintf("Failed to schedule %q: %v", r.Description, r.Err)
	}
}

// Engine places tasks through a remote event source. It owns the boundary
// between computing a slot and committing it: each placement is a full
// read-decide-commit cycle against the source.
type Engine struct {
	events calendar.EventSource
}

// NewEngine creates a placement engine over the given event source.
func NewEngine(events calendar.EventSource) *Engine {
	return &Engine{events: events}
}

// PlaceTask finds the earliest free slot of the given duration on date and
// commits an event there. earliest and latest are optional "HH:MM" bounds;
// empty strings default to the full day (00:00-23:59 in the date's zone).
func (e *Engine) PlaceTask(ctx context.Context, description string, duration time.Duration, date time.Time, earliest, latest string) Result {
	result := Result{Description: description, Date: date, Duration: duration}

	windowStart, windowEnd := dateutil.DayWindow(date)
	var err error
	if earliest != "" {
		if windowStart, err = dateutil.At(date, earliest); err != nil {
			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("earliest time: %w", err)
			return result
		}
	}
	if latest != "" {
		if windowEnd, err = dateutil.At(date, latest); err != nil {
			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("latest time: %w", err)
			return result
		}
	}

	events, err := e.events.ListEvents(ctx, windowStart, windowEnd)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("listing events: %w", err)
		return result
	}
	busy := make([]slot.Interval, 0, len(events))
	for _, ev := range events {
		busy = append(busy, slot.Interval{Start: ev.Start, End: ev.End})
	}

	free, ok := slot.First(windowStart, windowEnd, busy, duration)
	if !ok {
		result.Outcome = OutcomeNoSlot
		return result
	}

	created, err := e.events.CreateEvent(ctx, calendar.Event{
		Summary: description,
		Start:   free.Start,
		End:     free.Start.Add(duration),
	})
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("creating event: %w", err)
		return result
	}

	result.Outcome = OutcomeScheduled
	result.Start = created.Start
	result.EventID = created.ID
	result.Link = created.Link
	return result
}

// PlacePendingTasks schedules every pending to-do item into successive free
// slots on date, in file order. Each placement re-queries the event source,
// so earlier commits in the batch are visible to later placements and two
// items never share a slot. A single item's failure does not stop the batch;
// the returned slice carries one Result per pending item, in input order.
func (e *Engine) PlacePendingTasks(ctx context.Context, list *todo.List, date time.Time, defaultDuration time.Duration) ([]Result, error) {
	pending, err := list.Pending()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(pending))
	for _, item := range pending {
		results = append(results, e.PlaceTask(ctx, item.Text, defaultDuration, date, "", ""))
	}
	return results, nil
}
