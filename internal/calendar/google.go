package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Google implements EventSource against the Google Calendar API.
type Google struct {
	srv        *gcal.Service
	calendarID string
	zone       *time.Location
}

// NewGoogle creates a Google event source for the given calendar id
// ("primary" addresses the account's default calendar).
func NewGoogle(ctx context.Context, credentialsDir, calendarID string, zone *time.Location) (*Google, error) {
	client, err := authClient(ctx, credentialsDir)
	if err != nil {
		return nil, err
	}

	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	if calendarID == "" {
		calendarID = "primary"
	}
	return &Google{srv: srv, calendarID: calendarID, zone: zone}, nil
}

// ListEvents returns single (recurrence-expanded) events overlapping the
// window, ordered by start time. All-day events carry only a date; they are
// pinned to midnight in the configured zone.
func (g *Google) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]Event, error) {
	result, err := g.srv.Events.List(g.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		start, err := g.parseEventTime(item.Start)
		if err != nil {
			return nil, fmt.Errorf("event %s start: %w", item.Id, err)
		}
		end, err := g.parseEventTime(item.End)
		if err != nil {
			return nil, fmt.Errorf("event %s end: %w", item.Id, err)
		}
		events = append(events, Event{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Start:       start,
			End:         end,
			Link:        item.HtmlLink,
		})
	}
	return events, nil
}

// CreateEvent inserts a new event with zone-qualified timestamps.
func (g *Google) CreateEvent(ctx context.Context, event Event) (Event, error) {
	created, err := g.srv.Events.Insert(g.calendarID, g.toAPI(event)).Context(ctx).Do()
	if err != nil {
		return Event{}, fmt.Errorf("inserting event: %w", err)
	}
	event.ID = created.Id
	event.Link = created.HtmlLink
	return event, nil
}

// UpdateEvent replaces summary, description, and times of an existing event.
func (g *Google) UpdateEvent(ctx context.Context, id string, event Event) (Event, error) {
	updated, err := g.srv.Events.Patch(g.calendarID, id, g.toAPI(event)).Context(ctx).Do()
	if err != nil {
		return Event{}, fmt.Errorf("updating event %s: %w", id, err)
	}
	event.ID = updated.Id
	event.Link = updated.HtmlLink
	return event, nil
}

// DeleteEvent removes an event by id.
func (g *Google) DeleteEvent(ctx context.Context, id string) error {
	if err := g.srv.Events.Delete(g.calendarID, id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	return nil
}

func (g *Google) toAPI(event Event) *gcal.Event {
	return &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: g.zone.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: g.zone.String(),
		},
	}
}

func (g *Google) parseEventTime(edt *gcal.EventDateTime) (time.Time, error) {
	if edt == nil {
		return time.Time{}, fmt.Errorf("missing event time")
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(g.zone), nil
	}
	// All-day event: date only.
	t, err := time.ParseInLocation("2006-01-02", edt.Date, g.zone)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
