// Package recurrence projects recurring calls from contact cadences and
// schedules them on the calendar.
package recurrence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anandpillai/mitra/internal/calendar"
	"github.com/anandpillai/mitra/internal/contacts"
)

// Project returns the instants at which a contact with the given cadence
// should be called within [rangeStart, rangeEnd]. lastStart is the start of
// the contact's most recent scheduled call; nil means no history, in which
// case the seed is rangeStart minus one cadence so the first projected
// instant lands exactly on rangeStart.
//
// The cadence is always the configured freqDays; it is never re-derived
// from historical spacing. freqDays <= 0 yields no instants.
func Project(freqDays int, lastStart *time.Time, rangeStart, rangeEnd time.Time) []time.Time {
	if freqDays <= 0 {
		return nil
	}

	var seed time.Time
	if lastStart != nil {
		seed = *lastStart
	} else {
		seed = rangeStart.AddDate(0, 0, -freqDays)
	}

	var instants []time.Time
	for next := seed.AddDate(0, 0, freqDays); !next.After(rangeEnd); next = next.AddDate(0, 0, freqDays) {
		instants = append(instants, next)
	}
	return instants
}

// CallResult reports one attempted call placement.
type CallResult struct {
	ContactID   string
	ContactName string
	Start       time.Time
	CallID      string
	Link        string
	Err         error
}

// Message renders the result as a human-readable status line.
func (r CallResult) Message() string {
	if r.Err != nil {
		return fmt.Sprintf("Failed to schedule call with %s: %v", r.displayName(), r.Err)
	}
	return fmt.Sprintf("Scheduled call with %s on %s at %s. Link: %s. Call id: %s",
		r.displayName(), r.Start.Format("2006-01-02"), r.Start.Format("15:04"), r.Link, r.CallID)
}

func (r CallResult) displayName() string {
	if r.ContactName == "" {
		return "Unknown"
	}
	return r.ContactName
}

// Scheduler turns projections into committed calendar events and call
// records. It holds no cursor state of its own; every run re-reads the call
// history, so contacts are projected independently of one another.
type Scheduler struct {
	repo   contacts.Repository
	events calendar.EventSource
	zone   *time.Location
}

// NewScheduler creates a call scheduler.
func NewScheduler(repo contacts.Repository, events calendar.EventSource, zone *time.Location) *Scheduler {
	return &Scheduler{repo: repo, events: events, zone: zone}
}

// ScheduleCall commits a calendar event for a call with the contact at the
// given start, and records the call.
func (s *Scheduler) ScheduleCall(ctx context.Context, contactID string, start time.Time, durationMinutes int, notes string) CallResult {
	result := CallResult{ContactID: contactID, Start: start}

	contact, err := s.repo.GetContact(ctx, contactID)
	if err != nil {
		result.Err = err
		return result
	}
	result.ContactName = contact.Name

	event, err := s.events.CreateEvent(ctx, calendar.Event{
		Summary:     "Call with " + contact.Name,
		Description: notes,
		Start:       start,
		End:         start.Add(time.Duration(durationMinutes) * time.Minute),
	})
	if err != nil {
		result.Err = fmt.Errorf("creating event: %w", err)
		return result
	}

	call := &contacts.Call{
		ContactID:       contactID,
		Start:           start,
		DurationMinutes: durationMinutes,
		EventID:         event.ID,
		Notes:           notes,
	}
	if err := s.repo.RecordCall(ctx, call); err != nil {
		result.Err = fmt.Errorf("recording call: %w", err)
		return result
	}

	result.CallID = call.ID
	result.Link = event.Link
	return result
}

// DeleteCall removes a recorded call and its calendar event. A missing
// remote event is tolerated; the record is removed regardless.
func (s *Scheduler) DeleteCall(ctx context.Context, callID string) error {
	call, err := s.repo.GetCall(ctx, callID)
	if err != nil {
		return err
	}
	if call.EventID != "" {
		if err := s.events.DeleteEvent(ctx, call.EventID); err != nil && !errors.Is(err, calendar.ErrEventNotFound) {
			return err
		}
	}
	return s.repo.DeleteCall(ctx, callID)
}

// Run projects and schedules calls for every contact with a cadence,
// between rangeStart and rangeEnd inclusive. Projected instants step in
// whole days from their seed, so first calls inherit rangeStart's clock.
// Contacts are processed strictly one after another, and each contact's
// history is re-read before projecting, so one contact's placements never
// leak into another's seed. One CallResult is returned per attempted call.
func (s *Scheduler) Run(ctx context.Context, rangeStart, rangeEnd time.Time, durationMinutes int, notes string) ([]CallResult, error) {
	all, err := s.repo.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	var results []CallResult
	for _, contact := range all {
		if !contact.HasCadence() {
			continue
		}

		history, err := s.repo.ListCallsForContact(ctx, contact.ID)
		if err != nil {
			// A contact whose history cannot be read is skipped for
			// this run rather than failing the whole batch.
			continue
		}
		var lastStart *time.Time
		if len(history) > 0 {
			start := history[0].Start.In(s.zone)
			lastStart = &start
		}

		for _, instant := range Project(contact.FrequencyDays, lastStart, rangeStart, rangeEnd) {
			results = append(results, s.ScheduleCall(ctx, contact.ID, instant, durationMinutes, notes))
		}
	}
	return results, nil
}
