package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anandpillai/mitra/internal/calendar"
	"github.com/anandpillai/mitra/internal/contacts"
	"github.com/anandpillai/mitra/internal/dateutil"
	"github.com/anandpillai/mitra/internal/integrations"
	"github.com/anandpillai/mitra/internal/placement"
	"github.com/anandpillai/mitra/internal/recurrence"
	"github.com/anandpillai/mitra/internal/schedule"
	"github.com/anandpillai/mitra/internal/slot"
	"github.com/anandpillai/mitra/internal/todo"
)

// Deps bundles the collaborators the tool set operates on.
type Deps struct {
	Schedule        *schedule.Store
	Todos           *todo.List
	Events          calendar.EventSource
	Engine          *placement.Engine
	Contacts        contacts.Repository
	Calls           *recurrence.Scheduler
	Integrations    *integrations.Service
	Zone            *time.Location
	DefaultDuration time.Duration
}

func (d Deps) parseDate(s string) (time.Time, error) {
	if s == "" {
		return dateutil.TruncateToDay(time.Now().In(d.Zone)), nil
	}
	return dateutil.ParseDate(s, d.Zone)
}

func (d Deps) defaultMinutes(minutes int) time.Duration {
	if minutes <= 0 {
		return d.DefaultDuration
	}
	return time.Duration(minutes) * time.Minute
}

// NewRegistry builds the full tool set over the given collaborators.
func NewRegistry(d Deps) *Registry {
	r := NewEmptyRegistry()
	registerScheduleTools(r, d)
	registerCalendarTools(r, d)
	registerTodoTools(r, d)
	registerContactTools(r, d)
	registerIntegrationTools(r, d)
	return r
}

func registerScheduleTools(r *Registry, d Deps) {
	dateProp := prop("string", "Date in YYYY-MM-DD format. Defaults to today.")

	r.Register(Tool{
		Name:        "read_schedule",
		Description: "Read the day's schedule file, creating the default template if it does not exist.",
		Parameters:  objectSchema(map[string]any{"date": dateProp}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date string `json:"date"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			return d.Schedule.ReadFile(date)
		},
	})

	r.Register(Tool{
		Name:        "append_task",
		Description: "Append a task block to the day's schedule. Rejects blocks overlapping an existing one.",
		Parameters: objectSchema(map[string]any{
			"date":        dateProp,
			"start_time":  prop("string", "Start time, HH:MM."),
			"end_time":    prop("string", "End time, HH:MM."),
			"description": prop("string", "Task description."),
		}, "start_time", "end_time", "description"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date        string `json:"date"`
				StartTime   string `json:"start_time"`
				EndTime     string `json:"end_time"`
				Description string `json:"description"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			block := schedule.TimeBlock{Start: in.StartTime, End: in.EndTime, Description: in.Description}
			if err := d.Schedule.Append(date, block); err != nil {
				return "", err
			}
			return fmt.Sprintf("Added %q from %s to %s on %s.",
				in.Description, in.StartTime, in.EndTime, date.Format("2006-01-02")), nil
		},
	})

	r.Register(Tool{
		Name:        "mark_task_done",
		Description: "Mark the first pending schedule task containing the given text as done.",
		Parameters: objectSchema(map[string]any{
			"date": dateProp,
			"task": prop("string", "Text identifying the task."),
		}, "task"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date string `json:"date"`
				Task string `json:"task"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			found, err := d.Schedule.MarkDone(date, in.Task)
			if err != nil {
				return "", err
			}
			if !found {
				return fmt.Sprintf("No pending task matching %q on %s.", in.Task, date.Format("2006-01-02")), nil
			}
			return "Marked task as done.", nil
		},
	})

	r.Register(Tool{
		Name:        "update_schedule",
		Description: "Replace the day's schedule file with new content.",
		Parameters: objectSchema(map[string]any{
			"date":    dateProp,
			"content": prop("string", "Full replacement content for the schedule file."),
		}, "content"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date    string `json:"date"`
				Content string `json:"content"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			if err := d.Schedule.Update(date, in.Content); err != nil {
				return "", err
			}
			return fmt.Sprintf("Schedule for %s updated.", date.Format("2006-01-02")), nil
		},
	})

	r.Register(Tool{
		Name:        "delete_schedule",
		Description: "Delete the day's schedule file.",
		Parameters:  objectSchema(map[string]any{"date": dateProp}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date string `json:"date"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			removed, err := d.Schedule.Delete(date)
			if err != nil {
				return "", err
			}
			if !removed {
				return fmt.Sprintf("No schedule found for %s.", date.Format("2006-01-02")), nil
			}
			return fmt.Sprintf("Schedule for %s deleted.", date.Format("2006-01-02")), nil
		},
	})

	r.Register(Tool{
		Name:        "summarize_schedule",
		Description: "Summarize how many of the day's tasks are done.",
		Parameters:  objectSchema(map[string]any{"date": dateProp}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date string `json:"date"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			done, total, err := d.Schedule.Summary(date)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d of %d tasks done on %s.", done, total, date.Format("2006-01-02")), nil
		},
	})

	r.Register(Tool{
		Name:        "suggest_next_task",
		Description: "Suggest the next pending task on the day's schedule.",
		Parameters:  objectSchema(map[string]any{"date": dateProp}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date string `json:"date"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			block, ok, err := d.Schedule.NextPending(date)
			if err != nil {
				return "", err
			}
			if !ok {
				return "All tasks are done. Nothing pending.", nil
			}
			return fmt.Sprintf("Next up: %s (%s - %s).", block.Description, block.Start, block.End), nil
		},
	})
}

func registerCalendarTools(r *Registry, d Deps) {
	dateProp := prop("string", "Date in YYYY-MM-DD format. Defaults to today.")

	r.Register(Tool{
		Name:        "list_events",
		Description: "List calendar events on a date.",
		Parameters:  objectSchema(map[string]any{"date": dateProp}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date string `json:"date"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			start, end := dateutil.DayWindow(date)
			events, err := d.Events.ListEvents(ctx, start, end)
			if err != nil {
				return "", err
			}
			if len(events) == 0 {
				return fmt.Sprintf("No events on %s.", date.Format("2006-01-02")), nil
			}
			var b strings.Builder
			fmt.Fprintf(&b, "Events on %s:", date.Format("2006-01-02"))
			for _, ev := range events {
				fmt.Fprintf(&b, "\n- %s from %s to %s (ID: %s)",
					ev.Summary, ev.Start.In(d.Zone).Format("15:04"), ev.End.In(d.Zone).Format("15:04"), ev.ID)
			}
			return b.String(), nil
		},
	})

	r.Register(Tool{
		Name:        "create_event",
		Description: "Create a calendar event at an explicit time.",
		Parameters: objectSchema(map[string]any{
			"summary":     prop("string", "Event title."),
			"date":        dateProp,
			"start_time":  prop("string", "Start time, HH:MM."),
			"end_time":    prop("string", "End time, HH:MM."),
			"description": prop("string", "Optional event description."),
		}, "summary", "start_time", "end_time"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Summary     string `json:"summary"`
				Date        string `json:"date"`
				StartTime   string `json:"start_time"`
				EndTime     string `json:"end_time"`
				Description string `json:"description"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			start, err := dateutil.At(date, in.StartTime)
			if err != nil {
				return "", err
			}
			end, err := dateutil.At(date, in.EndTime)
			if err != nil {
				return "", err
			}
			created, err := d.Events.CreateEvent(ctx, calendar.Event{
				Summary:     in.Summary,
				Description: in.Description,
				Start:       start,
				End:         end,
			})
			if err != nil {
				return "", err
			}
			msg := fmt.Sprintf("Created %q on %s at %s (ID: %s).",
				created.Summary, date.Format("2006-01-02"), in.StartTime, created.ID)
			if created.Link != "" {
				msg += " Link: " + created.Link
			}
			return msg, nil
		},
	})

	r.Register(Tool{
		Name:        "update_event",
		Description: "Replace the title, time and description of an existing calendar event.",
		Parameters: objectSchema(map[string]any{
			"event_id":    prop("string", "Calendar event ID."),
			"summary":     prop("string", "New event title."),
			"date":        dateProp,
			"start_time":  prop("string", "New start time, HH:MM."),
			"end_time":    prop("string", "New end time, HH:MM."),
			"description": prop("string", "New event description."),
		}, "event_id", "summary", "start_time", "end_time"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				EventID     string `json:"event_id"`
				Summary     string `json:"summary"`
				Date        string `json:"date"`
				StartTime   string `json:"start_time"`
				EndTime     string `json:"end_time"`
				Description string `json:"description"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			start, err := dateutil.At(date, in.StartTime)
			if err != nil {
				return "", err
			}
			end, err := dateutil.At(date, in.EndTime)
			if err != nil {
				return "", err
			}
			updated, err := d.Events.UpdateEvent(ctx, in.EventID, calendar.Event{
				Summary:     in.Summary,
				Description: in.Description,
				Start:       start,
				End:         end,
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Updated %q on %s, now %s to %s.",
				updated.Summary, date.Format("2006-01-02"), in.StartTime, in.EndTime), nil
		},
	})

	r.Register(Tool{
		Name:        "delete_event",
		Description: "Delete a calendar event by its ID.",
		Parameters: objectSchema(map[string]any{
			"event_id": prop("string", "Calendar event ID."),
		}, "event_id"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				EventID string `json:"event_id"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			if err := d.Events.DeleteEvent(ctx, in.EventID); err != nil {
				return "", err
			}
			return "Event deleted.", nil
		},
	})

	r.Register(Tool{
		Name:        "find_free_slots",
		Description: "List the free gaps on a date that can hold at least the given number of minutes.",
		Parameters: objectSchema(map[string]any{
			"date":     dateProp,
			"duration": prop("integer", "Minimum slot length in minutes."),
		}, "duration"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date     string `json:"date"`
				Duration int    `json:"duration"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			start, end := dateutil.DayWindow(date)
			events, err := d.Events.ListEvents(ctx, start, end)
			if err != nil {
				return "", err
			}
			busy := make([]slot.Interval, 0, len(events))
			for _, ev := range events {
				busy = append(busy, slot.Interval{Start: ev.Start, End: ev.End})
			}
			minDur := d.defaultMinutes(in.Duration)
			free := slot.Find(start, end, busy, minDur)
			if len(free) == 0 {
				return fmt.Sprintf("No free slots of at least %d minutes on %s.",
					int(minDur.Minutes()), date.Format("2006-01-02")), nil
			}
			var b strings.Builder
			fmt.Fprintf(&b, "Free slots on %s for %d minutes:", date.Format("2006-01-02"), int(minDur.Minutes()))
			for _, iv := range free {
				fmt.Fprintf(&b, "\n- %s to %s", iv.Start.In(d.Zone).Format("15:04"), iv.End.In(d.Zone).Format("15:04"))
			}
			return b.String(), nil
		},
	})

	r.Register(Tool{
		Name:        "schedule_task",
		Description: "Place a task into the earliest free calendar slot on a date.",
		Parameters: objectSchema(map[string]any{
			"description":   prop("string", "Task description, used as the event title."),
			"duration":      prop("integer", "Minutes needed."),
			"date":          dateProp,
			"earliest_time": prop("string", "Optional earliest start, HH:MM."),
			"latest_time":   prop("string", "Optional latest end, HH:MM."),
		}, "description", "duration"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Description  string `json:"description"`
				Duration     int    `json:"duration"`
				Date         string `json:"date"`
				EarliestTime string `json:"earliest_time"`
				LatestTime   string `json:"latest_time"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			result := d.Engine.PlaceTask(ctx, in.Description, d.defaultMinutes(in.Duration), date,
				in.EarliestTime, in.LatestTime)
			return result.Message(), nil
		},
	})

	r.Register(Tool{
		Name:        "schedule_todo_tasks",
		Description: "Place every pending to-do item into free calendar slots on a date, one status line per item.",
		Parameters: objectSchema(map[string]any{
			"date":             dateProp,
			"default_duration": prop("integer", "Minutes per task. Defaults to the configured duration."),
		}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Date            string `json:"date"`
				DefaultDuration int    `json:"default_duration"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			results, err := d.Engine.PlacePendingTasks(ctx, d.Todos, date, d.defaultMinutes(in.DefaultDuration))
			if err != nil {
				return "", err
			}
			if len(results) == 0 {
				return "No pending tasks to schedule.", nil
			}
			lines := make([]string, len(results))
			for i, res := range results {
				lines[i] = res.Message()
			}
			return strings.Join(lines, "\n"), nil
		},
	})
}

func registerTodoTools(r *Registry, d Deps) {
	r.Register(Tool{
		Name:        "read_todo_list",
		Description: "List all to-do items.",
		Parameters:  objectSchema(map[string]any{}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			items, err := d.Todos.Items()
			if err != nil {
				return "", err
			}
			if len(items) == 0 {
				return "No tasks in to-do list.", nil
			}
			var b strings.Builder
			b.WriteString("To-do list:")
			for i, item := range items {
				fmt.Fprintf(&b, "\n%d. %s", i+1, todo.FormatItem(item))
			}
			return b.String(), nil
		},
	})

	r.Register(Tool{
		Name:        "add_todo",
		Description: "Add a pending item to the to-do list.",
		Parameters: objectSchema(map[string]any{
			"task": prop("string", "Task text."),
		}, "task"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Task string `json:"task"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			if err := d.Todos.Add(in.Task); err != nil {
				return "", err
			}
			return fmt.Sprintf("Added to to-do list: %s", in.Task), nil
		},
	})

	r.Register(Tool{
		Name:        "mark_todo_done",
		Description: "Mark pending to-do items containing the given text as done.",
		Parameters: objectSchema(map[string]any{
			"task": prop("string", "Text identifying the item."),
		}, "task"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Task string `json:"task"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			found, err := d.Todos.MarkDone(in.Task)
			if err != nil {
				return "", err
			}
			if !found {
				return "Task not found.", nil
			}
			return "Marked task as done.", nil
		},
	})

	r.Register(Tool{
		Name:        "delete_todo",
		Description: "Delete to-do items containing the given text.",
		Parameters: objectSchema(map[string]any{
			"task": prop("string", "Text identifying the item."),
		}, "task"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Task string `json:"task"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			deleted, err := d.Todos.Delete(in.Task)
			if err != nil {
				return "", err
			}
			if deleted == 0 {
				return "Task not found.", nil
			}
			return fmt.Sprintf("Deleted %d matching task(s).", deleted), nil
		},
	})
}

func registerContactTools(r *Registry, d Deps) {
	r.Register(Tool{
		Name:        "add_contact",
		Description: "Add a contact. A positive frequency_days sets a call cadence for auto-scheduling.",
		Parameters: objectSchema(map[string]any{
			"name":           prop("string", "Contact name."),
			"email":          prop("string", "Optional email address."),
			"phone":          prop("string", "Optional phone number."),
			"notes":          prop("string", "Optional free-form notes."),
			"frequency_days": prop("integer", "Days between calls; 0 disables the cadence."),
		}, "name"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Name          string `json:"name"`
				Email         string `json:"email"`
				Phone         string `json:"phone"`
				Notes         string `json:"notes"`
				FrequencyDays int    `json:"frequency_days"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			contact, err := contacts.New(in.Name, in.Email, in.Phone, in.Notes, in.FrequencyDays)
			if err != nil {
				return "", err
			}
			if err := d.Contacts.CreateContact(ctx, contact); err != nil {
				return "", err
			}
			return fmt.Sprintf("Added contact %s (ID: %s).", contact.Name, contact.ID), nil
		},
	})

	r.Register(Tool{
		Name:        "list_contacts",
		Description: "List all contacts.",
		Parameters:  objectSchema(map[string]any{}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			all, err := d.Contacts.ListContacts(ctx)
			if err != nil {
				return "", err
			}
			return formatContacts(all, "No contacts found."), nil
		},
	})

	r.Register(Tool{
		Name:        "find_contact",
		Description: "Find contacts whose name, email or phone contains the query.",
		Parameters: objectSchema(map[string]any{
			"query": prop("string", "Search text."),
		}, "query"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Query string `json:"query"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			matches, err := d.Contacts.SearchContacts(ctx, in.Query)
			if err != nil {
				return "", err
			}
			return formatContacts(matches, fmt.Sprintf("No contacts matching %q.", in.Query)), nil
		},
	})

	r.Register(Tool{
		Name:        "delete_contact",
		Description: "Delete a contact by ID. Recorded calls are kept.",
		Parameters: objectSchema(map[string]any{
			"contact_id": prop("string", "Contact ID."),
		}, "contact_id"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				ContactID string `json:"contact_id"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			if err := d.Contacts.DeleteContact(ctx, in.ContactID); err != nil {
				return "", err
			}
			return "Contact deleted.", nil
		},
	})

	r.Register(Tool{
		Name:        "schedule_call",
		Description: "Schedule a call with a contact at an explicit date and time, committing a calendar event.",
		Parameters: objectSchema(map[string]any{
			"contact_id": prop("string", "Contact ID."),
			"date":       prop("string", "Date in YYYY-MM-DD format."),
			"time":       prop("string", "Start time, HH:MM."),
			"duration":   prop("integer", "Minutes. Defaults to 30."),
			"notes":      prop("string", "Optional notes."),
		}, "contact_id", "date", "time"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				ContactID string `json:"contact_id"`
				Date      string `json:"date"`
				Time      string `json:"time"`
				Duration  int    `json:"duration"`
				Notes     string `json:"notes"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			start, err := dateutil.At(date, in.Time)
			if err != nil {
				return "", err
			}
			duration := in.Duration
			if duration <= 0 {
				duration = 30
			}
			result := d.Calls.ScheduleCall(ctx, in.ContactID, start, duration, in.Notes)
			return result.Message(), nil
		},
	})

	r.Register(Tool{
		Name:        "list_calls",
		Description: "List scheduled calls, optionally for a single contact.",
		Parameters: objectSchema(map[string]any{
			"contact_id": prop("string", "Optional contact ID to filter by."),
		}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				ContactID string `json:"contact_id"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			var calls []*contacts.Call
			var err error
			if in.ContactID != "" {
				calls, err = d.Contacts.ListCallsForContact(ctx, in.ContactID)
			} else {
				calls, err = d.Contacts.ListCalls(ctx)
			}
			if err != nil {
				return "", err
			}
			if len(calls) == 0 {
				return "No calls recorded.", nil
			}
			var b strings.Builder
			b.WriteString("Calls:")
			for _, call := range calls {
				fmt.Fprintf(&b, "\n- %s for %d minutes, contact %s (ID: %s)",
					call.Start.In(d.Zone).Format("2006-01-02 15:04"), call.DurationMinutes, call.ContactID, call.ID)
			}
			return b.String(), nil
		},
	})

	r.Register(Tool{
		Name:        "auto_schedule_calls",
		Description: "Project call cadences for every contact over a date range and commit the resulting calls.",
		Parameters: objectSchema(map[string]any{
			"start_date": prop("string", "Range start, YYYY-MM-DD."),
			"end_date":   prop("string", "Range end, YYYY-MM-DD (inclusive)."),
			"time":       prop("string", "Call time, HH:MM. Defaults to 18:00."),
			"duration":   prop("integer", "Minutes per call. Defaults to 30."),
			"notes":      prop("string", "Optional notes applied to every call."),
		}, "start_date", "end_date"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				StartDate string `json:"start_date"`
				EndDate   string `json:"end_date"`
				Time      string `json:"time"`
				Duration  int    `json:"duration"`
				Notes     string `json:"notes"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			dr, err := dateutil.NewDateRange(in.StartDate, in.EndDate, d.Zone)
			if err != nil {
				return "", err
			}
			clock := in.Time
			if clock == "" {
				clock = "18:00"
			}
			rangeStart, err := dateutil.At(dr.Start, clock)
			if err != nil {
				return "", err
			}
			rangeEnd, err := dateutil.At(dr.End, clock)
			if err != nil {
				return "", err
			}
			duration := in.Duration
			if duration <= 0 {
				duration = 30
			}
			results, err := d.Calls.Run(ctx, rangeStart, rangeEnd, duration, in.Notes)
			if err != nil {
				return "", err
			}
			if len(results) == 0 {
				return "No calls to schedule in that range.", nil
			}
			lines := make([]string, len(results))
			for i, res := range results {
				lines[i] = res.Message()
			}
			return strings.Join(lines, "\n"), nil
		},
	})
}

func registerIntegrationTools(r *Registry, d Deps) {
	r.Register(Tool{
		Name:        "get_weather",
		Description: "Get the current weather for a location.",
		Parameters: objectSchema(map[string]any{
			"location": prop("string", "City name, e.g. Mumbai."),
		}, "location"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Location string `json:"location"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			return d.Integrations.Weather.Current(ctx, in.Location), nil
		},
	})

	r.Register(Tool{
		Name:        "get_weather_forecast",
		Description: "Get the weather forecast for a location on a date.",
		Parameters: objectSchema(map[string]any{
			"location": prop("string", "City name."),
			"date":     prop("string", "Date in YYYY-MM-DD format."),
		}, "location", "date"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Location string `json:"location"`
				Date     string `json:"date"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			date, err := d.parseDate(in.Date)
			if err != nil {
				return "", err
			}
			return d.Integrations.Weather.Forecast(ctx, in.Location, date), nil
		},
	})

	r.Register(Tool{
		Name:        "get_travel_time",
		Description: "Estimate travel time between two places.",
		Parameters: objectSchema(map[string]any{
			"origin":      prop("string", "Starting point."),
			"destination": prop("string", "Destination."),
			"mode":        prop("string", "driving, walking, bicycling or transit. Defaults to driving."),
		}, "origin", "destination"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Origin      string `json:"origin"`
				Destination string `json:"destination"`
				Mode        string `json:"mode"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			return d.Integrations.Maps.TravelTime(ctx, in.Origin, in.Destination, in.Mode), nil
		},
	})

	r.Register(Tool{
		Name:        "convert_timezone",
		Description: "Convert a timestamp between IANA timezones.",
		Parameters: objectSchema(map[string]any{
			"time":    prop("string", "Timestamp, e.g. 2026-03-10T15:30."),
			"from_tz": prop("string", "Source zone, e.g. Asia/Kolkata."),
			"to_tz":   prop("string", "Target zone, e.g. Europe/London."),
		}, "time", "from_tz", "to_tz"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Time   string `json:"time"`
				FromTZ string `json:"from_tz"`
				ToTZ   string `json:"to_tz"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			return integrations.ConvertTimezone(in.Time, in.FromTZ, in.ToTZ), nil
		},
	})

	r.Register(Tool{
		Name:        "send_email",
		Description: "Send a plain-text email.",
		Parameters: objectSchema(map[string]any{
			"to":      prop("string", "Recipient address."),
			"subject": prop("string", "Subject line."),
			"body":    prop("string", "Message body."),
		}, "to", "subject", "body"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				To      string `json:"to"`
				Subject string `json:"subject"`
				Body    string `json:"body"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			return d.Integrations.Mailer.Send(in.To, in.Subject, in.Body), nil
		},
	})
}

func formatContacts(list []*contacts.Contact, empty string) string {
	if len(list) == 0 {
		return empty
	}
	var b strings.Builder
	b.WriteString("Contacts:")
	for _, c := range list {
		fmt.Fprintf(&b, "\n- %s (ID: %s)", c.Name, c.ID)
		if c.Email != "" {
			fmt.Fprintf(&b, ", email %s", c.Email)
		}
		if c.Phone != "" {
			fmt.Fprintf(&b, ", phone %s", c.Phone)
		}
		if c.HasCadence() {
			fmt.Fprintf(&b, ", call every %d days", c.FrequencyDays)
		}
	}
	return b.String()
}
