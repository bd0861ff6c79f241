package recurrence

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/anandpillai/mitra/internal/calendar"
	"github.com/anandpillai/mitra/internal/contacts"
)

// memRepo is an in-memory contacts.Repository for tests.
type memRepo struct {
	contactList []*contacts.Contact
	calls       []*contacts.Call
	nextID      int
}

func (m *memRepo) CreateContact(_ context.Context, c *contacts.Contact) error {
	m.nextID++
	c.ID = fmt.Sprintf("c-%d", m.nextID)
	m.contactList = append(m.contactList, c)
	return nil
}

func (m *memRepo) GetContact(_ context.Context, id string) (*contacts.Contact, error) {
	for _, c := range m.contactList {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", contacts.ErrContactNotFound, id)
}

func (m *memRepo) ListContacts(context.Context) ([]*contacts.Contact, error) {
	return slices.Clone(m.contactList), nil
}

func (m *memRepo) SearchContacts(_ context.Context, query string) ([]*contacts.Contact, error) {
	var out []*contacts.Contact
	for _, c := range m.contactList {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateContact(_ context.Context, c *contacts.Contact) error {
	for i, existing := range m.contactList {
		if existing.ID == c.ID {
			m.contactList[i] = c
			return nil
		}
	}
	return contacts.ErrContactNotFound
}

func (m *memRepo) DeleteContact(_ context.Context, id string) error {
	for i, c := range m.contactList {
		if c.ID == id {
			m.contactList = append(m.contactList[:i], m.contactList[i+1:]...)
			return nil
		}
	}
	return contacts.ErrContactNotFound
}

func (m *memRepo) RecordCall(_ context.Context, call *contacts.Call) error {
	m.nextID++
	call.ID = fmt.Sprintf("call-%d", m.nextID)
	m.calls = append(m.calls, call)
	return nil
}

func (m *memRepo) GetCall(_ context.Context, id string) (*contacts.Call, error) {
	for _, call := range m.calls {
		if call.ID == id {
			return call, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", contacts.ErrCallNotFound, id)
}

func (m *memRepo) ListCalls(context.Context) ([]*contacts.Call, error) {
	out := slices.Clone(m.calls)
	slices.SortFunc(out, func(a, b *contacts.Call) int { return a.Start.Compare(b.Start) })
	return out, nil
}

func (m *memRepo) ListCallsForContact(_ context.Context, contactID string) ([]*contacts.Call, error) {
	var out []*contacts.Call
	for _, call := range m.calls {
		if call.ContactID == contactID {
			out = append(out, call)
		}
	}
	slices.SortFunc(out, func(a, b *contacts.Call) int { return b.Start.Compare(a.Start) })
	return out, nil
}

func (m *memRepo) DeleteCall(_ context.Context, id string) error {
	for i, call := range m.calls {
		if call.ID == id {
			m.calls = append(m.calls[:i], m.calls[i+1:]...)
			return nil
		}
	}
	return contacts.ErrCallNotFound
}

func (m *memRepo) Close() error { return nil }

func day(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 18, 0, 0, 0, time.UTC)
}

func TestProject_NoHistory(t *testing.T) {
	// freq=7 over January seeds at 2023-12-25, so the first instant is
	// exactly the range start.
	got := Project(7, nil, day(2024, 1, 1), day(2024, 1, 31))

	want := []time.Time{
		day(2024, 1, 1), day(2024, 1, 8), day(2024, 1, 15), day(2024, 1, 22), day(2024, 1, 29),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d instants, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("instant %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProject_SeedsFromLastCall(t *testing.T) {
	last := day(2024, 1, 3)
	got := Project(7, &last, day(2024, 1, 1), day(2024, 1, 31))

	want := []time.Time{day(2024, 1, 10), day(2024, 1, 17), day(2024, 1, 24), day(2024, 1, 31)}
	if len(got) != len(want) {
		t.Fatalf("got %d instants, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("instant %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProject_RangeEndInclusive(t *testing.T) {
	got := Project(7, nil, day(2024, 1, 1), day(2024, 1, 1))
	if len(got) != 1 || !got[0].Equal(day(2024, 1, 1)) {
		t.Errorf("got %v, want exactly the range start", got)
	}
}

func TestProject_NonPositiveFrequency(t *testing.T) {
	for _, freq := range []int{0, -5} {
		if got := Project(freq, nil, day(2024, 1, 1), day(2024, 1, 31)); got != nil {
			t.Errorf("Project(freq=%d) = %v, want nil", freq, got)
		}
	}
}

func TestProject_HistoryBeyondRange(t *testing.T) {
	last := day(2024, 2, 1)
	if got := Project(7, &last, day(2024, 1, 1), day(2024, 1, 31)); got != nil {
		t.Errorf("got %v, want nil when last call is past the range", got)
	}
}

func newScheduler(t *testing.T) (*Scheduler, *memRepo, *calendar.Memory) {
	t.Helper()
	repo := &memRepo{}
	events := calendar.NewMemory()
	return NewScheduler(repo, events, time.UTC), repo, events
}

func addContact(t *testing.T, repo *memRepo, name string, freq int) *contacts.Contact {
	t.Helper()
	c, err := contacts.New(name, "", "", "", freq)
	if err != nil {
		t.Fatalf("contacts.New failed: %v", err)
	}
	if err := repo.CreateContact(context.Background(), c); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	return c
}

func TestScheduleCall(t *testing.T) {
	sched, repo, events := newScheduler(t)
	c := addContact(t, repo, "Asha Rao", 7)
	start := day(2024, 1, 5)

	res := sched.ScheduleCall(context.Background(), c.ID, start, 30, "catch up")

	if res.Err != nil {
		t.Fatalf("ScheduleCall failed: %v", res.Err)
	}
	if res.CallID == "" || res.Link == "" {
		t.Errorf("result missing references: %+v", res)
	}

	listed, err := events.ListEvents(context.Background(), start.Add(-time.Hour), start.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].Summary != "Call with Asha Rao" {
		t.Errorf("events = %+v", listed)
	}
	if !listed[0].End.Equal(start.Add(30 * time.Minute)) {
		t.Errorf("event end = %v, want start+30m", listed[0].End)
	}
	if len(repo.calls) != 1 || repo.calls[0].EventID != listed[0].ID {
		t.Errorf("call record = %+v", repo.calls)
	}
}

func TestScheduleCall_ContactNotFound(t *testing.T) {
	sched, _, events := newScheduler(t)

	res := sched.ScheduleCall(context.Background(), "missing", day(2024, 1, 5), 30, "")

	if !errors.Is(res.Err, contacts.ErrContactNotFound) {
		t.Errorf("error = %v, want ErrContactNotFound", res.Err)
	}
	if events.Len() != 0 {
		t.Error("no event should be committed for an unknown contact")
	}
	if !strings.Contains(res.Message(), "Unknown") {
		t.Errorf("message should display Unknown: %q", res.Message())
	}
}

func TestRun_ProjectsEachContactIndependently(t *testing.T) {
	sched, repo, events := newScheduler(t)
	weekly := addContact(t, repo, "Asha Rao", 7)
	addContact(t, repo, "No Cadence", 0)
	biweekly := addContact(t, repo, "Vikram Shah", 14)

	results, err := sched.Run(context.Background(), day(2024, 1, 1), day(2024, 1, 31), 30, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Weekly: Jan 1,8,15,22,29. Biweekly: Jan 1,15,29.
	if len(results) != 8 {
		t.Fatalf("got %d results, want 8", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("result for %s failed: %v", res.ContactName, res.Err)
		}
	}
	if events.Len() != 8 {
		t.Errorf("committed %d events, want 8", events.Len())
	}

	var weeklyCount, biweeklyCount int
	for _, call := range repo.calls {
		switch call.ContactID {
		case weekly.ID:
			weeklyCount++
		case biweekly.ID:
			biweeklyCount++
		}
	}
	if weeklyCount != 5 || biweeklyCount != 3 {
		t.Errorf("call counts = %d weekly, %d biweekly; want 5 and 3", weeklyCount, biweeklyCount)
	}
}

func TestRun_SeedsFromHistory(t *testing.T) {
	sched, repo, _ := newScheduler(t)
	c := addContact(t, repo, "Asha Rao", 7)

	// A call already on Jan 10 pushes the first projection to Jan 17.
	if err := repo.RecordCall(context.Background(), &contacts.Call{
		ContactID: c.ID, Start: day(2024, 1, 10), DurationMinutes: 30,
	}); err != nil {
		t.Fatal(err)
	}

	results, err := sched.Run(context.Background(), day(2024, 1, 1), day(2024, 1, 31), 30, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (Jan 17, 24, 31)", len(results))
	}
	if !results[0].Start.Equal(day(2024, 1, 17)) {
		t.Errorf("first projected call = %v, want Jan 17", results[0].Start)
	}
}

func TestDeleteCall(t *testing.T) {
	sched, repo, events := newScheduler(t)
	c := addContact(t, repo, "Asha Rao", 7)

	res := sched.ScheduleCall(context.Background(), c.ID, day(2024, 1, 5), 30, "")
	if res.Err != nil {
		t.Fatalf("ScheduleCall failed: %v", res.Err)
	}

	if err := sched.DeleteCall(context.Background(), res.CallID); err != nil {
		t.Fatalf("DeleteCall failed: %v", err)
	}
	if events.Len() != 0 {
		t.Error("calendar event should be removed")
	}
	if len(repo.calls) != 0 {
		t.Error("call record should be removed")
	}
}

func TestDeleteCall_ToleratesMissingEvent(t *testing.T) {
	sched, repo, events := newScheduler(t)
	c := addContact(t, repo, "Asha Rao", 7)

	res := sched.ScheduleCall(context.Background(), c.ID, day(2024, 1, 5), 30, "")
	if res.Err != nil {
		t.Fatalf("ScheduleCall failed: %v", res.Err)
	}
	// Remote event already gone.
	call, err := repo.GetCall(context.Background(), res.CallID)
	if err != nil {
		t.Fatal(err)
	}
	if err := events.DeleteEvent(context.Background(), call.EventID); err != nil {
		t.Fatal(err)
	}

	if err := sched.DeleteCall(context.Background(), res.CallID); err != nil {
		t.Fatalf("DeleteCall should tolerate a missing event: %v", err)
	}
	if len(repo.calls) != 0 {
		t.Error("call record should be removed")
	}
}
