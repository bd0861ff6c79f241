package slot

import (
	"testing"
	"time"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		t.Fatalf("bad clock %q: %v", clock, err)
	}
	return time.Date(2025, 3, 14, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{Start: at(t, start), End: at(t, end)}
}

func TestFind_GapsAroundBusyIntervals(t *testing.T) {
	busy := []Interval{iv(t, "09:00", "10:00"), iv(t, "12:00", "13:00")}

	got := Find(at(t, "09:00"), at(t, "17:00"), busy, 90*time.Minute)

	want := []Interval{iv(t, "10:00", "12:00"), iv(t, "13:00", "17:00")}
	if len(got) != len(want) {
		t.Fatalf("got %d slots, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Errorf("slot %d = %v..%v, want %v..%v",
				i, got[i].Start, got[i].End, want[i].Start, want[i].End)
		}
	}
}

func TestFind_EmptyBusyYieldsWholeWindow(t *testing.T) {
	got := Find(at(t, "09:00"), at(t, "17:00"), nil, 60*time.Minute)
	if len(got) != 1 {
		t.Fatalf("got %d slots, want 1", len(got))
	}
	if !got[0].Start.Equal(at(t, "09:00")) || !got[0].End.Equal(at(t, "17:00")) {
		t.Errorf("slot = %v..%v, want whole window", got[0].Start, got[0].End)
	}
}

func TestFind_RemainingGapTooShort(t *testing.T) {
	busy := []Interval{iv(t, "09:00", "10:00")}
	got := Find(at(t, "09:00"), at(t, "10:30"), busy, 60*time.Minute)
	if len(got) != 0 {
		t.Errorf("expected no slots, got %v", got)
	}
}

func TestFind_DurationLargerThanWindow(t *testing.T) {
	got := Find(at(t, "09:00"), at(t, "10:00"), nil, 2*time.Hour)
	if len(got) != 0 {
		t.Errorf("expected no slots, got %v", got)
	}
}

func TestFind_EmptyWindow(t *testing.T) {
	got := Find(at(t, "09:00"), at(t, "09:00"), nil, time.Minute)
	if len(got) != 0 {
		t.Errorf("expected no slots for empty window, got %v", got)
	}
}

func TestFind_ContainedIntervalDoesNotOpenGap(t *testing.T) {
	// The second interval lies entirely inside the first; the cursor must
	// not move backwards and fabricate a 10:00-10:30 gap.
	busy := []Interval{iv(t, "09:00", "11:00"), iv(t, "10:00", "10:30")}

	got := Find(at(t, "09:00"), at(t, "17:00"), busy, 30*time.Minute)

	if len(got) != 1 {
		t.Fatalf("got %d slots, want 1: %v", len(got), got)
	}
	if !got[0].Start.Equal(at(t, "11:00")) {
		t.Errorf("slot starts at %v, want 11:00", got[0].Start)
	}
}

func TestFind_BusyPastWindowEndClampsGap(t *testing.T) {
	// A busy interval starting after the window must not stretch the final
	// gap beyond windowEnd.
	busy := []Interval{iv(t, "18:00", "19:00")}

	got := Find(at(t, "09:00"), at(t, "17:00"), busy, time.Hour)

	if len(got) != 1 {
		t.Fatalf("got %d slots, want 1: %v", len(got), got)
	}
	if !got[0].Start.Equal(at(t, "09:00")) || !got[0].End.Equal(at(t, "17:00")) {
		t.Errorf("slot = %v..%v, want 09:00..17:00", got[0].Start, got[0].End)
	}
}

func TestFirst_BusyPastWindowEndClampsGap(t *testing.T) {
	busy := []Interval{iv(t, "18:00", "19:00")}

	first, ok := First(at(t, "09:00"), at(t, "17:00"), busy, time.Hour)

	if !ok {
		t.Fatal("First found nothing")
	}
	if !first.Start.Equal(at(t, "09:00")) || !first.End.Equal(at(t, "17:00")) {
		t.Errorf("First = %v..%v, want 09:00..17:00", first.Start, first.End)
	}
}

func TestFind_UnsortedBusyInput(t *testing.T) {
	busy := []Interval{iv(t, "12:00", "13:00"), iv(t, "09:00", "10:00")}

	got := Find(at(t, "09:00"), at(t, "17:00"), busy, 90*time.Minute)

	if len(got) != 2 {
		t.Fatalf("got %d slots, want 2: %v", len(got), got)
	}
	if !got[0].Start.Equal(at(t, "10:00")) {
		t.Errorf("first slot starts at %v, want 10:00", got[0].Start)
	}
	// The input slice must be left untouched.
	if !busy[0].Start.Equal(at(t, "12:00")) {
		t.Error("Find mutated its input")
	}
}

func TestFind_CoversWholeWindow(t *testing.T) {
	// Union of free slots and busy time, clipped to the window, must equal
	// the window when busy intervals do not overlap.
	windowStart, windowEnd := at(t, "08:00"), at(t, "18:00")
	busy := []Interval{iv(t, "09:00", "10:00"), iv(t, "12:30", "13:15"), iv(t, "16:00", "17:00")}

	free := Find(windowStart, windowEnd, busy, 0)

	var total time.Duration
	for _, f := range free {
		if f.Start.Before(windowStart) || f.End.After(windowEnd) {
			t.Errorf("slot %v..%v escapes window", f.Start, f.End)
		}
		for _, b := range busy {
			if f.Overlaps(b) {
				t.Errorf("slot %v..%v overlaps busy %v..%v", f.Start, f.End, b.Start, b.End)
			}
		}
		total += f.Duration()
	}
	for _, b := range busy {
		total += b.Duration()
	}
	if total != windowEnd.Sub(windowStart) {
		t.Errorf("accounted %v, want %v", total, windowEnd.Sub(windowStart))
	}
}

func TestFind_Idempotent(t *testing.T) {
	busy := []Interval{iv(t, "09:00", "10:00"), iv(t, "12:00", "13:00")}
	first := Find(at(t, "09:00"), at(t, "17:00"), busy, time.Hour)
	second := Find(at(t, "09:00"), at(t, "17:00"), busy, time.Hour)
	if len(first) != len(second) {
		t.Fatalf("runs disagree: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("slot %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestFirst_MatchesFindHead(t *testing.T) {
	busy := []Interval{iv(t, "09:00", "10:00"), iv(t, "12:00", "13:00")}

	all := Find(at(t, "09:00"), at(t, "17:00"), busy, 90*time.Minute)
	first, ok := First(at(t, "09:00"), at(t, "17:00"), busy, 90*time.Minute)

	if !ok {
		t.Fatal("First found nothing")
	}
	if first != all[0] {
		t.Errorf("First = %v, want %v", first, all[0])
	}
	if !first.Start.Equal(at(t, "10:00")) || !first.End.Equal(at(t, "12:00")) {
		t.Errorf("First = %v..%v, want 10:00..12:00", first.Start, first.End)
	}
}

func TestFirst_NoSlot(t *testing.T) {
	busy := []Interval{iv(t, "09:00", "10:00")}
	if _, ok := First(at(t, "09:00"), at(t, "10:30"), busy, 60*time.Minute); ok {
		t.Error("expected no slot")
	}
}

func TestFirst_EmptyWindow(t *testing.T) {
	if _, ok := First(at(t, "09:00"), at(t, "09:00"), nil, 0); ok {
		t.Error("expected no slot for empty window")
	}
}
