package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-14", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}
}

func TestParseDate_Empty(t *testing.T) {
	got, err := ParseDate("", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("expected midnight, got %v", got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	invalid := []string{"14-03-2025", "2025/03/14", "march 14", "2025-13-01"}
	for _, s := range invalid {
		if _, err := ParseDate(s, time.UTC); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDateFormat", s, err)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{"09:30", 9, 30, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"9:30", 0, 0, true},
		{"25:00", 0, 0, true},
		{"09.30", 0, 0, true},
	}

	for _, tc := range tests {
		h, m, err := ParseClock(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidClockFormat) {
				t.Errorf("ParseClock(%q) error = %v, want ErrInvalidClockFormat", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) failed: %v", tc.in, err)
			continue
		}
		if h != tc.h || m != tc.m {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tc.in, h, m, tc.h, tc.m)
		}
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	got, err := At(date, "14:45")
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	want := time.Date(2025, 3, 14, 14, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("At = %v, want %v", got, want)
	}
}

func TestDayWindow(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}
	date := time.Date(2025, 3, 14, 11, 22, 33, 0, loc)

	start, end := DayWindow(date)

	if start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("window start = %v, want midnight", start)
	}
	if end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("window end = %v, want 23:59", end)
	}
	if start.Location() != loc || end.Location() != loc {
		t.Error("window must stay in the date's location")
	}
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange("2025-01-01", "2025-01-31", time.UTC)
	if err != nil {
		t.Fatalf("NewDateRange failed: %v", err)
	}
	if !r.End.After(r.Start) {
		t.Errorf("expected end after start, got %v..%v", r.Start, r.End)
	}
}

func TestNewDateRange_EndBeforeStart(t *testing.T) {
	if _, err := NewDateRange("2025-01-31", "2025-01-01", time.UTC); !errors.Is(err, ErrEndDateBeforeStart) {
		t.Errorf("error = %v, want ErrEndDateBeforeStart", err)
	}
}

func TestNewDateRange_EmptyEndDefaultsToStart(t *testing.T) {
	r, err := NewDateRange("2025-01-15", "", time.UTC)
	if err != nil {
		t.Fatalf("NewDateRange failed: %v", err)
	}
	if !r.Start.Equal(r.End) {
		t.Errorf("expected end == start, got %v..%v", r.Start, r.End)
	}
}
