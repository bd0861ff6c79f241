package schedule

import (
	"errors"
	"testing"
)

func TestParseBlock(t *testing.T) {
	tests := []struct {
		name string
		line string
		want TimeBlock
	}{
		{
			name: "pending",
			line: "09:00 - 10:00 | [ ] Morning routine",
			want: TimeBlock{Start: "09:00", End: "10:00", Description: "Morning routine"},
		},
		{
			name: "done",
			line: "10:00 - 12:00 | [x] Deep work session",
			want: TimeBlock{Start: "10:00", End: "12:00", Description: "Deep work session", Done: true},
		},
		{
			name: "description with pipes",
			line: "14:00 - 15:00 | [ ] Review PR | follow up",
			want: TimeBlock{Start: "14:00", End: "15:00", Description: "Review PR | follow up"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBlock(tc.line)
			if err != nil {
				t.Fatalf("ParseBlock(%q) failed: %v", tc.line, err)
			}
			if got != tc.want {
				t.Errorf("ParseBlock(%q) = %+v, want %+v", tc.line, got, tc.want)
			}
		})
	}
}

func TestParseBlock_NotABlock(t *testing.T) {
	lines := []string{
		"",
		"# Schedule for 2025-03-14",
		"random text",
		"09:00 - 10:00 Morning routine",
		"09:00 | [ ] no range",
		"09:00 - 10:00 | [?] odd marker",
	}
	for _, line := range lines {
		if _, err := ParseBlock(line); !errors.Is(err, ErrNotABlockLine) {
			t.Errorf("ParseBlock(%q) error = %v, want ErrNotABlockLine", line, err)
		}
	}
}

func TestParseBlock_InvalidTimes(t *testing.T) {
	if _, err := ParseBlock("9:00 - 10:00 | [ ] bad start"); err == nil {
		t.Error("expected error for malformed start time")
	}
	if _, err := ParseBlock("10:00 - 09:00 | [ ] backwards"); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("error = %v, want ErrEndBeforeStart", err)
	}
	if _, err := ParseBlock("10:00 - 10:00 | [ ] empty"); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("error = %v, want ErrEndBeforeStart", err)
	}
}

func TestBlockRoundTrip(t *testing.T) {
	blocks := []TimeBlock{
		{Start: "09:00", End: "10:30", Description: "Morning routine"},
		{Start: "10:30", End: "12:00", Description: "Deep work", Done: true},
		{Start: "23:00", End: "23:59", Description: "Wind down"},
	}
	for _, b := range blocks {
		got, err := ParseBlock(FormatBlock(b))
		if err != nil {
			t.Fatalf("round trip of %+v failed: %v", b, err)
		}
		if got != b {
			t.Errorf("round trip = %+v, want %+v", got, b)
		}
	}
}

func TestParseDay_SkipsNonBlockLines(t *testing.T) {
	content := "# Schedule for 2025-03-14\n\n" +
		"09:00 - 10:00 | [ ] Morning routine\n" +
		"garbage line\n" +
		"10:00 - 12:00 | [x] Deep work session\n"

	blocks := parseDay(content)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if !blocks[1].Done {
		t.Error("second block should be done")
	}
}
