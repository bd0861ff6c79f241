package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anandpillai/mitra/internal/dateutil"
)

// Line markers for the plain-text schedule format:
//
//	09:00 - 10:00 | [ ] Morning routine
//	10:00 - 12:00 | [x] Deep work session
const (
	markerPending = "[ ]"
	markerDone    = "[x]"
)

// Codec errors.
var (
	ErrNotABlockLine  = errors.New("line is not a time block")
	ErrEndBeforeStart = errors.New("block end must be after block start")
)

// ParseBlock parses a single schedule line into a TimeBlock.
// Returns ErrNotABlockLine for comments, blank lines, and anything else
// that does not carry a time range and a checkbox marker.
func ParseBlock(line string) (TimeBlock, error) {
	timePart, rest, found := strings.Cut(line, " | ")
	if !found {
		return TimeBlock{}, ErrNotABlockLine
	}

	start, end, found := strings.Cut(timePart, " - ")
	if !found {
		return TimeBlock{}, ErrNotABlockLine
	}
	if _, _, err := dateutil.ParseClock(start); err != nil {
		return TimeBlock{}, fmt.Errorf("block start: %w", err)
	}
	if _, _, err := dateutil.ParseClock(end); err != nil {
		return TimeBlock{}, fmt.Errorf("block end: %w", err)
	}
	if end <= start {
		return TimeBlock{}, ErrEndBeforeStart
	}

	var done bool
	switch {
	case strings.HasPrefix(rest, markerDone+" "):
		done = true
	case strings.HasPrefix(rest, markerPending+" "):
		done = false
	default:
		return TimeBlock{}, ErrNotABlockLine
	}

	return TimeBlock{
		Start:       start,
		End:         end,
		Description: strings.TrimSpace(rest[len(markerPending)+1:]),
		Done:        done,
	}, nil
}

// FormatBlock renders a TimeBlock as a schedule line.
// FormatBlock and ParseBlock round-trip: ParseBlock(FormatBlock(b)) == b.
func FormatBlock(b TimeBlock) string {
	marker := markerPending
	if b.Done {
		marker = markerDone
	}
	return fmt.Sprintf("%s - %s | %s %s", b.Start, b.End, marker, b.Description)
}

// parseDay extracts all time blocks from a day file's content, in file order.
// Non-block lines (the header, blanks) are skipped.
func parseDay(content string) []TimeBlock {
	var blocks []TimeBlock
	for _, line := range strings.Split(content, "\n") {
		b, err := ParseBlock(strings.TrimRight(line, "\r"))
		if err != nil {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}
