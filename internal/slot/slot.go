// Package slot computes free intervals within a bounded time window.
package slot

import (
	"slices"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps returns true if two intervals share any instant.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Find returns all free intervals of at least minDuration within
// [windowStart, windowEnd), given the busy intervals. Busy intervals may be
// unsorted, overlapping, or fully contained in one another; the cursor only
// ever advances, so a contained interval cannot open a spurious gap. Gaps
// are clamped to the window, so a busy interval past windowEnd never widens
// a result. Inputs are never mutated and the result is recomputed from scratch.
func Find(windowStart, windowEnd time.Time, busy []Interval, minDuration time.Duration) []Interval {
	if !windowStart.Before(windowEnd) {
		return nil
	}

	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	slices.SortStableFunc(sorted, func(a, b Interval) int {
		return a.Start.Compare(b.Start)
	})

	var free []Interval
	cursor := windowStart
	for _, b := range sorted {
		gapEnd := b.Start
		if gapEnd.After(windowEnd) {
			gapEnd = windowEnd
		}
		if gapEnd.Sub(cursor) >= minDuration {
			free = append(free, Interval{Start: cursor, End: gapEnd})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if windowEnd.Sub(cursor) >= minDuration {
		free = append(free, Interval{Start: cursor, End: windowEnd})
	}
	return free
}

// First returns the earliest free interval of at least minDuration, stopping
// the scan at the first gap that qualifies.
func First(windowStart, windowEnd time.Time, busy []Interval, minDuration time.Duration) (Interval, bool) {
	if !windowStart.Before(windowEnd) {
		return Interval{}, false
	}

	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	slices.SortStableFunc(sorted, func(a, b Interval) int {
		return a.Start.Compare(b.Start)
	})

	cursor := windowStart
	for _, b := range sorted {
		gapEnd := b.Start
		if gapEnd.After(windowEnd) {
			gapEnd = windowEnd
		}
		if gapEnd.Sub(cursor) >= minDuration {
			return Interval{Start: cursor, End: gapEnd}, true
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if windowEnd.Sub(cursor) >= minDuration {
		return Interval{Start: cursor, End: windowEnd}, true
	}
	return Interval{}, false
}
