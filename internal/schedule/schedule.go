// Package schedule persists a day's time-blocked plan as a plain text file.
//
// Each date owns one file under the store directory, one line per block.
// The files are meant to stay human-editable; everything else in the
// program goes through ParseBlock/FormatBlock instead of touching the
// textual representation.
package schedule

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// TimeBlock is a contiguous interval within a single day.
// Start and End are "HH:MM" clock strings with Start < End.
type TimeBlock struct {
	Start       string
	End         string
	Description string
	Done        bool
}

// Domain errors.
var (
	ErrBlockOverlap = errors.New("time block overlaps with existing block")
	ErrNoSchedule   = errors.New("schedule not found")
)

// Store keeps one schedule file per date.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating schedule directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(date time.Time) string {
	return filepath.Join(s.dir, date.Format("2006-01-02")+".txt")
}

// lock takes an exclusive file lock for the date. Schedule files are a
// shared mutable resource; the lock preserves the single-writer guarantee
// when more than one process touches the same date.
func (s *Store) lock(date time.Time) (*flock.Flock, error) {
	fl := flock.New(s.path(date) + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("locking schedule for %s: %w", date.Format("2006-01-02"), err)
	}
	return fl, nil
}

// defaultTemplate is written when a date is read before any block exists.
func defaultTemplate(date time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Schedule for %s\n\n", date.Format("2006-01-02"))
	sb.WriteString(FormatBlock(TimeBlock{Start: "09:00", End: "10:00", Description: "Morning routine"}) + "\n")
	sb.WriteString(FormatBlock(TimeBlock{Start: "10:00", End: "12:00", Description: "Deep work session"}) + "\n")
	sb.WriteString(FormatBlock(TimeBlock{Start: "14:00", End: "15:00", Description: "Learn something new"}) + "\n")
	return sb.String()
}

// ensure creates the default template for the date if no file exists yet.
// Returns true if a new file was created.
func (s *Store) ensure(date time.Time) (bool, error) {
	fl, err := s.lock(date)
	if err != nil {
		return false, err
	}
	defer func() { _ = fl.Unlock() }()

	path := s.path(date)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking schedule file: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultTemplate(date)), 0o644); err != nil {
		return false, fmt.Errorf("creating schedule file: %w", err)
	}
	return true, nil
}

// ReadFile returns the raw schedule text for the date, creating the default
// template first when the date has no record.
func (s *Store) ReadFile(date time.Time) (string, error) {
	if _, err := s.ensure(date); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path(date))
	if err != nil {
		return "", fmt.Errorf("reading schedule: %w", err)
	}
	return string(data), nil
}

// Read returns the date's time blocks sorted by start time, creating the
// default template first when the date has no record.
func (s *Store) Read(date time.Time) ([]TimeBlock, error) {
	content, err := s.ReadFile(date)
	if err != nil {
		return nil, err
	}
	blocks := parseDay(content)
	slices.SortStableFunc(blocks, func(a, b TimeBlock) int {
		return strings.Compare(a.Start, b.Start)
	})
	return blocks, nil
}

// Append adds a new pending block to the date's schedule.
// Returns ErrBlockOverlap if the block conflicts with an existing one.
func (s *Store) Append(date time.Time, block TimeBlock) error {
	if _, err := ParseBlock(FormatBlock(block)); err != nil {
		return err
	}
	if _, err := s.ensure(date); err != nil {
		return err
	}

	fl, err := s.lock(date)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	data, err := os.ReadFile(s.path(date))
	if err != nil {
		return fmt.Errorf("reading schedule: %w", err)
	}
	for _, existing := range parseDay(string(data)) {
		if block.Start < existing.End && existing.Start < block.End {
			return fmt.Errorf("%w: %q (%s-%s) conflicts with %q (%s-%s)",
				ErrBlockOverlap,
				block.Description, block.Start, block.End,
				existing.Description, existing.Start, existing.End,
			)
		}
	}

	f, err := os.OpenFile(s.path(date), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening schedule: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(FormatBlock(block) + "\n"); err != nil {
		return fmt.Errorf("appending block: %w", err)
	}
	return nil
}

// MarkDone flips the first pending block whose description contains match.
// Returns false if no pending block matched.
func (s *Store) MarkDone(date time.Time, match string) (bool, error) {
	fl, err := s.lock(date)
	if err != nil {
		return false, err
	}
	defer func() { _ = fl.Unlock() }()

	data, err := os.ReadFile(s.path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return false, ErrNoSchedule
		}
		return false, fmt.Errorf("reading schedule: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	found := false
	for i, line := range lines {
		if found {
			break
		}
		if strings.Contains(line, match) && strings.Contains(line, markerPending) {
			lines[i] = strings.Replace(line, markerPending, markerDone, 1)
			found = true
		}
	}
	if !found {
		return false, nil
	}

	if err := os.WriteFile(s.path(date), []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return false, fmt.Errorf("writing schedule: %w", err)
	}
	return true, nil
}

// Update replaces the whole day's content.
func (s *Store) Update(date time.Time, content string) error {
	fl, err := s.lock(date)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	if err := os.WriteFile(s.path(date), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}
	return nil
}

// Summary counts completed blocks against the total for the date.
func (s *Store) Summary(date time.Time) (done, total int, err error) {
	blocks, err := s.Read(date)
	if err != nil {
		return 0, 0, err
	}
	for _, b := range blocks {
		total++
		if b.Done {
			done++
		}
	}
	return done, total, nil
}

// NextPending returns the first not-yet-done block in start order.
func (s *Store) NextPending(date time.Time) (TimeBlock, bool, error) {
	blocks, err := s.Read(date)
	if err != nil {
		return TimeBlock{}, false, err
	}
	for _, b := range blocks {
		if !b.Done {
			return b, true, nil
		}
	}
	return TimeBlock{}, false, nil
}

// Delete removes the date's schedule file. Returns false if none existed.
func (s *Store) Delete(date time.Time) (bool, error) {
	fl, err := s.lock(date)
	if err != nil {
		return false, err
	}
	defer func() { _ = fl.Unlock() }()

	if err := os.Remove(s.path(date)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("deleting schedule: %w", err)
	}
	return true, nil
}
