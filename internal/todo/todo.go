// Package todo persists a flat ordered to-do list as a plain text file
// of "[ ] task" and "[x] task" lines.
package todo

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	markerPending = "[ ]"
	markerDone    = "[x]"
)

// Item is a single to-do entry.
type Item struct {
	Done bool
	Text string
}

// Codec errors.
var (
	ErrNotAnItem = errors.New("line is not a to-do item")
	ErrEmptyText = errors.New("to-do text cannot be empty")
)

// ParseItem parses one to-do line.
func ParseItem(line string) (Item, error) {
	switch {
	case strings.HasPrefix(line, markerDone+" "):
		return Item{Done: true, Text: strings.TrimSpace(line[len(markerDone)+1:])}, nil
	case strings.HasPrefix(line, markerPending+" "):
		return Item{Done: false, Text: strings.TrimSpace(line[len(markerPending)+1:])}, nil
	default:
		return Item{}, ErrNotAnItem
	}
}

// FormatItem renders a to-do line. ParseItem(FormatItem(i)) == i.
func FormatItem(i Item) string {
	marker := markerPending
	if i.Done {
		marker = markerDone
	}
	return marker + " " + i.Text
}

// List is a file-backed ordered to-do list.
type List struct {
	path string
}

// NewList creates a List stored at path, creating an empty file if missing.
func NewList(path string) (*List, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("creating to-do file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("checking to-do file: %w", err)
	}
	return &List{path: path}, nil
}

// Items returns all entries in file order.
func (l *List) Items() ([]Item, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading to-do list: %w", err)
	}
	var items []Item
	for _, line := range strings.Split(string(data), "\n") {
		item, err := ParseItem(strings.TrimRight(line, "\r"))
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Pending returns the not-yet-done entries in file order.
func (l *List) Pending() ([]Item, error) {
	items, err := l.Items()
	if err != nil {
		return nil, err
	}
	var pending []Item
	for _, item := range items {
		if !item.Done {
			pending = append(pending, item)
		}
	}
	return pending, nil
}

// Add appends a new pending entry.
func (l *List) Add(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening to-do list: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(FormatItem(Item{Text: text}) + "\n"); err != nil {
		return fmt.Errorf("appending to-do item: %w", err)
	}
	return nil
}

// MarkDone flips every pending entry whose text contains match.
// Returns true if at least one entry matched.
func (l *List) MarkDone(match string) (bool, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return false, fmt.Errorf("reading to-do list: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	found := false
	for i, line := range lines {
		if strings.Contains(line, match) && strings.HasPrefix(line, markerPending) {
			lines[i] = strings.Replace(line, markerPending, markerDone, 1)
			found = true
		}
	}
	if !found {
		return false, nil
	}
	if err := os.WriteFile(l.path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return false, fmt.Errorf("writing to-do list: %w", err)
	}
	return true, nil
}

// Delete removes every entry whose text contains match and reports how
// many entries were removed.
func (l *List) Delete(match string) (int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, fmt.Errorf("reading to-do list: %w", err)
	}

	var kept []string
	removed := 0
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" && strings.Contains(line, match) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := os.WriteFile(l.path, []byte(strings.Join(kept, "\n")), 0o644); err != nil {
		return 0, fmt.Errorf("writing to-do list: %w", err)
	}
	return removed, nil
}
