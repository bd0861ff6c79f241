package agent

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anandpillai/mitra/internal/llm"
)

// History persists conversation messages per day, one JSON object per line,
// so context survives across invocations within the same day.
type History struct {
	dir  string
	zone *time.Location
}

// NewHistory creates the history directory if needed.
func NewHistory(dir string, zone *time.Location) (*History, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return &History{dir: dir, zone: zone}, nil
}

func (h *History) todayPath() string {
	return filepath.Join(h.dir, time.Now().In(h.zone).Format("2006-01-02")+".json")
}

// Append records one message in today's file.
func (h *History) Append(role, content string) error {
	line, err := json.Marshal(llm.Message{Role: role, Content: content})
	if err != nil {
		return fmt.Errorf("encoding history message: %w", err)
	}

	f, err := os.OpenFile(h.todayPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Recent returns up to limit of today's most recent messages, oldest first.
// Malformed lines are skipped.
func (h *History) Recent(limit int) ([]llm.Message, error) {
	f, err := os.Open(h.todayPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var messages []llm.Message
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var msg llm.Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}
