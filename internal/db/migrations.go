package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS contacts (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			email          TEXT NOT NULL DEFAULT '',
			phone          TEXT NOT NULL DEFAULT '',
			notes          TEXT NOT NULL DEFAULT '',
			frequency_days INTEGER NOT NULL DEFAULT 0,
			created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS calls (
			id               TEXT PRIMARY KEY,
			contact_id       TEXT NOT NULL,
			start            DATETIME NOT NULL,
			duration_minutes INTEGER NOT NULL,
			event_id         TEXT NOT NULL DEFAULT '',
			notes            TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_calls_contact ON calls(contact_id);
		CREATE INDEX IF NOT EXISTS idx_calls_start ON calls(start);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
