// Package db provides SQLite storage for contacts and scheduled calls.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/anandpillai/mitra/internal/contacts"
)

// SQLite implements contacts.Repository using SQLite.
// Calls intentionally carry no foreign key to contacts: a call record
// outlives the contact it references.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: database}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateContact stores a new contact, assigning its ID.
func (s *SQLite) CreateContact(ctx context.Context, c *contacts.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO contacts (id, name, email, phone, notes, frequency_days, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Notes,
		c.FrequencyDays,
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}

// GetContact retrieves a contact by ID.
func (s *SQLite) GetContact(ctx context.Context, id string) (*contacts.Contact, error) {
	query := `
		SELECT id, name, email, phone, notes, frequency_days, created_at
		FROM contacts
		WHERE id = ?
	`
	c, err := scanContact(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", contacts.ErrContactNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying contact: %w", err)
	}
	return c, nil
}

// ListContacts returns all contacts in creation order.
func (s *SQLite) ListContacts(ctx context.Context) ([]*contacts.Contact, error) {
	query := `
		SELECT id, name, email, phone, notes, frequency_days, created_at
		FROM contacts
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*contacts.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}
	return result, nil
}

// SearchContacts returns contacts matching the query across name, email,
// phone, and notes.
func (s *SQLite) SearchContacts(ctx context.Context, query string) ([]*contacts.Contact, error) {
	all, err := s.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*contacts.Contact
	for _, c := range all {
		if c.Matches(query) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// UpdateContact rewrites a contact's mutable fields by ID.
func (s *SQLite) UpdateContact(ctx context.Context, c *contacts.Contact) error {
	query := `
		UPDATE contacts
		SET name = ?, email = ?, phone = ?, notes = ?, frequency_days = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Notes, c.FrequencyDays, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", contacts.ErrContactNotFound, c.ID)
	}
	return nil
}

// DeleteContact removes a contact. Recorded calls keep their contact_id.
func (s *SQLite) DeleteContact(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", contacts.ErrContactNotFound, id)
	}
	return nil
}

// RecordCall stores a scheduled call, assigning its ID.
func (s *SQLite) RecordCall(ctx context.Context, call *contacts.Call) error {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}

	query := `
		INSERT INTO calls (id, contact_id, start, duration_minutes, event_id, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		call.ID,
		call.ContactID,
		call.Start.Format(time.RFC3339),
		call.DurationMinutes,
		call.EventID,
		call.Notes,
	)
	if err != nil {
		return fmt.Errorf("inserting call: %w", err)
	}
	return nil
}

// GetCall retrieves a call by ID.
func (s *SQLite) GetCall(ctx context.Context, id string) (*contacts.Call, error) {
	query := `
		SELECT id, contact_id, start, duration_minutes, event_id, notes
		FROM calls
		WHERE id = ?
	`
	call, err := scanCall(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", contacts.ErrCallNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying call: %w", err)
	}
	return call, nil
}

// ListCalls returns all calls ordered by start time ascending.
func (s *SQLite) ListCalls(ctx context.Context) ([]*contacts.Call, error) {
	query := `
		SELECT id, contact_id, start, duration_minutes, event_id, notes
		FROM calls
		ORDER BY start
	`
	return s.queryCalls(ctx, query)
}

// ListCallsForContact returns a contact's calls, most recent start first.
func (s *SQLite) ListCallsForContact(ctx context.Context, contactID string) ([]*contacts.Call, error) {
	query := `
		SELECT id, contact_id, start, duration_minutes, event_id, notes
		FROM calls
		WHERE contact_id = ?
		ORDER BY start DESC
	`
	return s.queryCalls(ctx, query, contactID)
}

// DeleteCall removes a call record.
func (s *SQLite) DeleteCall(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM calls WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting call: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", contacts.ErrCallNotFound, id)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) queryCalls(ctx context.Context, query string, args ...any) ([]*contacts.Call, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying calls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*contacts.Call
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning call: %w", err)
		}
		result = append(result, call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calls: %w", err)
	}
	return result, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (*contacts.Contact, error) {
	var (
		c         contacts.Contact
		createdAt string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.FrequencyDays, &createdAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &c, nil
}

func scanCall(row scanner) (*contacts.Call, error) {
	var (
		call  contacts.Call
		start string
	)
	err := row.Scan(&call.ID, &call.ContactID, &start, &call.DurationMinutes, &call.EventID, &call.Notes)
	if err != nil {
		return nil, err
	}
	call.Start, err = time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, fmt.Errorf("parsing call start: %w", err)
	}
	return &call, nil
}
