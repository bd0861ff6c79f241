// Package contacts defines the contact and scheduled-call domain types.
package contacts

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Validation and lookup errors.
var (
	ErrEmptyName       = errors.New("contact name cannot be empty")
	ErrContactNotFound = errors.New("contact not found")
	ErrCallNotFound    = errors.New("call not found")
)

// Contact is a person the assistant can schedule calls with.
// FrequencyDays is the call cadence in days; zero or negative means the
// contact is not on a recurring cadence.
type Contact struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Notes         string
	FrequencyDays int
	CreatedAt     time.Time
}

// New creates a Contact with validation.
func New(name, email, phone, notes string, frequencyDays int) (*Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Contact{
		Name:          name,
		Email:         email,
		Phone:         phone,
		Notes:         notes,
		FrequencyDays: frequencyDays,
		CreatedAt:     time.Now(),
	}, nil
}

// HasCadence returns true if the contact should receive recurring calls.
func (c *Contact) HasCadence() bool {
	return c.FrequencyDays > 0
}

// Matches reports whether the query appears in any of the contact's fields.
// Matching is case-insensitive substring search.
func (c *Contact) Matches(query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{c.Name, c.Email, c.Phone, c.Notes} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Call links a contact to a committed calendar event.
// A call outlives the contact it references; a dangling ContactID is
// tolerated and displayed as "Unknown".
type Call struct {
	ID              string
	ContactID       string
	Start           time.Time
	DurationMinutes int
	EventID         string
	Notes           string
}

// Repository is the storage interface for contacts and their calls.
type Repository interface {
	// CreateContact stores a new contact, assigning its ID.
	CreateContact(ctx context.Context, c *Contact) error

	// GetContact retrieves a contact by id, or ErrContactNotFound.
	GetContact(ctx context.Context, id string) (*Contact, error)

	// ListContacts returns all contacts in creation order.
	ListContacts(ctx context.Context) ([]*Contact, error)

	// SearchContacts returns contacts matching the query (see Contact.Matches).
	SearchContacts(ctx context.Context, query string) ([]*Contact, error)

	// UpdateContact rewrites a contact's mutable fields by ID.
	UpdateContact(ctx context.Context, c *Contact) error

	// DeleteContact removes a contact. Its recorded calls remain.
	DeleteContact(ctx context.Context, id string) error

	// RecordCall stores a scheduled call, assigning its ID.
	RecordCall(ctx context.Context, call *Call) error

	// GetCall retrieves a call by id, or ErrCallNotFound.
	GetCall(ctx context.Context, id string) (*Call, error)

	// ListCalls returns all calls ordered by start time ascending.
	ListCalls(ctx context.Context) ([]*Call, error)

	// ListCallsForContact returns a contact's calls, most recent start first.
	ListCallsForContact(ctx context.Context, contactID string) ([]*Call, error)

	// DeleteCall removes a call record.
	DeleteCall(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
