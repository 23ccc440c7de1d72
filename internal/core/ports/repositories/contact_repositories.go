package repositories

import (
	"context"
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// ContactReader defines read operations for customer/vendor contacts.
type ContactReader interface {
	// FindContactByID retrieves a specific contact by its unique identifier.
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)

	// FindContactsByIDs retrieves multiple contacts by their IDs.
	FindContactsByIDs(ctx context.Context, contactIDs []string) (map[string]domain.Contact, error)

	// ListContacts retrieves a paginated list of contacts for a business,
	// optionally filtered by kind (nil means all kinds).
	ListContacts(ctx context.Context, businessID string, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error)
}

// ContactRepository defines data access operations for customer/vendor contacts.
type ContactRepository interface {
	ContactReader

	// SaveContact persists a new contact.
	SaveContact(ctx context.Context, contact domain.Contact) error

	// UpdateContact updates an existing contact's details.
	UpdateContact(ctx context.Context, contact domain.Contact) error

	// DeactivateContact marks a contact as inactive.
	DeactivateContact(ctx context.Context, contactID string, userID string, now time.Time) error
}
