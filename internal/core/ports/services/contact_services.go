package services

import (
	"context"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/dto"
)

// ContactSvcFacade defines operations for customer/vendor contact management
type ContactSvcFacade interface {
	// CreateContact persists a new contact.
	CreateContact(ctx context.Context, businessID string, req dto.CreateContactRequest, userID string) (*domain.Contact, error)

	// GetContactByID retrieves a specific contact.
	GetContactByID(ctx context.Context, businessID string, contactID string, userID string) (*domain.Contact, error)

	// ListContacts retrieves a paginated list of contacts, optionally
	// filtered by kind.
	ListContacts(ctx context.Context, businessID string, userID string, params dto.ListContactsParams) ([]domain.Contact, error)

	// UpdateContact updates an existing contact's details.
	UpdateContact(ctx context.Context, businessID string, contactID string, req dto.UpdateContactRequest, userID string) (*domain.Contact, error)

	// DeactivateContact marks a contact as inactive.
	DeactivateContact(ctx context.Context, businessID string, contactID string, userID string) error
}
