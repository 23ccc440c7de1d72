package dto

import (
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// CreateContactRequest defines the data needed to create a new contact.
type CreateContactRequest struct {
	Name  string             `json:"name" binding:"required"`
	Kind  domain.ContactKind `json:"kind" binding:"required,oneof=CUSTOMER VENDOR BOTH"`
	Email string             `json:"email" binding:"omitempty,email"`
	Phone string             `json:"phone"`
}

// UpdateContactRequest defines the data allowed for updating a contact.
type UpdateContactRequest struct {
	Name     *string             `json:"name"`
	Kind     *domain.ContactKind `json:"kind" binding:"omitempty,oneof=CUSTOMER VENDOR BOTH"`
	Email    *string             `json:"email" binding:"omitempty,email"`
	Phone    *string             `json:"phone"`
	IsActive *bool               `json:"isActive"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID     string             `json:"contactID"`
	Name          string             `json:"name"`
	Kind          domain.ContactKind `json:"kind"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ListContactsParams defines query parameters for listing contacts.
type ListContactsParams struct {
	Kind   *domain.ContactKind `form:"kind" binding:"omitempty,oneof=CUSTOMER VENDOR BOTH"`
	Limit  int                 `form:"limit,default=20"`
	Offset int                 `form:"offset,default=0"`
}

// ListContactsResponse wraps the list of contacts.
type ListContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

// ToContactResponse converts a domain.Contact to ContactResponse DTO
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:     c.ContactID,
		Name:          c.Name,
		Kind:          c.Kind,
		Email:         c.Email,
		Phone:         c.Phone,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListContactsResponse converts a slice of domain.Contact to ListContactsResponse
func ToListContactsResponse(contacts []domain.Contact) ListContactsResponse {
	res := make([]ContactResponse, len(contacts))
	for i, c := range contacts {
		res[i] = ToContactResponse(&c)
	}
	return ListContactsResponse{Contacts: res}
}
