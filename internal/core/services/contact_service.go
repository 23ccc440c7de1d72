package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/dto"
)

// contactService implements the ContactSvcFacade interface
type contactService struct {
	BaseService
	contactRepo portsrepo.ContactRepository
}

// NewContactService creates a new contact service.
func NewContactService(repo portsrepo.ContactRepository, authorizer portssvc.BusinessAuthorizerSvc) portssvc.ContactSvcFacade {
	return &contactService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		contactRepo: repo,
	}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) CreateContact(ctx context.Context, businessID string, req dto.CreateContactRequest, userID string) (*domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	contact := domain.Contact{
		ContactID:  uuid.NewString(),
		BusinessID: businessID,
		Name:       req.Name,
		Kind:       req.Kind,
		Email:      req.Email,
		Phone:      req.Phone,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		s.LogError(ctx, err, "Failed to save contact in repository",
			slog.String("contact_id", contact.ContactID),
			slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.LogInfo(ctx, "Contact created successfully",
		slog.String("contact_id", contact.ContactID),
		slog.String("business_id", businessID))
	return &contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, businessID string, contactID string, userID string) (*domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find contact by ID in repository",
				slog.String("contact_id", contactID))
		}
		return nil, err
	}

	if contact.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}

	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context, businessID string, userID string, params dto.ListContactsParams) ([]domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	contacts, err := s.contactRepo.ListContacts(ctx, businessID, params.Kind, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contacts from repository",
			slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	if contacts == nil {
		return []domain.Contact{}, nil
	}
	return contacts, nil
}

func (s *contactService) UpdateContact(ctx context.Context, businessID string, contactID string, req dto.UpdateContactRequest, userID string) (*domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	contact, err := s.GetContactByID(ctx, businessID, contactID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil && *req.Name != contact.Name {
		contact.Name = *req.Name
		updated = true
	}
	if req.Kind != nil && *req.Kind != contact.Kind {
		contact.Kind = *req.Kind
		updated = true
	}
	if req.Email != nil && *req.Email != contact.Email {
		contact.Email = *req.Email
		updated = true
	}
	if req.Phone != nil && *req.Phone != contact.Phone {
		contact.Phone = *req.Phone
		updated = true
	}
	if req.IsActive != nil && *req.IsActive != contact.IsActive {
		contact.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return contact, nil
	}

	contact.LastUpdatedAt = time.Now()
	contact.LastUpdatedBy = userID

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		s.LogError(ctx, err, "Failed to update contact in repository",
			slog.String("contact_id", contactID))
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	s.LogInfo(ctx, "Contact updated successfully", slog.String("contact_id", contactID))
	return contact, nil
}

func (s *contactService) DeactivateContact(ctx context.Context, businessID string, contactID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.GetContactByID(ctx, businessID, contactID, userID); err != nil {
		return err
	}

	if err := s.contactRepo.DeactivateContact(ctx, contactID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate contact in repository",
				slog.String("contact_id", contactID))
		}
		return err
	}

	s.LogInfo(ctx, "Contact deactivated successfully", slog.String("contact_id", contactID))
	return nil
}
