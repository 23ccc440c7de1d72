package services

import (
	"context"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// BusinessReaderSvc defines read operations for business data
type BusinessReaderSvc interface {
	// FindBusinessByID retrieves a specific business by its ID.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// ListUserBusinesses retrieves businesses a user belongs to.
	// If includeDisabled is true, it includes inactive businesses.
	ListUserBusinesses(ctx context.Context, userID string, includeDisabled bool) ([]domain.Business, error)

	// ListBusinessUsers retrieves all users and their roles for a specific
	// business. Only members of the business can access this data.
	ListBusinessUsers(ctx context.Context, businessID string, requestingUserID string) ([]domain.UserBusiness, error)
}

// BusinessWriterSvc defines write operations for business data
type BusinessWriterSvc interface {
	// CreateBusiness persists a new business; the creator becomes its admin.
	CreateBusiness(ctx context.Context, name, legalName, description, creatorUserID string) (*domain.Business, error)

	// DeactivateBusiness marks a business as inactive.
	DeactivateBusiness(ctx context.Context, businessID string, requestingUserID string) error

	// ActivateBusiness marks a business as active.
	ActivateBusiness(ctx context.Context, businessID string, requestingUserID string) error
}

// BusinessMembershipSvc defines operations for managing business membership
type BusinessMembershipSvc interface {
	// AddUserToBusiness adds a user to a business with a specific role.
	AddUserToBusiness(ctx context.Context, addingUserID, targetUserID, businessID string, role domain.UserBusinessRole) error

	// RemoveUserFromBusiness removes a user from a business. Admin only.
	RemoveUserFromBusiness(ctx context.Context, requestingUserID, targetUserID, businessID string) error

	// UpdateUserBusinessRole updates a user's role in a business. Admin only.
	UpdateUserBusinessRole(ctx context.Context, requestingUserID, targetUserID, businessID string, newRole domain.UserBusinessRole) error
}

// BusinessAuthorizerSvc defines operations for business authorization
type BusinessAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a business.
	AuthorizeUserAction(ctx context.Context, userID, businessID string, requiredRole domain.UserBusinessRole) error
}

// BusinessSvcFacade combines all business-related service interfaces
// This is a facade for clients that need access to all operations
type BusinessSvcFacade interface {
	BusinessReaderSvc
	BusinessWriterSvc
	BusinessMembershipSvc
	BusinessAuthorizerSvc
}
