package repositories

import (
	"context"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// BusinessReader defines read operations for business data
type BusinessReader interface {
	// FindBusinessByID retrieves a specific business by its ID.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// ListBusinessesByUserID retrieves all businesses a user belongs to.
	ListBusinessesByUserID(ctx context.Context, userID string) ([]domain.Business, error)
}

// BusinessWriter defines write operations for business data
type BusinessWriter interface {
	// SaveBusiness persists a new business.
	SaveBusiness(ctx context.Context, business domain.Business) error

	// UpdateBusiness updates an existing business's details.
	UpdateBusiness(ctx context.Context, business domain.Business) error
}

// BusinessMembershipManager defines operations for managing business memberships
type BusinessMembershipManager interface {
	// AddUserToBusiness adds a user to a business with a specific role.
	AddUserToBusiness(ctx context.Context, membership domain.UserBusiness) error

	// FindUserBusinessRole retrieves the role of a user in a business.
	FindUserBusinessRole(ctx context.Context, userID, businessID string) (*domain.UserBusiness, error)

	// ListUsersInBusiness retrieves the memberships of a business.
	ListUsersInBusiness(ctx context.Context, businessID string) ([]domain.UserBusiness, error)
}

// BusinessRepositoryFacade combines all business-related repository interfaces
// This is a facade for clients that need access to all operations
type BusinessRepositoryFacade interface {
	BusinessReader
	BusinessWriter
	BusinessMembershipManager
}
