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
	"github.com/oluto/oluto-backend/internal/middleware"
)

// roleRank orders business roles for authorization checks. A user with a
// higher-ranked role passes a check for any lower-ranked role.
var roleRank = map[domain.UserBusinessRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleMember:   2,
	domain.RoleAdmin:    3,
}

// businessService handles business logic related to businesses and memberships.
type businessService struct {
	businessRepo portsrepo.BusinessRepositoryFacade
}

// NewBusinessService creates a new business service.
func NewBusinessService(br portsrepo.BusinessRepositoryFacade) portssvc.BusinessSvcFacade {
	return &businessService{businessRepo: br}
}

var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

// CreateBusiness creates a new business and makes the creator the initial admin.
func (s *businessService) CreateBusiness(ctx context.Context, name, legalName, description, creatorUserID string) (*domain.Business, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: business name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	newBusinessID := uuid.NewString()

	business := domain.Business{
		BusinessID:  newBusinessID,
		Name:        name,
		LegalName:   legalName,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.businessRepo.SaveBusiness(ctx, business); err != nil {
		logger.Error("Failed to save business in repository", slog.String("error", err.Error()), slog.String("business_name", name))
		return nil, fmt.Errorf("failed to create business: %w", err)
	}

	membership := domain.UserBusiness{
		UserID:     creatorUserID,
		BusinessID: newBusinessID,
		Role:       domain.RoleAdmin,
		JoinedAt:   now,
	}
	if err := s.businessRepo.AddUserToBusiness(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new business", slog.String("error", err.Error()), slog.String("business_id", newBusinessID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator to business: %w", err)
	}

	logger.Info("Business created successfully", slog.String("business_id", newBusinessID), slog.String("creator_user_id", creatorUserID))
	return &business, nil
}

// FindBusinessByID retrieves a business by its ID.
func (s *businessService) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find business by ID in repository", slog.String("error", err.Error()), slog.String("business_id", businessID))
		}
		return nil, err
	}
	return business, nil
}

// ListUserBusinesses retrieves the list of businesses a given user belongs to.
func (s *businessService) ListUserBusinesses(ctx context.Context, userID string, includeDisabled bool) ([]domain.Business, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	businesses, err := s.businessRepo.ListBusinessesByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list businesses for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list businesses for user %s: %w", userID, err)
	}

	if !includeDisabled {
		active := make([]domain.Business, 0, len(businesses))
		for _, b := range businesses {
			if b.IsActive {
				active = append(active, b)
			}
		}
		businesses = active
	}

	if businesses == nil {
		return []domain.Business{}, nil
	}

	logger.Debug("Businesses listed successfully for user", slog.String("user_id", userID), slog.Int("count", len(businesses)))
	return businesses, nil
}

// ListBusinessUsers retrieves all memberships of a business. Any member of
// the business may list them.
func (s *businessService) ListBusinessUsers(ctx context.Context, businessID string, requestingUserID string) ([]domain.UserBusiness, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	memberships, err := s.businessRepo.ListUsersInBusiness(ctx, businessID)
	if err != nil {
		logger.Error("Failed to list users in business from repository", slog.String("error", err.Error()), slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list users in business %s: %w", businessID, err)
	}

	if memberships == nil {
		return []domain.UserBusiness{}, nil
	}
	return memberships, nil
}

// DeactivateBusiness marks a business as inactive. Admin only.
func (s *businessService) DeactivateBusiness(ctx context.Context, businessID string, requestingUserID string) error {
	return s.setBusinessActive(ctx, businessID, requestingUserID, false)
}

// ActivateBusiness marks a business as active. Admin only.
func (s *businessService) ActivateBusiness(ctx context.Context, businessID string, requestingUserID string) error {
	return s.setBusinessActive(ctx, businessID, requestingUserID, true)
}

func (s *businessService) setBusinessActive(ctx context.Context, businessID string, requestingUserID string, active bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return err
	}
	if business.IsActive == active {
		return nil
	}

	business.IsActive = active
	business.LastUpdatedAt = time.Now()
	business.LastUpdatedBy = requestingUserID

	if err := s.businessRepo.UpdateBusiness(ctx, *business); err != nil {
		logger.Error("Failed to update business active state", slog.String("error", err.Error()), slog.String("business_id", businessID))
		return fmt.Errorf("failed to update business %s: %w", businessID, err)
	}

	logger.Info("Business active state updated", slog.String("business_id", businessID), slog.Bool("is_active", active))
	return nil
}

// AddUserToBusiness adds a user to a business with a specific role. Admin only.
func (s *businessService) AddUserToBusiness(ctx context.Context, addingUserID, targetUserID, businessID string, role domain.UserBusinessRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, ok := roleRank[role]; !ok {
		return fmt.Errorf("%w: invalid role %s", apperrors.ErrValidation, role)
	}

	membership := domain.UserBusiness{
		UserID:     targetUserID,
		BusinessID: businessID,
		Role:       role,
		JoinedAt:   time.Now(),
	}

	if err := s.businessRepo.AddUserToBusiness(ctx, membership); err != nil {
		logger.Error("Failed to add user to business in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("business_id", businessID))
		return fmt.Errorf("failed to add user %s to business %s: %w", targetUserID, businessID, err)
	}

	logger.Info("User added to business successfully", slog.String("target_user_id", targetUserID), slog.String("business_id", businessID), slog.String("role", string(role)), slog.String("added_by_user_id", addingUserID))
	return nil
}

// RemoveUserFromBusiness removes a user from a business. Admin only. The
// membership row is kept with the REMOVED role so the audit trail survives.
func (s *businessService) RemoveUserFromBusiness(ctx context.Context, requestingUserID, targetUserID, businessID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: cannot remove yourself from a business", apperrors.ErrValidation)
	}

	membership, err := s.businessRepo.FindUserBusinessRole(ctx, targetUserID, businessID)
	if err != nil {
		return err
	}

	membership.Role = domain.RoleRemoved
	if err := s.businessRepo.AddUserToBusiness(ctx, *membership); err != nil {
		logger.Error("Failed to mark user as removed from business", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("business_id", businessID))
		return fmt.Errorf("failed to remove user %s from business %s: %w", targetUserID, businessID, err)
	}

	logger.Info("User removed from business", slog.String("target_user_id", targetUserID), slog.String("business_id", businessID))
	return nil
}

// UpdateUserBusinessRole updates a user's role in a business. Admin only.
func (s *businessService) UpdateUserBusinessRole(ctx context.Context, requestingUserID, targetUserID, businessID string, newRole domain.UserBusinessRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, ok := roleRank[newRole]; !ok {
		return fmt.Errorf("%w: invalid role %s", apperrors.ErrValidation, newRole)
	}

	membership, err := s.businessRepo.FindUserBusinessRole(ctx, targetUserID, businessID)
	if err != nil {
		return err
	}
	if membership.Role == domain.RoleRemoved {
		return fmt.Errorf("%w: user is not a member of the business", apperrors.ErrNotFound)
	}

	membership.Role = newRole
	if err := s.businessRepo.AddUserToBusiness(ctx, *membership); err != nil {
		logger.Error("Failed to update user role in business", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("business_id", businessID))
		return fmt.Errorf("failed to update role for user %s in business %s: %w", targetUserID, businessID, err)
	}

	logger.Info("User role updated in business", slog.String("target_user_id", targetUserID), slog.String("business_id", businessID), slog.String("new_role", string(newRole)))
	return nil
}

// AuthorizeUserAction checks if a user has the required role (or higher)
// within a specific business.
// Returns apperrors.ErrNotFound if the user is not a member, so membership
// checks do not reveal whether the business exists.
// Returns apperrors.ErrForbidden if the user is a member but lacks the role.
func (s *businessService) AuthorizeUserAction(ctx context.Context, userID, businessID string, requiredRole domain.UserBusinessRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.businessRepo.FindUserBusinessRole(ctx, userID, businessID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user is not a member of the business", slog.String("user_id", userID), slog.String("business_id", businessID))
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user business role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("business_id", businessID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if membership.Role == domain.RoleRemoved {
		logger.Warn("Authorization failed: user was removed from the business", slog.String("user_id", userID), slog.String("business_id", businessID))
		return apperrors.ErrNotFound
	}

	if roleRank[membership.Role] >= roleRank[requiredRole] {
		return nil
	}

	logger.Warn("Authorization failed: user lacks required role", slog.String("user_id", userID), slog.String("business_id", businessID), slog.String("user_role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}
