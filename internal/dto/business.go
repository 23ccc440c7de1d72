package dto

import (
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// --- Business DTOs ---

// CreateBusinessRequest defines data for creating a new business.
type CreateBusinessRequest struct {
	Name        string `json:"name" binding:"required"`
	LegalName   string `json:"legalName"`
	Description string `json:"description"`
}

// UpdateBusinessRequest defines data allowed for updating a business.
type UpdateBusinessRequest struct {
	Name        *string `json:"name"`
	LegalName   *string `json:"legalName"`
	Description *string `json:"description"`
}

// BusinessResponse defines data returned for a business.
type BusinessResponse struct {
	BusinessID    string    `json:"businessID"`
	Name          string    `json:"name"`
	LegalName     string    `json:"legalName,omitempty"`
	Description   string    `json:"description,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID
}

// ToBusinessResponse converts domain.Business to DTO.
func ToBusinessResponse(b *domain.Business) BusinessResponse {
	return BusinessResponse{
		BusinessID:    b.BusinessID,
		Name:          b.Name,
		LegalName:     b.LegalName,
		Description:   b.Description,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		CreatedBy:     b.CreatedBy,
		LastUpdatedAt: b.LastUpdatedAt,
		LastUpdatedBy: b.LastUpdatedBy,
	}
}

// ListBusinessesResponse wraps a list of businesses.
type ListBusinessesResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
}

// ToListBusinessesResponse converts a slice of domain.Business to DTO.
func ToListBusinessesResponse(bs []domain.Business) ListBusinessesResponse {
	list := make([]BusinessResponse, len(bs))
	for i, b := range bs {
		list[i] = ToBusinessResponse(&b)
	}
	return ListBusinessesResponse{Businesses: list}
}

// --- User Business Membership DTOs ---

// AddUserToBusinessRequest defines data for adding a user to a business.
type AddUserToBusinessRequest struct {
	UserID string                  `json:"userID" binding:"required"`
	Role   domain.UserBusinessRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UpdateUserBusinessRoleRequest defines data for changing a member's role.
type UpdateUserBusinessRoleRequest struct {
	Role domain.UserBusinessRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UserBusinessResponse defines data returned about a user's membership.
type UserBusinessResponse struct {
	UserID     string                  `json:"userID"`
	UserName   string                  `json:"userName,omitempty"`
	BusinessID string                  `json:"businessID"`
	Role       domain.UserBusinessRole `json:"role"`
	JoinedAt   time.Time               `json:"joinedAt"`
}

// ToUserBusinessResponse converts domain.UserBusiness to DTO.
func ToUserBusinessResponse(ub *domain.UserBusiness) UserBusinessResponse {
	return UserBusinessResponse{
		UserID:     ub.UserID,
		UserName:   ub.UserName,
		BusinessID: ub.BusinessID,
		Role:       ub.Role,
		JoinedAt:   ub.JoinedAt,
	}
}

// ToListUserBusinessResponse converts a slice of domain.UserBusiness to DTO.
func ToListUserBusinessResponse(ubs []domain.UserBusiness) []UserBusinessResponse {
	list := make([]UserBusinessResponse, len(ubs))
	for i, ub := range ubs {
		list[i] = ToUserBusinessResponse(&ub)
	}
	return list
}
