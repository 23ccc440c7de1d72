package domain

import "time"

// Business represents an isolated tenant containing accounts, contacts,
// invoices, bills, payments and journals.
type Business struct {
	BusinessID  string `json:"businessID"`  // Primary Key (UUID)
	Name        string `json:"name"`        // Display name of the business
	LegalName   string `json:"legalName"`   // Optional registered legal name
	Description string `json:"description"` // Optional description
	IsActive    bool   `json:"isActive"`    // Indicates whether the business is active or disabled
	AuditFields        // Embed common audit fields
}

// UserBusinessRole defines the possible roles a user can have within a business.
type UserBusinessRole string

const (
	RoleAdmin    UserBusinessRole = "ADMIN"
	RoleMember   UserBusinessRole = "MEMBER"
	RoleReadOnly UserBusinessRole = "READONLY" // Users with read-only access to business data
	RoleRemoved  UserBusinessRole = "REMOVED"  // For users who have been removed from the business
)

// UserBusiness represents the membership of a User in a Business.
type UserBusiness struct {
	UserID     string           `json:"userID"`     // FK -> users.user_id
	UserName   string           `json:"userName"`   // Name of the user
	BusinessID string           `json:"businessID"` // FK -> businesses.business_id
	Role       UserBusinessRole `json:"role"`       // Role of the user in this specific business
	JoinedAt   time.Time        `json:"joinedAt"`   // Timestamp when the user joined the business
}
