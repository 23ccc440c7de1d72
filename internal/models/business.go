package models

import "time"

// Business represents a tenant row.
type Business struct {
	BusinessID  string `db:"business_id"`
	Name        string `db:"name"`
	LegalName   string `db:"legal_name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// UserBusiness represents a user's membership row in a business.
type UserBusiness struct {
	UserID     string    `db:"user_id"`
	BusinessID string    `db:"business_id"`
	Role       string    `db:"role"`
	JoinedAt   time.Time `db:"joined_at"`
	AuditFields
}
