package models

import (
	"database/sql"
	"time"
)

// User represents a user row, including local credential and refresh
// token columns.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	AuthProvider string `db:"auth_provider"`
	PasswordHash string `db:"password_hash"` // Empty for OAuth-only users
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"` // Used for soft delete

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
