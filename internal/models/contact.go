package models

// ContactKind distinguishes customers from vendors.
type ContactKind string

const (
	ContactCustomer ContactKind = "CUSTOMER"
	ContactVendor   ContactKind = "VENDOR"
	ContactBoth     ContactKind = "BOTH"
)

// Contact represents a customer or vendor row.
type Contact struct {
	ContactID  string      `db:"contact_id"`
	BusinessID string      `db:"business_id"`
	Name       string      `db:"name"`
	Kind       ContactKind `db:"kind"`
	Email      string      `db:"email"`
	Phone      string      `db:"phone"`
	IsActive   bool        `db:"is_active"`
	AuditFields
}
