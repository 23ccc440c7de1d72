package domain

// ContactKind classifies a contact as a customer, a vendor, or both.
type ContactKind string

const (
	ContactCustomer ContactKind = "CUSTOMER"
	ContactVendor   ContactKind = "VENDOR"
	ContactBoth     ContactKind = "BOTH"
)

// IsCustomer reports whether the contact can appear on invoices.
func (k ContactKind) IsCustomer() bool {
	return k == ContactCustomer || k == ContactBoth
}

// IsVendor reports whether the contact can appear on bills.
func (k ContactKind) IsVendor() bool {
	return k == ContactVendor || k == ContactBoth
}

// Contact represents a customer or vendor of a business.
type Contact struct {
	ContactID   string      `json:"contactID"`  // Primary Key (UUID)
	BusinessID  string      `json:"businessID"` // FK -> businesses.business_id
	Name        string      `json:"name"`
	Kind        ContactKind `json:"kind"`
	Email       string      `json:"email"` // Optional
	Phone       string      `json:"phone"` // Optional
	IsActive    bool        `json:"isActive"`
	AuditFields             // Embed common audit fields
}
