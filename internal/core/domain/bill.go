package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus indicates where a bill is in its lifecycle.
type BillStatus string

const (
	BillDraft   BillStatus = "DRAFT"
	BillOpen    BillStatus = "OPEN"
	BillPartial BillStatus = "PARTIAL"
	BillPaid    BillStatus = "PAID"
	BillVoid    BillStatus = "VOID"
)

// Bill represents a payable owed to a vendor contact. The mirror of Invoice
// on the accounts-payable side.
type Bill struct {
	BillID      string          `json:"billID"`     // Primary Key (UUID)
	BusinessID  string          `json:"businessID"` // FK -> businesses.business_id
	VendorID    string          `json:"vendorID"`   // FK -> contacts.contact_id
	BillNumber  string          `json:"billNumber"`
	BillDate    time.Time       `json:"billDate"`
	DueDate     time.Time       `json:"dueDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Balance     decimal.Decimal `json:"balance"` // Outstanding amount
	Status      BillStatus      `json:"status"`
	Memo        string          `json:"memo"` // Optional
	AuditFields
}

// IsOpen reports whether the bill still carries an outstanding balance.
func (b *Bill) IsOpen() bool {
	return (b.Status == BillOpen || b.Status == BillPartial) && b.Balance.IsPositive()
}
