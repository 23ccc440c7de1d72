package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a payment row.
type Payment struct {
	PaymentID   string          `db:"payment_id"`
	BusinessID  string          `db:"business_id"`
	ContactID   string          `db:"contact_id"`
	PaymentDate time.Time       `db:"payment_date"`
	Amount      decimal.Decimal `db:"amount"`
	Direction   string          `db:"direction"`
	Reference   string          `db:"reference"`
	Memo        string          `db:"memo"`
	AuditFields
}

// PaymentApplication represents the allocation of a payment against a
// single invoice or bill. Exactly one of InvoiceID/BillID is non-null.
type PaymentApplication struct {
	ApplicationID string          `db:"application_id"`
	PaymentID     string          `db:"payment_id"`
	InvoiceID     string          `db:"invoice_id"` // Nullable
	BillID        string          `db:"bill_id"`    // Nullable
	Amount        decimal.Decimal `db:"amount"`
	AppliedAt     time.Time       `db:"applied_at"`
}
