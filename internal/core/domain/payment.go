package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentDirection distinguishes money received from customers from money
// sent to vendors.
type PaymentDirection string

const (
	PaymentReceived PaymentDirection = "RECEIVED" // Customer payment against invoices
	PaymentSent     PaymentDirection = "SENT"     // Vendor payment against bills
)

// Payment represents money received or sent, optionally applied against
// one or more invoices or bills.
type Payment struct {
	PaymentID   string           `json:"paymentID"`  // Primary Key (UUID)
	BusinessID  string           `json:"businessID"` // FK -> businesses.business_id
	ContactID   string           `json:"contactID"`  // FK -> contacts.contact_id
	PaymentDate time.Time        `json:"paymentDate"`
	Amount      decimal.Decimal  `json:"amount"` // Positive value
	Direction   PaymentDirection `json:"direction"`
	Reference   string           `json:"reference"` // Optional bank/check reference
	Memo        string           `json:"memo"`      // Optional
	AuditFields
}

// PaymentApplication records how much of a payment was applied against a
// single invoice or bill. Exactly one of InvoiceID/BillID is set.
type PaymentApplication struct {
	ApplicationID string          `json:"applicationID"` // Primary Key (UUID)
	PaymentID     string          `json:"paymentID"`     // FK -> payments.payment_id
	InvoiceID     string          `json:"invoiceID"`     // Nullable FK -> invoices.invoice_id
	BillID        string          `json:"billID"`        // Nullable FK -> bills.bill_id
	Amount        decimal.Decimal `json:"amount"`        // Positive, <= target open balance at apply time
	AppliedAt     time.Time       `json:"appliedAt"`
}
