package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates where an invoice is in its lifecycle.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "DRAFT"
	InvoiceOpen    InvoiceStatus = "OPEN"
	InvoicePartial InvoiceStatus = "PARTIAL" // Partially paid
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceVoid    InvoiceStatus = "VOID"
)

// Invoice represents a receivable issued to a customer contact.
// Balance is the outstanding amount: 0 <= Balance <= TotalAmount.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`  // Primary Key (UUID)
	BusinessID    string          `json:"businessID"` // FK -> businesses.business_id
	CustomerID    string          `json:"customerID"` // FK -> contacts.contact_id
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	DueDate       time.Time       `json:"dueDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Balance       decimal.Decimal `json:"balance"` // Outstanding amount
	Status        InvoiceStatus   `json:"status"`
	Memo          string          `json:"memo"` // Optional
	AuditFields
}

// IsOpen reports whether the invoice still carries an outstanding balance.
func (i *Invoice) IsOpen() bool {
	return (i.Status == InvoiceOpen || i.Status == InvoicePartial) && i.Balance.IsPositive()
}
