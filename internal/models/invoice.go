package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents a receivable row.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	BusinessID    string          `db:"business_id"`
	CustomerID    string          `db:"customer_id"`
	InvoiceNumber string          `db:"invoice_number"`
	InvoiceDate   time.Time       `db:"invoice_date"`
	DueDate       time.Time       `db:"due_date"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	Balance       decimal.Decimal `db:"balance"`
	Status        string          `db:"status"`
	Memo          string          `db:"memo"`
	AuditFields
}
