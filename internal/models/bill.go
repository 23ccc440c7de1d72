package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill represents a payable row.
type Bill struct {
	BillID      string          `db:"bill_id"`
	BusinessID  string          `db:"business_id"`
	VendorID    string          `db:"vendor_id"`
	BillNumber  string          `db:"bill_number"`
	BillDate    time.Time       `db:"bill_date"`
	DueDate     time.Time       `db:"due_date"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Balance     decimal.Decimal `db:"balance"`
	Status      string          `db:"status"`
	Memo        string          `db:"memo"`
	AuditFields
}
