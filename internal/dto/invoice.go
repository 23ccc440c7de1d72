package dto

import (
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/core/reports"
)

// CreateInvoiceRequest defines the data needed to create a new invoice.
// Dates use YYYY-MM-DD; amounts are decimal strings with at most 2
// fractional digits.
type CreateInvoiceRequest struct {
	CustomerID    string `json:"customerID" binding:"required"`
	InvoiceNumber string `json:"invoiceNumber" binding:"required"`
	InvoiceDate   string `json:"invoiceDate" binding:"required,datetime=2006-01-02"`
	DueDate       string `json:"dueDate" binding:"required,datetime=2006-01-02"`
	TotalAmount   string `json:"totalAmount" binding:"required"`
	Memo          string `json:"memo"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string `json:"invoiceNumber"`
	InvoiceDate   *string `json:"invoiceDate" binding:"omitempty,datetime=2006-01-02"`
	DueDate       *string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	TotalAmount   *string `json:"totalAmount"`
	Memo          *string `json:"memo"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	CustomerID    string               `json:"customerID"`
	InvoiceNumber string               `json:"invoiceNumber"`
	InvoiceDate   string               `json:"invoiceDate"` // YYYY-MM-DD
	DueDate       string               `json:"dueDate"`     // YYYY-MM-DD
	TotalAmount   string               `json:"totalAmount"` // Decimal string, 2 fractional digits
	Balance       string               `json:"balance"`
	Status        domain.InvoiceStatus `json:"status"`
	Memo          string               `json:"memo"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status     *domain.InvoiceStatus `form:"status" binding:"omitempty,oneof=DRAFT OPEN PARTIAL PAID VOID"`
	CustomerID *string               `form:"customerID"`
	Limit      int                   `form:"limit,default=20"`
	Offset     int                   `form:"offset,default=0"`
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		CustomerID:    inv.CustomerID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate.Format("2006-01-02"),
		DueDate:       inv.DueDate.Format("2006-01-02"),
		TotalAmount:   reports.FormatAmount(inv.TotalAmount),
		Balance:       reports.FormatAmount(inv.Balance),
		Status:        inv.Status,
		Memo:          inv.Memo,
		CreatedAt:     inv.CreatedAt,
		LastUpdatedAt: inv.LastUpdatedAt,
	}
}

// ToListInvoicesResponse converts a slice of domain.Invoice to ListInvoicesResponse
func ToListInvoicesResponse(invoices []domain.Invoice) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return ListInvoicesResponse{Invoices: res}
}
