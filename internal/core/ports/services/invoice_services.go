package services

import (
	"context"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/dto"
)

// InvoiceSvcFacade defines operations for invoice (AR) management
type InvoiceSvcFacade interface {
	// CreateInvoice persists a new invoice. A new invoice opens with its
	// balance equal to its total amount.
	CreateInvoice(ctx context.Context, businessID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// GetInvoiceByID retrieves a specific invoice.
	GetInvoiceByID(ctx context.Context, businessID string, invoiceID string, userID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices, optionally
	// filtered by status or customer.
	ListInvoices(ctx context.Context, businessID string, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error)

	// UpdateInvoice updates an invoice's editable details. Totals cannot be
	// edited below the amount already paid.
	UpdateInvoice(ctx context.Context, businessID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)

	// VoidInvoice marks an invoice as VOID. Only invoices with no payments
	// applied can be voided.
	VoidInvoice(ctx context.Context, businessID string, invoiceID string, userID string) error
}
