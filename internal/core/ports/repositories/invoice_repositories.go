package repositories

import (
	"context"
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// InvoiceRepository defines data access operations for invoices (AR).
type InvoiceRepository interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// FindInvoiceByID retrieves a specific invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices for a business,
	// newest invoice date first, optionally filtered by status.
	ListInvoices(ctx context.Context, businessID string, status *domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error)

	// ListInvoicesByCustomer retrieves invoices for a single customer contact.
	ListInvoicesByCustomer(ctx context.Context, businessID string, customerID string, limit int, offset int) ([]domain.Invoice, error)

	// UpdateInvoice updates an existing invoice's details.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// VoidInvoice marks an invoice as VOID.
	VoidInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) error
}
