package repositories

import (
	"context"
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// BillRepository defines data access operations for bills (AP).
type BillRepository interface {
	// SaveBill persists a new bill.
	SaveBill(ctx context.Context, bill domain.Bill) error

	// FindBillByID retrieves a specific bill by its unique identifier.
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)

	// ListBills retrieves a paginated list of bills for a business, newest
	// bill date first, optionally filtered by status.
	ListBills(ctx context.Context, businessID string, status *domain.BillStatus, limit int, offset int) ([]domain.Bill, error)

	// ListBillsByVendor retrieves bills for a single vendor contact.
	ListBillsByVendor(ctx context.Context, businessID string, vendorID string, limit int, offset int) ([]domain.Bill, error)

	// UpdateBill updates an existing bill's details.
	UpdateBill(ctx context.Context, bill domain.Bill) error

	// VoidBill marks a bill as VOID.
	VoidBill(ctx context.Context, billID string, userID string, now time.Time) error
}
