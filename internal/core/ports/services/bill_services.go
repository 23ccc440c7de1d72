package services

import (
	"context"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/dto"
)

// BillSvcFacade defines operations for bill (AP) management
type BillSvcFacade interface {
	// CreateBill persists a new bill. A new bill opens with its balance
	// equal to its total amount.
	CreateBill(ctx context.Context, businessID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error)

	// GetBillByID retrieves a specific bill.
	GetBillByID(ctx context.Context, businessID string, billID string, userID string) (*domain.Bill, error)

	// ListBills retrieves a paginated list of bills, optionally filtered by
	// status or vendor.
	ListBills(ctx context.Context, businessID string, userID string, params dto.ListBillsParams) ([]domain.Bill, error)

	// UpdateBill updates a bill's editable details.
	UpdateBill(ctx context.Context, businessID string, billID string, req dto.UpdateBillRequest, userID string) (*domain.Bill, error)

	// VoidBill marks a bill as VOID. Only bills with no payments applied
	// can be voided.
	VoidBill(ctx context.Context, businessID string, billID string, userID string) error
}
