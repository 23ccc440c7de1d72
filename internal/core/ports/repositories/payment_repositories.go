package repositories

import (
	"context"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// PaymentRepository defines data access operations for payments and their
// applications against invoices and bills.
type PaymentRepository interface {
	// SavePayment persists a payment together with its applications in a
	// single database transaction.
	SavePayment(ctx context.Context, payment domain.Payment, applications []domain.PaymentApplication) error

	// FindPaymentByID retrieves a specific payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of payments for a business,
	// newest payment date first.
	ListPayments(ctx context.Context, businessID string, limit int, offset int) ([]domain.Payment, error)

	// FindApplicationsByPaymentID retrieves the applications of a payment.
	FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error)
}
