package services

import (
	"context"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/dto"
)

// PaymentSvcFacade defines operations for payment management
type PaymentSvcFacade interface {
	// RecordPayment persists a payment and applies it against the invoices
	// or bills named in the request. Applications must not exceed either
	// the payment amount or any target's open balance.
	RecordPayment(ctx context.Context, businessID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)

	// GetPaymentByID retrieves a payment with its applications.
	GetPaymentByID(ctx context.Context, businessID string, paymentID string, userID string) (*domain.Payment, []domain.PaymentApplication, error)

	// ListPayments retrieves a paginated list of payments.
	ListPayments(ctx context.Context, businessID string, userID string, params dto.ListPaymentsParams) ([]domain.Payment, error)
}
