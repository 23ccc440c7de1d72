package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/core/reports"
	"github.com/oluto/oluto-backend/internal/dto"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepository
	invoiceRepo portsrepo.InvoiceRepository
	billRepo    portsrepo.BillRepository
	contactRepo portsrepo.ContactRepository
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepository,
	invoiceRepo portsrepo.InvoiceRepository,
	billRepo portsrepo.BillRepository,
	contactRepo portsrepo.ContactRepository,
	authorizer portssvc.BusinessAuthorizerSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		billRepo:    billRepo,
		contactRepo: contactRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment persists a payment and applies it against the invoices or
// bills named in the request. Every application targets an open document of
// the matching direction (RECEIVED -> invoices, SENT -> bills), amounts are
// positive, and the applications must not sum past the payment amount or
// any target's open balance.
func (s *paymentService) RecordPayment(ctx context.Context, businessID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	amount, err := reports.ParseAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: payment amount %q", apperrors.ErrInvalidAmount, req.Amount)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	paymentDate, err := time.Parse(dateLayout, req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date", apperrors.ErrValidation)
	}

	contact, err := s.contactRepo.FindContactByID(ctx, req.ContactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: contact %s not found", apperrors.ErrValidation, req.ContactID)
		}
		return nil, fmt.Errorf("failed to validate contact: %w", err)
	}
	if contact.BusinessID != businessID {
		return nil, fmt.Errorf("%w: contact %s not found", apperrors.ErrValidation, req.ContactID)
	}

	now := time.Now()
	paymentID := uuid.NewString()

	applications, err := s.validateApplications(ctx, businessID, req, paymentID, amount, now)
	if err != nil {
		return nil, err
	}

	payment := domain.Payment{
		PaymentID:   paymentID,
		BusinessID:  businessID,
		ContactID:   req.ContactID,
		PaymentDate: paymentDate,
		Amount:      amount,
		Direction:   req.Direction,
		Reference:   req.Reference,
		Memo:        req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// SavePayment writes the payment, its applications, and the target
	// balance reductions in one transaction, so a concurrent over-application
	// rolls everything back rather than leaving a half-applied payment.
	if err := s.paymentRepo.SavePayment(ctx, payment, applications); err != nil {
		s.LogError(ctx, err, "Failed to save payment in repository",
			slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.LogInfo(ctx, "Payment recorded successfully",
		slog.String("payment_id", paymentID),
		slog.String("business_id", businessID),
		slog.Int("application_count", len(applications)))
	return &payment, nil
}

// validateApplications checks every application of a payment request against
// its target document and builds the domain applications.
func (s *paymentService) validateApplications(ctx context.Context, businessID string, req dto.RecordPaymentRequest, paymentID string, paymentAmount decimal.Decimal, now time.Time) ([]domain.PaymentApplication, error) {
	applications := make([]domain.PaymentApplication, 0, len(req.Applications))
	appliedTotal := decimal.Zero
	seen := make(map[string]struct{}, len(req.Applications))

	for _, appReq := range req.Applications {
		hasInvoice := appReq.InvoiceID != ""
		hasBill := appReq.BillID != ""
		if hasInvoice == hasBill {
			return nil, fmt.Errorf("%w: each application must name exactly one invoice or bill", apperrors.ErrValidation)
		}
		if req.Direction == domain.PaymentReceived && hasBill {
			return nil, fmt.Errorf("%w: a received payment cannot be applied to a bill", apperrors.ErrValidation)
		}
		if req.Direction == domain.PaymentSent && hasInvoice {
			return nil, fmt.Errorf("%w: a sent payment cannot be applied to an invoice", apperrors.ErrValidation)
		}

		appAmount, err := reports.ParseAmount(appReq.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: application amount %q", apperrors.ErrInvalidAmount, appReq.Amount)
		}
		if !appAmount.IsPositive() {
			return nil, fmt.Errorf("%w: application amount must be positive", apperrors.ErrValidation)
		}

		targetID := appReq.InvoiceID + appReq.BillID
		if _, dup := seen[targetID]; dup {
			return nil, fmt.Errorf("%w: duplicate application target %s", apperrors.ErrValidation, targetID)
		}
		seen[targetID] = struct{}{}

		if hasInvoice {
			invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, appReq.InvoiceID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: invoice %s not found", apperrors.ErrValidation, appReq.InvoiceID)
				}
				return nil, fmt.Errorf("failed to validate invoice %s: %w", appReq.InvoiceID, err)
			}
			if invoice.BusinessID != businessID {
				return nil, fmt.Errorf("%w: invoice %s not found", apperrors.ErrValidation, appReq.InvoiceID)
			}
			if !invoice.IsOpen() {
				return nil, fmt.Errorf("%w: invoice %s is not open", apperrors.ErrValidation, appReq.InvoiceID)
			}
			if appAmount.GreaterThan(invoice.Balance) {
				return nil, fmt.Errorf("%w: %s against invoice %s with balance %s",
					apperrors.ErrOverApplied, reports.FormatAmount(appAmount), appReq.InvoiceID, reports.FormatAmount(invoice.Balance))
			}
		} else {
			bill, err := s.billRepo.FindBillByID(ctx, appReq.BillID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: bill %s not found", apperrors.ErrValidation, appReq.BillID)
				}
				return nil, fmt.Errorf("failed to validate bill %s: %w", appReq.BillID, err)
			}
			if bill.BusinessID != businessID {
				return nil, fmt.Errorf("%w: bill %s not found", apperrors.ErrValidation, appReq.BillID)
			}
			if !bill.IsOpen() {
				return nil, fmt.Errorf("%w: bill %s is not open", apperrors.ErrValidation, appReq.BillID)
			}
			if appAmount.GreaterThan(bill.Balance) {
				return nil, fmt.Errorf("%w: %s against bill %s with balance %s",
					apperrors.ErrOverApplied, reports.FormatAmount(appAmount), appReq.BillID, reports.FormatAmount(bill.Balance))
			}
		}

		appliedTotal = appliedTotal.Add(appAmount)
		applications = append(applications, domain.PaymentApplication{
			ApplicationID: uuid.NewString(),
			PaymentID:     paymentID,
			InvoiceID:     appReq.InvoiceID,
			BillID:        appReq.BillID,
			Amount:        appAmount,
			AppliedAt:     now,
		})
	}

	if appliedTotal.GreaterThan(paymentAmount) {
		return nil, fmt.Errorf("%w: applications total %s exceeds payment amount %s",
			apperrors.ErrOverApplied, reports.FormatAmount(appliedTotal), reports.FormatAmount(paymentAmount))
	}

	return applications, nil
}

// GetPaymentByID retrieves a payment together with its applications.
func (s *paymentService) GetPaymentByID(ctx context.Context, businessID string, paymentID string, userID string) (*domain.Payment, []domain.PaymentApplication, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment by ID in repository",
				slog.String("payment_id", paymentID))
		}
		return nil, nil, err
	}

	if payment.BusinessID != businessID {
		return nil, nil, apperrors.ErrNotFound
	}

	applications, err := s.paymentRepo.FindApplicationsByPaymentID(ctx, paymentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch applications for payment",
			slog.String("payment_id", paymentID))
		return nil, nil, fmt.Errorf("failed to retrieve payment applications: %w", err)
	}

	return payment, applications, nil
}

func (s *paymentService) ListPayments(ctx context.Context, businessID string, userID string, params dto.ListPaymentsParams) ([]domain.Payment, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListPayments(ctx, businessID, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments from repository",
			slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	// Direction and contact filters are narrow enough to apply in memory
	// over a page of results.
	filtered := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if params.Direction != nil && p.Direction != *params.Direction {
			continue
		}
		if params.ContactID != nil && *params.ContactID != "" && p.ContactID != *params.ContactID {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered, nil
}
