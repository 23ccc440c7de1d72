package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/core/reports"
	"github.com/oluto/oluto-backend/internal/dto"
)

const dateLayout = "2006-01-02"

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepository
	contactRepo portsrepo.ContactRepository
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepository, contactRepo portsrepo.ContactRepository, authorizer portssvc.BusinessAuthorizerSvc) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice persists a new invoice. The invoice opens with its balance
// equal to its total amount.
func (s *invoiceService) CreateInvoice(ctx context.Context, businessID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	totalAmount, err := reports.ParseAmount(req.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: total amount %q", apperrors.ErrInvalidAmount, req.TotalAmount)
	}
	if !totalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	invoiceDate, err := time.Parse(dateLayout, req.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid invoice date", apperrors.ErrValidation)
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date", apperrors.ErrValidation)
	}
	if dueDate.Before(invoiceDate) {
		return nil, fmt.Errorf("%w: due date precedes invoice date", apperrors.ErrValidation)
	}

	customer, err := s.contactRepo.FindContactByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, req.CustomerID)
		}
		s.LogError(ctx, err, "Failed to find customer for invoice",
			slog.String("customer_id", req.CustomerID))
		return nil, fmt.Errorf("failed to validate customer: %w", err)
	}
	if customer.BusinessID != businessID {
		return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, req.CustomerID)
	}
	if !customer.Kind.IsCustomer() {
		return nil, fmt.Errorf("%w: contact %s is not a customer", apperrors.ErrValidation, req.CustomerID)
	}
	if !customer.IsActive {
		return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, req.CustomerID)
	}

	now := time.Now()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		BusinessID:    businessID,
		CustomerID:    req.CustomerID,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		TotalAmount:   totalAmount,
		Balance:       totalAmount,
		Status:        domain.InvoiceOpen,
		Memo:          req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, req.InvoiceNumber)
		}
		s.LogError(ctx, err, "Failed to save invoice in repository",
			slog.String("invoice_id", invoice.InvoiceID))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created successfully",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("business_id", businessID))
	return &invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, businessID string, invoiceID string, userID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice by ID in repository",
				slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}

	if invoice.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}

	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, businessID string, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	var invoices []domain.Invoice
	var err error
	if params.CustomerID != nil && *params.CustomerID != "" {
		invoices, err = s.invoiceRepo.ListInvoicesByCustomer(ctx, businessID, *params.CustomerID, params.Limit, params.Offset)
	} else {
		invoices, err = s.invoiceRepo.ListInvoices(ctx, businessID, params.Status, params.Limit, params.Offset)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices from repository",
			slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// UpdateInvoice updates an invoice's editable details. The total cannot be
// reduced below the amount already paid, and VOID/PAID invoices are frozen.
func (s *invoiceService) UpdateInvoice(ctx context.Context, businessID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	invoice, err := s.GetInvoiceByID(ctx, businessID, invoiceID, userID)
	if err != nil {
		return nil, err
	}

	if invoice.Status == domain.InvoiceVoid || invoice.Status == domain.InvoicePaid {
		return nil, fmt.Errorf("%w: invoice status is %s", apperrors.ErrConflict, invoice.Status)
	}

	updated := false
	if req.InvoiceNumber != nil && *req.InvoiceNumber != invoice.InvoiceNumber {
		invoice.InvoiceNumber = *req.InvoiceNumber
		updated = true
	}
	if req.InvoiceDate != nil {
		invoiceDate, err := time.Parse(dateLayout, *req.InvoiceDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid invoice date", apperrors.ErrValidation)
		}
		invoice.InvoiceDate = invoiceDate
		updated = true
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date", apperrors.ErrValidation)
		}
		invoice.DueDate = dueDate
		updated = true
	}
	if req.TotalAmount != nil {
		newTotal, err := reports.ParseAmount(*req.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: total amount %q", apperrors.ErrInvalidAmount, *req.TotalAmount)
		}
		if !newTotal.IsPositive() {
			return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
		}
		amountPaid := invoice.TotalAmount.Sub(invoice.Balance)
		if newTotal.LessThan(amountPaid) {
			return nil, fmt.Errorf("%w: total cannot drop below the %s already paid", apperrors.ErrValidation, reports.FormatAmount(amountPaid))
		}
		invoice.Balance = newTotal.Sub(amountPaid)
		invoice.TotalAmount = newTotal
		if invoice.Balance.IsZero() {
			invoice.Status = domain.InvoicePaid
		} else if amountPaid.IsPositive() {
			invoice.Status = domain.InvoicePartial
		}
		updated = true
	}
	if req.Memo != nil && *req.Memo != invoice.Memo {
		invoice.Memo = *req.Memo
		updated = true
	}

	if !updated {
		return invoice, nil
	}

	if invoice.DueDate.Before(invoice.InvoiceDate) {
		return nil, fmt.Errorf("%w: due date precedes invoice date", apperrors.ErrValidation)
	}

	invoice.LastUpdatedAt = time.Now()
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice in repository",
			slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice updated successfully", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// VoidInvoice marks an invoice as VOID. Only invoices with no payments
// applied can be voided.
func (s *invoiceService) VoidInvoice(ctx context.Context, businessID string, invoiceID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleMember); err != nil {
		return err
	}

	invoice, err := s.GetInvoiceByID(ctx, businessID, invoiceID, userID)
	if err != nil {
		return err
	}

	if !invoice.Balance.Equal(invoice.TotalAmount) {
		return fmt.Errorf("%w: invoice has payments applied", apperrors.ErrConflict)
	}

	if err := s.invoiceRepo.VoidInvoice(ctx, invoiceID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to void invoice in repository",
				slog.String("invoice_id", invoiceID))
		}
		return err
	}

	s.LogInfo(ctx, "Invoice voided successfully", slog.String("invoice_id", invoiceID))
	return nil
}
