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

// billService implements the BillSvcFacade interface. It mirrors the
// invoice service on the accounts-payable side.
type billService struct {
	BaseService
	billRepo    portsrepo.BillRepository
	contactRepo portsrepo.ContactRepository
}

// NewBillService creates a new bill service.
func NewBillService(billRepo portsrepo.BillRepository, contactRepo portsrepo.ContactRepository, authorizer portssvc.BusinessAuthorizerSvc) portssvc.BillSvcFacade {
	return &billService{
		BaseService: BaseService{BusinessAuthorizer: authorizer},
		billRepo:    billRepo,
		contactRepo: contactRepo,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

// CreateBill persists a new bill. The bill opens with its balance equal to
// its total amount.
func (s *billService) CreateBill(ctx context.Context, businessID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error) {
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

	billDate, err := time.Parse(dateLayout, req.BillDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bill date", apperrors.ErrValidation)
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date", apperrors.ErrValidation)
	}
	if dueDate.Before(billDate) {
		return nil, fmt.Errorf("%w: due date precedes bill date", apperrors.ErrValidation)
	}

	vendor, err := s.contactRepo.FindContactByID(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: vendor %s not found", apperrors.ErrValidation, req.VendorID)
		}
		s.LogError(ctx, err, "Failed to find vendor for bill",
			slog.String("vendor_id", req.VendorID))
		return nil, fmt.Errorf("failed to validate vendor: %w", err)
	}
	if vendor.BusinessID != businessID {
		return nil, fmt.Errorf("%w: vendor %s not found", apperrors.ErrValidation, req.VendorID)
	}
	if !vendor.Kind.IsVendor() {
		return nil, fmt.Errorf("%w: contact %s is not a vendor", apperrors.ErrValidation, req.VendorID)
	}
	if !vendor.IsActive {
		return nil, fmt.Errorf("%w: vendor %s is inactive", apperrors.ErrValidation, req.VendorID)
	}

	now := time.Now()
	bill := domain.Bill{
		BillID:      uuid.NewString(),
		BusinessID:  businessID,
		VendorID:    req.VendorID,
		BillNumber:  req.BillNumber,
		BillDate:    billDate,
		DueDate:     dueDate,
		TotalAmount: totalAmount,
		Balance:     totalAmount,
		Status:      domain.BillOpen,
		Memo:        req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: bill number %s already exists", apperrors.ErrDuplicate, req.BillNumber)
		}
		s.LogError(ctx, err, "Failed to save bill in repository",
			slog.String("bill_id", bill.BillID))
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	s.LogInfo(ctx, "Bill created successfully",
		slog.String("bill_id", bill.BillID),
		slog.String("business_id", businessID))
	return &bill, nil
}

func (s *billService) GetBillByID(ctx context.Context, businessID string, billID string, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bill by ID in repository",
				slog.String("bill_id", billID))
		}
		return nil, err
	}

	if bill.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}

	return bill, nil
}

func (s *billService) ListBills(ctx context.Context, businessID string, userID string, params dto.ListBillsParams) ([]domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	var bills []domain.Bill
	var err error
	if params.VendorID != nil && *params.VendorID != "" {
		bills, err = s.billRepo.ListBillsByVendor(ctx, businessID, *params.VendorID, params.Limit, params.Offset)
	} else {
		bills, err = s.billRepo.ListBills(ctx, businessID, params.Status, params.Limit, params.Offset)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills from repository",
			slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	if bills == nil {
		return []domain.Bill{}, nil
	}
	return bills, nil
}

// UpdateBill updates a bill's editable details. The total cannot be reduced
// below the amount already paid, and VOID/PAID bills are frozen.
func (s *billService) UpdateBill(ctx context.Context, businessID string, billID string, req dto.UpdateBillRequest, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleMember); err != nil {
		return nil, err
	}

	bill, err := s.GetBillByID(ctx, businessID, billID, userID)
	if err != nil {
		return nil, err
	}

	if bill.Status == domain.BillVoid || bill.Status == domain.BillPaid {
		return nil, fmt.Errorf("%w: bill status is %s", apperrors.ErrConflict, bill.Status)
	}

	updated := false
	if req.BillNumber != nil && *req.BillNumber != bill.BillNumber {
		bill.BillNumber = *req.BillNumber
		updated = true
	}
	if req.BillDate != nil {
		billDate, err := time.Parse(dateLayout, *req.BillDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid bill date", apperrors.ErrValidation)
		}
		bill.BillDate = billDate
		updated = true
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date", apperrors.ErrValidation)
		}
		bill.DueDate = dueDate
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
		amountPaid := bill.TotalAmount.Sub(bill.Balance)
		if newTotal.LessThan(amountPaid) {
			return nil, fmt.Errorf("%w: total cannot drop below the %s already paid", apperrors.ErrValidation, reports.FormatAmount(amountPaid))
		}
		bill.Balance = newTotal.Sub(amountPaid)
		bill.TotalAmount = newTotal
		if bill.Balance.IsZero() {
			bill.Status = domain.BillPaid
		} else if amountPaid.IsPositive() {
			bill.Status = domain.BillPartial
		}
		updated = true
	}
	if req.Memo != nil && *req.Memo != bill.Memo {
		bill.Memo = *req.Memo
		updated = true
	}

	if !updated {
		return bill, nil
	}

	if bill.DueDate.Before(bill.BillDate) {
		return nil, fmt.Errorf("%w: due date precedes bill date", apperrors.ErrValidation)
	}

	bill.LastUpdatedAt = time.Now()
	bill.LastUpdatedBy = userID

	if err := s.billRepo.UpdateBill(ctx, *bill); err != nil {
		s.LogError(ctx, err, "Failed to update bill in repository",
			slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	s.LogInfo(ctx, "Bill updated successfully", slog.String("bill_id", billID))
	return bill, nil
}

// VoidBill marks a bill as VOID. Only bills with no payments applied can be
// voided.
func (s *billService) VoidBill(ctx context.Context, businessID string, billID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleMember); err != nil {
		return err
	}

	bill, err := s.GetBillByID(ctx, businessID, billID, userID)
	if err != nil {
		return err
	}

	if !bill.Balance.Equal(bill.TotalAmount) {
		return fmt.Errorf("%w: bill has payments applied", apperrors.ErrConflict)
	}

	if err := s.billRepo.VoidBill(ctx, billID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to void bill in repository",
				slog.String("bill_id", billID))
		}
		return err
	}

	s.LogInfo(ctx, "Bill voided successfully", slog.String("bill_id", billID))
	return nil
}
