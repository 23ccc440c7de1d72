package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/core/services"
	"github.com/oluto/oluto-backend/internal/dto"
)

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepository = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, applications []domain.PaymentApplication) error {
	args := m.Called(ctx, payment, applications)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, businessID string, limit int, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentApplication), args.Error(1)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepository = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, businessID string, status *domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, businessID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, businessID string, customerID string, limit int, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, businessID, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) VoidInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	args := m.Called(ctx, invoiceID, userID, now)
	return args.Error(0)
}

// --- Mock BillRepository ---

type MockBillRepository struct {
	mock.Mock
}

var _ portsrepo.BillRepository = (*MockBillRepository)(nil)

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListBills(ctx context.Context, businessID string, status *domain.BillStatus, limit int, offset int) ([]domain.Bill, error) {
	args := m.Called(ctx, businessID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListBillsByVendor(ctx context.Context, businessID string, vendorID string, limit int, offset int) ([]domain.Bill, error) {
	args := m.Called(ctx, businessID, vendorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) VoidBill(ctx context.Context, billID string, userID string, now time.Time) error {
	args := m.Called(ctx, billID, userID, now)
	return args.Error(0)
}

// --- Mock ContactRepository ---

type MockContactRepository struct {
	MockContactReader
}

var _ portsrepo.ContactRepository = (*MockContactRepository)(nil)

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) DeactivateContact(ctx context.Context, contactID string, userID string, now time.Time) error {
	args := m.Called(ctx, contactID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockBillRepo    *MockBillRepository
	mockContactRepo *MockContactRepository
	mockBusinessSvc *MockBusinessService
	service         portssvc.PaymentSvcFacade
	businessID      string
	userID          string
	customer        domain.Contact
	openInvoice     domain.Invoice
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockContactRepo = new(MockContactRepository)
	suite.mockBusinessSvc = new(MockBusinessService)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockInvoiceRepo, suite.mockBillRepo, suite.mockContactRepo, suite.mockBusinessSvc)

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.customer = domain.Contact{
		ContactID:  uuid.NewString(),
		BusinessID: suite.businessID,
		Name:       "Acme Ltd",
		Kind:       domain.ContactCustomer,
		IsActive:   true,
	}
	suite.openInvoice = domain.Invoice{
		InvoiceID:   uuid.NewString(),
		BusinessID:  suite.businessID,
		CustomerID:  suite.customer.ContactID,
		TotalAmount: decimal.RequireFromString("250.00"),
		Balance:     decimal.RequireFromString("250.00"),
		Status:      domain.InvoiceOpen,
	}
}

func (suite *PaymentServiceTestSuite) receivedPaymentRequest(amount, applied string) dto.RecordPaymentRequest {
	return dto.RecordPaymentRequest{
		ContactID:   suite.customer.ContactID,
		Direction:   domain.PaymentReceived,
		PaymentDate: "2025-05-15",
		Amount:      amount,
		Applications: []dto.PaymentApplicationRequest{
			{InvoiceID: suite.openInvoice.InvoiceID, Amount: applied},
		},
	}
}

// --- RecordPayment ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	req := suite.receivedPaymentRequest("100.00", "100.00")

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.openInvoice.InvoiceID).Return(&suite.openInvoice, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.PaymentApplication")).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.NotEmpty(payment.PaymentID)
	suite.Equal(suite.businessID, payment.BusinessID)
	suite.Equal(domain.PaymentReceived, payment.Direction)
	suite.True(payment.Amount.Equal(decimal.RequireFromString("100.00")))

	// The saved applications carry the validated targets and amounts; the
	// repository rolls them onto the invoice balance in the same transaction.
	savedApps := suite.mockPaymentRepo.Calls[0].Arguments.Get(2).([]domain.PaymentApplication)
	suite.Require().Len(savedApps, 1)
	suite.Equal(suite.openInvoice.InvoiceID, savedApps[0].InvoiceID)
	suite.True(savedApps[0].Amount.Equal(decimal.RequireFromString("100.00")))

	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_Unapplied() {
	// A payment may be recorded with applications that do not exhaust it;
	// the remainder is simply unapplied.
	ctx := context.Background()
	req := suite.receivedPaymentRequest("150.00", "100.00")

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.openInvoice.InvoiceID).Return(&suite.openInvoice, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.PaymentApplication")).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(payment.Amount.Equal(decimal.RequireFromString("150.00")))
}

// A racing payment can exhaust the invoice between validation and the save;
// the guarded balance update inside SavePayment rejects the transaction as a
// whole, so no payment or application row survives a failed application.
func (suite *PaymentServiceTestSuite) TestRecordPayment_ConcurrentOverApplicationRollsBack() {
	ctx := context.Background()
	req := suite.receivedPaymentRequest("100.00", "100.00")

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.openInvoice.InvoiceID).Return(&suite.openInvoice, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("[]domain.PaymentApplication")).
		Return(fmt.Errorf("%w: invoices %s has open balance 40.00", apperrors.ErrOverApplied, suite.openInvoice.InvoiceID)).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrOverApplied)
	suite.Nil(payment)
	// The failed save is the only write the service attempts.
	suite.mockPaymentRepo.AssertNumberOfCalls(suite.T(), "SavePayment", 1)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_OverAppliedAgainstPayment() {
	ctx := context.Background()
	req := suite.receivedPaymentRequest("100.00", "150.00")

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.openInvoice.InvoiceID).Return(&suite.openInvoice, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrOverApplied)
	suite.Nil(payment)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_OverAppliedAgainstInvoiceBalance() {
	ctx := context.Background()
	partiallyPaid := suite.openInvoice
	partiallyPaid.Balance = decimal.RequireFromString("40.00")
	partiallyPaid.Status = domain.InvoicePartial
	req := suite.receivedPaymentRequest("100.00", "50.00")

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.openInvoice.InvoiceID).Return(&partiallyPaid, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrOverApplied)
	suite.Nil(payment)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ReceivedAgainstBill() {
	ctx := context.Background()
	req := suite.receivedPaymentRequest("100.00", "100.00")
	req.Applications[0].InvoiceID = ""
	req.Applications[0].BillID = uuid.NewString()

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(payment)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_DuplicateTarget() {
	ctx := context.Background()
	req := suite.receivedPaymentRequest("100.00", "50.00")
	req.Applications = append(req.Applications, dto.PaymentApplicationRequest{
		InvoiceID: suite.openInvoice.InvoiceID,
		Amount:    "50.00",
	})

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.openInvoice.InvoiceID).Return(&suite.openInvoice, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(payment)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_VoidInvoice() {
	ctx := context.Background()
	voided := suite.openInvoice
	voided.Status = domain.InvoiceVoid
	req := suite.receivedPaymentRequest("100.00", "100.00")

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&suite.customer, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.openInvoice.InvoiceID).Return(&voided, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(payment)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ContactFromOtherBusiness() {
	ctx := context.Background()
	foreign := suite.customer
	foreign.BusinessID = uuid.NewString()
	req := suite.receivedPaymentRequest("100.00", "100.00")

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockContactRepo.On("FindContactByID", ctx, suite.customer.ContactID).Return(&foreign, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(payment)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_InvalidAmount() {
	ctx := context.Background()
	req := suite.receivedPaymentRequest("100.123", "100.00")

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Nil(payment)
	suite.mockContactRepo.AssertNotCalled(suite.T(), "FindContactByID", mock.Anything, mock.Anything)
}

// --- GetPaymentByID ---

func (suite *PaymentServiceTestSuite) TestGetPaymentByID_Success() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{PaymentID: paymentID, BusinessID: suite.businessID, Direction: domain.PaymentReceived}
	applications := []domain.PaymentApplication{
		{ApplicationID: uuid.NewString(), PaymentID: paymentID, InvoiceID: suite.openInvoice.InvoiceID, Amount: decimal.RequireFromString("75.00")},
	}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("FindApplicationsByPaymentID", ctx, paymentID).Return(applications, nil).Once()

	found, apps, err := suite.service.GetPaymentByID(ctx, suite.businessID, paymentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(paymentID, found.PaymentID)
	suite.Len(apps, 1)
}

func (suite *PaymentServiceTestSuite) TestGetPaymentByID_WrongBusiness() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{PaymentID: paymentID, BusinessID: uuid.NewString()}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()

	found, apps, err := suite.service.GetPaymentByID(ctx, suite.businessID, paymentID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(found)
	suite.Nil(apps)
}

// --- ListPayments ---

func (suite *PaymentServiceTestSuite) TestListPayments_DirectionFilter() {
	ctx := context.Background()
	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), BusinessID: suite.businessID, Direction: domain.PaymentReceived},
		{PaymentID: uuid.NewString(), BusinessID: suite.businessID, Direction: domain.PaymentSent},
	}
	direction := domain.PaymentReceived
	params := dto.ListPaymentsParams{Direction: &direction, Limit: 20}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockPaymentRepo.On("ListPayments", ctx, suite.businessID, 20, 0).Return(payments, nil).Once()

	result, err := suite.service.ListPayments(ctx, suite.businessID, suite.userID, params)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(domain.PaymentReceived, result[0].Direction)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
