package services_test

import (
	"context"
	"errors"
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
	"github.com/oluto/oluto-backend/internal/core/reports"
	"github.com/oluto/oluto-backend/internal/core/services"
)

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetLedgerBalances(ctx context.Context, businessID string, asOf time.Time) ([]domain.LedgerBalance, error) {
	args := m.Called(ctx, businessID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerBalance), args.Error(1)
}

func (m *MockReportingRepository) GetLedgerActivity(ctx context.Context, businessID string, from, to time.Time) ([]domain.LedgerBalance, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerBalance), args.Error(1)
}

func (m *MockReportingRepository) GetOpenInvoices(ctx context.Context, businessID string, asOf time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, businessID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// --- Mock ContactReader ---

type MockContactReader struct {
	mock.Mock
}

var _ portsrepo.ContactReader = (*MockContactReader)(nil)

func (m *MockContactReader) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactReader) FindContactsByIDs(ctx context.Context, contactIDs []string) (map[string]domain.Contact, error) {
	args := m.Called(ctx, contactIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Contact), args.Error(1)
}

func (m *MockContactReader) ListContacts(ctx context.Context, businessID string, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error) {
	args := m.Called(ctx, businessID, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountReader *MockAccountReader
	mockContactReader *MockContactReader
	mockBusinessSvc   *MockBusinessService
	service           portssvc.ReportingService
	businessID        string
	userID            string
	asOf              time.Time
	accounts          []domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountReader = new(MockAccountReader)
	suite.mockContactReader = new(MockContactReader)
	suite.mockBusinessSvc = new(MockBusinessService)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountReader, suite.mockContactReader,
		services.WithReportingBusinessAuthorizer(suite.mockBusinessSvc))

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.accounts = []domain.Account{
		{AccountID: "acc-cash", BusinessID: suite.businessID, Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
		{AccountID: "acc-ap", BusinessID: suite.businessID, Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability, IsActive: true},
		{AccountID: "acc-capital", BusinessID: suite.businessID, Code: "3000", Name: "Owner Capital", AccountType: domain.Equity, IsActive: true},
		{AccountID: "acc-sales", BusinessID: suite.businessID, Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true},
		{AccountID: "acc-rent", BusinessID: suite.businessID, Code: "5000", Name: "Rent", AccountType: domain.Expense, IsActive: true},
	}
}

func (suite *ReportingServiceTestSuite) expectReadOnlyAuth() {
	suite.mockBusinessSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, domain.RoleReadOnly).Return(nil).Once()
}

// --- TrialBalance ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Success() {
	ctx := context.Background()
	suite.expectReadOnlyAuth()

	balances := []domain.LedgerBalance{
		{AccountID: "acc-cash", NetBalance: decimal.RequireFromString("500.00")},
		{AccountID: "acc-ap", NetBalance: decimal.RequireFromString("200.00")},
		{AccountID: "acc-capital", NetBalance: decimal.RequireFromString("300.00")},
	}
	suite.mockAccountReader.On("ListActiveAccounts", ctx, suite.businessID).Return(suite.accounts, nil).Once()
	suite.mockReportingRepo.On("GetLedgerBalances", ctx, suite.businessID, suite.asOf).Return(balances, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.businessID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.IsBalanced)
	suite.Equal("500.00", reports.FormatAmount(report.TotalDebits))
	suite.Equal("500.00", reports.FormatAmount(report.TotalCredits))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_AuthorizationFail() {
	ctx := context.Background()
	suite.mockBusinessSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.businessID, domain.RoleReadOnly).Return(apperrors.ErrForbidden).Once()

	report, err := suite.service.TrialBalance(ctx, suite.businessID, suite.asOf, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(report)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetLedgerBalances", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_RepositoryError() {
	ctx := context.Background()
	suite.expectReadOnlyAuth()

	suite.mockAccountReader.On("ListActiveAccounts", ctx, suite.businessID).Return(suite.accounts, nil).Once()
	suite.mockReportingRepo.On("GetLedgerBalances", ctx, suite.businessID, suite.asOf).Return(nil, errors.New("connection reset")).Once()

	report, err := suite.service.TrialBalance(ctx, suite.businessID, suite.asOf, suite.userID)

	suite.Require().Error(err)
	suite.Nil(report)
}

// --- BalanceSheet ---

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Success() {
	ctx := context.Background()
	suite.expectReadOnlyAuth()

	balances := []domain.LedgerBalance{
		{AccountID: "acc-cash", NetBalance: decimal.RequireFromString("1000.00")},
		{AccountID: "acc-ap", NetBalance: decimal.RequireFromString("400.00")},
		{AccountID: "acc-capital", NetBalance: decimal.RequireFromString("600.00")},
	}
	suite.mockAccountReader.On("ListActiveAccounts", ctx, suite.businessID).Return(suite.accounts, nil).Once()
	suite.mockReportingRepo.On("GetLedgerBalances", ctx, suite.businessID, suite.asOf).Return(balances, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.businessID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.IsBalanced)
	suite.Equal("1000.00", reports.FormatAmount(report.Assets.Total))
	suite.Equal("400.00", reports.FormatAmount(report.Liabilities.Total))
	suite.Equal("600.00", reports.FormatAmount(report.Equity.Total))
}

// --- ProfitAndLoss ---

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_Success() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.expectReadOnlyAuth()

	activity := []domain.LedgerBalance{
		{AccountID: "acc-sales", NetBalance: decimal.RequireFromString("900.00")},
		{AccountID: "acc-rent", NetBalance: decimal.RequireFromString("300.00")},
	}
	suite.mockAccountReader.On("ListActiveAccounts", ctx, suite.businessID).Return(suite.accounts, nil).Once()
	suite.mockReportingRepo.On("GetLedgerActivity", ctx, suite.businessID, from, to).Return(activity, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.businessID, from, to, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal("900.00", reports.FormatAmount(report.Revenue.Total))
	suite.Equal("300.00", reports.FormatAmount(report.Expenses.Total))
	suite.Equal("600.00", reports.FormatAmount(report.NetIncome))
	suite.Equal(from, report.StartDate)
	suite.Equal(to, report.EndDate)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NetLoss() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.expectReadOnlyAuth()

	activity := []domain.LedgerBalance{
		{AccountID: "acc-sales", NetBalance: decimal.RequireFromString("100.00")},
		{AccountID: "acc-rent", NetBalance: decimal.RequireFromString("250.00")},
	}
	suite.mockAccountReader.On("ListActiveAccounts", ctx, suite.businessID).Return(suite.accounts, nil).Once()
	suite.mockReportingRepo.On("GetLedgerActivity", ctx, suite.businessID, from, to).Return(activity, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.businessID, from, to, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("-150.00", reports.FormatAmount(report.NetIncome))
}

// --- ARAging ---

func (suite *ReportingServiceTestSuite) TestARAging_Success() {
	ctx := context.Background()
	suite.expectReadOnlyAuth()

	customerID := uuid.NewString()
	invoices := []domain.Invoice{
		{
			InvoiceID:   uuid.NewString(),
			BusinessID:  suite.businessID,
			CustomerID:  customerID,
			DueDate:     suite.asOf.AddDate(0, 0, -45),
			TotalAmount: decimal.RequireFromString("500.00"),
			Balance:     decimal.RequireFromString("500.00"),
			Status:      domain.InvoiceOpen,
		},
		{
			InvoiceID:   uuid.NewString(),
			BusinessID:  suite.businessID,
			CustomerID:  customerID,
			DueDate:     suite.asOf.AddDate(0, 0, 10),
			TotalAmount: decimal.RequireFromString("200.00"),
			Balance:     decimal.RequireFromString("200.00"),
			Status:      domain.InvoiceOpen,
		},
	}
	customers := map[string]domain.Contact{
		customerID: {ContactID: customerID, BusinessID: suite.businessID, Name: "Acme Ltd", Kind: domain.ContactCustomer},
	}

	suite.mockReportingRepo.On("GetOpenInvoices", ctx, suite.businessID, suite.asOf).Return(invoices, nil).Once()
	suite.mockContactReader.On("FindContactsByIDs", ctx, []string{customerID}).Return(customers, nil).Once()

	report, err := suite.service.ARAging(ctx, suite.businessID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Require().Len(report.Buckets, 1)

	bucket := report.Buckets[0]
	suite.Equal("Acme Ltd", bucket.CustomerName)
	suite.Equal("200.00", reports.FormatAmount(bucket.Current))
	suite.Equal("500.00", reports.FormatAmount(bucket.Days31To60))
	suite.Equal("700.00", reports.FormatAmount(bucket.Total))
}

// An invoice whose customer no longer resolves still ages, grouped under the
// placeholder row instead of being dropped.
func (suite *ReportingServiceTestSuite) TestARAging_MissingCustomerPlaceholder() {
	ctx := context.Background()
	suite.expectReadOnlyAuth()

	danglingID := uuid.NewString()
	invoices := []domain.Invoice{
		{
			InvoiceID:   uuid.NewString(),
			BusinessID:  suite.businessID,
			CustomerID:  danglingID,
			DueDate:     suite.asOf.AddDate(0, 0, -5),
			TotalAmount: decimal.RequireFromString("120.00"),
			Balance:     decimal.RequireFromString("120.00"),
			Status:      domain.InvoiceOpen,
		},
	}

	suite.mockReportingRepo.On("GetOpenInvoices", ctx, suite.businessID, suite.asOf).Return(invoices, nil).Once()
	suite.mockContactReader.On("FindContactsByIDs", ctx, []string{danglingID}).Return(map[string]domain.Contact{}, nil).Once()

	report, err := suite.service.ARAging(ctx, suite.businessID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Buckets, 1)
	suite.Equal(reports.MissingCustomerName, report.Buckets[0].CustomerName)
	suite.Equal("120.00", reports.FormatAmount(report.Buckets[0].Days1To30))
	suite.Equal("120.00", reports.FormatAmount(report.Buckets[0].Total))
}

func (suite *ReportingServiceTestSuite) TestARAging_NoOpenInvoices() {
	ctx := context.Background()
	suite.expectReadOnlyAuth()

	suite.mockReportingRepo.On("GetOpenInvoices", ctx, suite.businessID, suite.asOf).Return([]domain.Invoice{}, nil).Once()

	report, err := suite.service.ARAging(ctx, suite.businessID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(report.Buckets)
	suite.mockContactReader.AssertNotCalled(suite.T(), "FindContactsByIDs", mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
