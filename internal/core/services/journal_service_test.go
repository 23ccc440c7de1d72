package services_test

import (
	"context"
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

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, journal, transactions, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByBusiness(ctx context.Context, businessID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, businessID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionsByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.Transaction, error) {
	args := m.Called(ctx, journalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, originalJournalID *string, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, journalID, status, reversingJournalID, originalJournalID, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) ListTransactionsByAccountID(ctx context.Context, businessID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, businessID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

// --- Mock AccountService (as used by the journal service) ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, businessID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, businessID string, code string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, businessID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, businessID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, businessID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, businessID string, accountID string, userID string) error {
	args := m.Called(ctx, businessID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) CalculateAccountBalance(ctx context.Context, businessID string, accountID string, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, accountID, userID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock AccountReader (repository) ---

type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountByCode(ctx context.Context, businessID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListActiveAccounts(ctx context.Context, businessID string) ([]domain.Account, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock BusinessService ---

type MockBusinessService struct {
	mock.Mock
}

var _ portssvc.BusinessSvcFacade = (*MockBusinessService)(nil)

func (m *MockBusinessService) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessService) ListUserBusinesses(ctx context.Context, userID string, includeDisabled bool) ([]domain.Business, error) {
	args := m.Called(ctx, userID, includeDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}

func (m *MockBusinessService) ListBusinessUsers(ctx context.Context, businessID string, requestingUserID string) ([]domain.UserBusiness, error) {
	args := m.Called(ctx, businessID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserBusiness), args.Error(1)
}

func (m *MockBusinessService) CreateBusiness(ctx context.Context, name, legalName, description, creatorUserID string) (*domain.Business, error) {
	args := m.Called(ctx, name, legalName, description, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessService) DeactivateBusiness(ctx context.Context, businessID string, requestingUserID string) error {
	args := m.Called(ctx, businessID, requestingUserID)
	return args.Error(0)
}

func (m *MockBusinessService) ActivateBusiness(ctx context.Context, businessID string, requestingUserID string) error {
	args := m.Called(ctx, businessID, requestingUserID)
	return args.Error(0)
}

func (m *MockBusinessService) AddUserToBusiness(ctx context.Context, addingUserID, targetUserID, businessID string, role domain.UserBusinessRole) error {
	args := m.Called(ctx, addingUserID, targetUserID, businessID, role)
	return args.Error(0)
}

func (m *MockBusinessService) RemoveUserFromBusiness(ctx context.Context, requestingUserID, targetUserID, businessID string) error {
	args := m.Called(ctx, requestingUserID, targetUserID, businessID)
	return args.Error(0)
}

func (m *MockBusinessService) UpdateUserBusinessRole(ctx context.Context, requestingUserID, targetUserID, businessID string, newRole domain.UserBusinessRole) error {
	args := m.Called(ctx, requestingUserID, targetUserID, businessID, newRole)
	return args.Error(0)
}

func (m *MockBusinessService) AuthorizeUserAction(ctx context.Context, userID, businessID string, requiredRole domain.UserBusinessRole) error {
	args := m.Called(ctx, userID, businessID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockAccountSvc    *MockAccountService
	mockAccountReader *MockAccountReader
	mockBusinessSvc   *MockBusinessService
	service           portssvc.JournalSvcFacade
	cashAccount       domain.Account
	revenueAccount    domain.Account
	expenseAccount    domain.Account
	businessID        string
	userID            string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockAccountReader = new(MockAccountReader)
	suite.mockBusinessSvc = new(MockBusinessService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockAccountReader, suite.mockBusinessSvc)

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		BusinessID:  suite.businessID,
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		BusinessID:  suite.businessID,
		Code:        "4000",
		Name:        "Sales",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		BusinessID:  suite.businessID,
		Code:        "5000",
		Name:        "Rent",
		AccountType: domain.Expense,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) salesJournalRequest() dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		Date:        "2025-04-01",
		Description: "Cash sale",
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: "100.00", TransactionType: "DEBIT"},
			{AccountID: suite.revenueAccount.AccountID, Amount: "100.00", TransactionType: "CREDIT"},
		},
	}
}

// --- CreateJournal ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := suite.salesJournalRequest()

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.businessID, []string{suite.cashAccount.AccountID, suite.revenueAccount.AccountID}, suite.userID).Return(accountsMap, nil).Once()

	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()

	created, err := suite.service.CreateJournal(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.JournalID)
	suite.Equal(suite.businessID, created.BusinessID)
	suite.Equal(req.Description, created.Description)
	suite.Equal(domain.Posted, created.Status)
	suite.Equal(suite.userID, created.CreatedBy)

	// Balance changes are expressed in the normal side of each account:
	// debit to cash grows the asset, credit to revenue grows revenue.
	saveCall := suite.mockJournalRepo.Calls[0]
	balanceChanges := saveCall.Arguments.Get(3).(map[string]decimal.Decimal)
	suite.True(balanceChanges[suite.cashAccount.AccountID].Equal(decimal.RequireFromString("100.00")))
	suite.True(balanceChanges[suite.revenueAccount.AccountID].Equal(decimal.RequireFromString("100.00")))

	suite.mockBusinessSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AuthorizationFail() {
	ctx := context.Background()
	req := suite.salesJournalRequest()

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	created, err := suite.service.CreateJournal(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(created)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Unbalanced() {
	ctx := context.Background()
	req := suite.salesJournalRequest()
	req.Transactions[1].Amount = "90.00"

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.businessID, mock.Anything, suite.userID).Return(accountsMap, nil).Once()

	created, err := suite.service.CreateJournal(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrUnbalancedJournal)
	suite.Nil(created)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SingleAccount() {
	ctx := context.Background()
	req := suite.salesJournalRequest()
	req.Transactions[1].AccountID = suite.cashAccount.AccountID

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()

	created, err := suite.service.CreateJournal(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, services.ErrJournalMinAccounts)
	suite.Nil(created)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_MissingDescription() {
	ctx := context.Background()
	req := suite.salesJournalRequest()
	req.Description = ""

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()

	created, err := suite.service.CreateJournal(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, services.ErrDescriptionMissing)
	suite.Nil(created)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_InvalidAmount() {
	ctx := context.Background()
	req := suite.salesJournalRequest()
	req.Transactions[0].Amount = "100.005"

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()

	created, err := suite.service.CreateJournal(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Nil(created)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_InactiveAccount() {
	ctx := context.Background()
	req := suite.salesJournalRequest()

	inactive := suite.revenueAccount
	inactive.IsActive = false
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: inactive,
	}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.businessID, mock.Anything, suite.userID).Return(accountsMap, nil).Once()

	created, err := suite.service.CreateJournal(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AccountFromOtherBusiness() {
	ctx := context.Background()
	req := suite.salesJournalRequest()

	foreign := suite.revenueAccount
	foreign.BusinessID = uuid.NewString()
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: foreign,
	}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.businessID, mock.Anything, suite.userID).Return(accountsMap, nil).Once()

	created, err := suite.service.CreateJournal(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, services.ErrAccountNotFound)
	suite.Nil(created)
}

// --- GetJournalByID ---

func (suite *JournalServiceTestSuite) TestGetJournalByID_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{JournalID: journalID, BusinessID: suite.businessID, Status: domain.Posted}
	transactions := []domain.Transaction{
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: suite.cashAccount.AccountID},
	}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("FindTransactionsByJournalID", ctx, journalID).Return(transactions, nil).Once()

	found, err := suite.service.GetJournalByID(ctx, suite.businessID, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Len(found.Transactions, 1)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_WrongBusiness() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{JournalID: journalID, BusinessID: uuid.NewString(), Status: domain.Posted}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()

	found, err := suite.service.GetJournalByID(ctx, suite.businessID, journalID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(found)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindTransactionsByJournalID", mock.Anything, mock.Anything)
}

// --- ListJournals ---

func (suite *JournalServiceTestSuite) TestListJournals_WithTransactions() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journals := []domain.Journal{
		{JournalID: journalID, BusinessID: suite.businessID, Status: domain.Posted},
	}
	txnsByJournal := map[string][]domain.Transaction{
		journalID: {
			{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: suite.cashAccount.AccountID, Amount: decimal.RequireFromString("25.00"), TransactionType: domain.Debit},
		},
	}
	params := dto.ListJournalsParams{Limit: 10, IncludeTransactions: true}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("ListJournalsByBusiness", ctx, suite.businessID, 10, (*string)(nil), false).Return(journals, nil, nil).Once()
	suite.mockJournalRepo.On("FindTransactionsByJournalIDs", ctx, []string{journalID}).Return(txnsByJournal, nil).Once()

	resp, err := suite.service.ListJournals(ctx, suite.businessID, suite.userID, params)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Require().Len(resp.Journals, 1)
	suite.Len(resp.Journals[0].Transactions, 1)
	suite.Equal("25.00", resp.Journals[0].Transactions[0].Amount)
	suite.Nil(resp.NextToken)
}

// --- ReverseJournal ---

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:   journalID,
		BusinessID:  suite.businessID,
		JournalDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Status:      domain.Posted,
	}
	originalTxns := []domain.Transaction{
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: suite.cashAccount.AccountID, Amount: decimal.RequireFromString("100.00"), TransactionType: domain.Debit},
		{TransactionID: uuid.NewString(), JournalID: journalID, AccountID: suite.revenueAccount.AccountID, Amount: decimal.RequireFromString("100.00"), TransactionType: domain.Credit},
	}
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindTransactionsByJournalID", ctx, journalID).Return(originalTxns, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.businessID, mock.Anything, suite.userID).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()
	suite.mockJournalRepo.On("UpdateJournalStatusAndLinks", ctx, journalID, domain.Reversed, mock.AnythingOfType("*string"), (*string)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, suite.businessID, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(journalID, reversal.OriginalJournalID)
	suite.Equal(domain.Posted, reversal.Status)
	suite.Equal("Reversal of Journal: Cash sale", reversal.Description)

	// The persisted reversal lines must flip each debit/credit.
	var savedTxns []domain.Transaction
	for _, call := range suite.mockJournalRepo.Calls {
		if call.Method == "SaveJournal" {
			savedTxns = call.Arguments.Get(2).([]domain.Transaction)
		}
	}
	suite.Require().Len(savedTxns, 2)
	suite.Equal(domain.Credit, savedTxns[0].TransactionType)
	suite.Equal(domain.Debit, savedTxns[1].TransactionType)

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyReversed() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.Journal{JournalID: journalID, BusinessID: suite.businessID, Status: domain.Reversed}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, suite.businessID, journalID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(reversal)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_OfAReversal() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:         journalID,
		BusinessID:        suite.businessID,
		Status:            domain.Posted,
		OriginalJournalID: uuid.NewString(),
	}

	suite.mockBusinessSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.businessID, domain.RoleMember).Return(nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(original, nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, suite.businessID, journalID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(reversal)
}

// --- CalculateAccountBalance ---

func (suite *JournalServiceTestSuite) TestCalculateAccountBalance_ReturnsPersistedBalance() {
	ctx := context.Background()
	account := suite.cashAccount
	account.Balance = decimal.RequireFromString("420.50")

	suite.mockAccountReader.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, suite.businessID, account.AccountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("420.50")))
}

func (suite *JournalServiceTestSuite) TestCalculateAccountBalance_WrongBusiness() {
	ctx := context.Background()
	account := suite.cashAccount
	account.BusinessID = uuid.NewString()

	suite.mockAccountReader.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	_, err := suite.service.CalculateAccountBalance(ctx, suite.businessID, account.AccountID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
