package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/dto"
	"github.com/oluto/oluto-backend/internal/handlers"
	"github.com/oluto/oluto-backend/internal/middleware"
)

// --- Mock AccountService ---

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

// --- Mock JournalService ---

type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) CreateJournal(ctx context.Context, businessID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, businessID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, businessID string, journalID string, requestingUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, businessID, journalID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) ListJournals(ctx context.Context, businessID string, userID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, businessID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalService) ReverseJournal(ctx context.Context, businessID string, journalID string, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, businessID, journalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) ListTransactionsByAccount(ctx context.Context, businessID string, accountID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, businessID, accountID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockJournalService) CalculateAccountBalance(ctx context.Context, businessID string, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, accountID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	mockJournalService *MockJournalService
	jwtSecret          string
}

func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "oluto-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)
	suite.mockJournalService = new(MockJournalService)

	v1 := suite.router.Group("/api/v1/businesses/:business_id")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService, suite.mockJournalService)
}

func (suite *AccountHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	businessID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	created := &domain.Account{
		AccountID:   uuid.NewString(),
		BusinessID:  businessID,
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
		Balance:     decimal.Zero,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		businessID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Code == "1000" && r.AccountType == domain.Asset
		}),
		userID,
	).Return(created, nil).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/accounts", businessID)
	w := suite.doRequest(http.MethodPost, url, userID, reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("1000", resp.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCodeConflict() {
	businessID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	suite.mockAccountService.On("CreateAccount", mock.Anything, businessID, mock.Anything, userID).
		Return(nil, apperrors.ErrDuplicate).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/accounts", businessID)
	w := suite.doRequest(http.MethodPost, url, userID, reqBody)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingAuthHeader() {
	businessID := uuid.NewString()
	url := fmt.Sprintf("/api/v1/businesses/%s/accounts", businessID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString("{}"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	businessID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, businessID, accountID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/accounts/%s", businessID, accountID)
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_Success() {
	businessID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("CalculateAccountBalance", mock.Anything, businessID, accountID, userID).
		Return(decimal.RequireFromString("1234.50"), nil).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/accounts/%s/balance", businessID, accountID)
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp["accountID"])
	suite.Equal("1234.50", resp["balance"])
}

func (suite *AccountHandlerTestSuite) TestListAccountTransactions_Success() {
	businessID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()
	limit := 10

	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{
				TransactionID: uuid.NewString(),
				JournalID:     uuid.NewString(),
				AccountID:     accountID,
				Amount:        "100.00",
				Type:          string(domain.Debit),
			},
			{
				TransactionID: uuid.NewString(),
				JournalID:     uuid.NewString(),
				AccountID:     accountID,
				Amount:        "50.00",
				Type:          string(domain.Credit),
			},
		},
	}

	suite.mockJournalService.On("ListTransactionsByAccount",
		mock.Anything,
		businessID,
		accountID,
		userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit
		}),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/accounts/%s/transactions?limit=%d", businessID, accountID, limit)
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 2)
	suite.Equal(expected.Transactions[0].TransactionID, resp.Transactions[0].TransactionID)
	suite.Equal("100.00", resp.Transactions[0].Amount)

	suite.mockJournalService.AssertExpectations(suite.T())
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts")
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_NoContent() {
	businessID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount", mock.Anything, businessID, accountID, userID).
		Return(nil).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/accounts/%s", businessID, accountID)
	w := suite.doRequest(http.MethodDelete, url, userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
