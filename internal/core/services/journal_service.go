package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/core/reports"
	"github.com/oluto/oluto-backend/internal/dto"
	"github.com/oluto/oluto-backend/internal/middleware"
	"github.com/oluto/oluto-backend/internal/utils/accounting"
)

const reversalDescriptionPrefix = "Reversal of Journal: "

var (
	ErrJournalMinEntries  = errors.New("journal must have at least two transaction entries")
	ErrJournalMinAccounts = errors.New("journal must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDescriptionMissing = errors.New("journal description is required")
)

// journalService provides core journal and transaction operations.
type journalService struct {
	accountSvc  portssvc.AccountSvcFacade
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalRepositoryFacade
	businessSvc portssvc.BusinessSvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, accountRepo portsrepo.AccountReader, businessSvc portssvc.BusinessSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		accountSvc:  accountSvc,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		businessSvc: businessSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal creates a new journal entry with its transactions after
// validation. Total debits must equal total credits, the lines must touch
// at least two distinct accounts, and every account must be an active
// account of the business.
func (s *journalService) CreateJournal(ctx context.Context, businessID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.businessSvc.AuthorizeUserAction(ctx, creatorUserID, businessID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateJournal", slog.String("user_id", creatorUserID), slog.String("business_id", businessID), slog.String("error", err.Error()))
		return nil, err
	}

	if len(req.Transactions) < 2 {
		return nil, ErrJournalMinEntries
	}

	accountSet := make(map[string]bool)
	for _, txn := range req.Transactions {
		accountSet[txn.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrJournalMinAccounts
	}

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	journalDate, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid journal date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	domainTransactions := make([]domain.Transaction, len(req.Transactions))
	accountIDs := make([]string, 0, len(req.Transactions))
	for i, txnReq := range req.Transactions {
		amount, err := reports.ParseAmount(txnReq.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction amount %q for account %s", apperrors.ErrInvalidAmount, txnReq.Amount, txnReq.AccountID)
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: transaction amount must be positive for account %s", apperrors.ErrValidation, txnReq.AccountID)
		}

		domainTransactions[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       txnReq.AccountID,
			Amount:          amount,
			TransactionType: domain.TransactionType(txnReq.TransactionType),
			Notes:           txnReq.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, txnReq.AccountID)
	}

	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, businessID, uniqueAccountIDs, creatorUserID)
	if err != nil {
		logger.Error("Failed to fetch accounts for journal creation", slog.String("error", err.Error()), slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType)
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if acc.BusinessID != businessID {
			logger.Warn("Account used in journal belongs to a different business", slog.String("journal_business", businessID), slog.String("account_id", id), slog.String("account_business", acc.BusinessID))
			return nil, fmt.Errorf("%w: account %s does not belong to business %s", ErrAccountNotFound, id, businessID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		accountTypes[id] = acc.AccountType
	}

	// Double-entry check: total debits must equal total credits.
	if err := accounting.ValidateJournalBalance(domainTransactions, accountTypes); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnbalancedJournal, err)
	}

	balanceChanges, err := s.calculateBalanceChanges(domainTransactions, accountTypes)
	if err != nil {
		logger.Error("Error calculating balance changes for journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	domainJournal := domain.Journal{
		JournalID:   journalID,
		BusinessID:  businessID,
		JournalDate: journalDate,
		Description: req.Description,
		Status:      domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, domainJournal, domainTransactions, balanceChanges); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal created successfully", slog.String("journal_id", domainJournal.JournalID), slog.String("business_id", businessID))
	domainJournal.Transactions = nil
	return &domainJournal, nil
}

// calculateBalanceChanges nets the signed amounts of a journal's
// transactions per account.
func (s *journalService) calculateBalanceChanges(transactions []domain.Transaction, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	balanceChanges := make(map[string]decimal.Decimal)
	for _, txn := range transactions {
		signedAmount, err := accounting.CalculateSignedAmount(txn, accountTypes[txn.AccountID])
		if err != nil {
			return nil, err
		}
		balanceChanges[txn.AccountID] = balanceChanges[txn.AccountID].Add(signedAmount)
	}
	return balanceChanges, nil
}

// GetJournalByID retrieves a specific journal entry with its transactions.
func (s *journalService) GetJournalByID(ctx context.Context, businessID string, journalID string, requestingUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.businessSvc.AuthorizeUserAction(ctx, requestingUserID, businessID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for GetJournalByID", slog.String("user_id", requestingUserID), slog.String("business_id", businessID), slog.String("journal_id", journalID), slog.String("error", err.Error()))
		return nil, err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, err
	}

	// Obscure existence of journals in other businesses.
	if journal.BusinessID != businessID {
		logger.Warn("Journal found but belongs to different business", slog.String("journal_id", journalID), slog.String("journal_business", journal.BusinessID), slog.String("requested_business", businessID))
		return nil, apperrors.ErrNotFound
	}

	transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch transactions for journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve transactions for journal %s: %w", journalID, apperrors.ErrInternal)
	}
	journal.Transactions = transactions

	logger.Debug("Journal and transactions retrieved successfully", slog.String("journal_id", journalID), slog.String("business_id", businessID), slog.Int("transaction_count", len(transactions)))
	return journal, nil
}

// ListJournals retrieves a paginated list of journals for a business.
func (s *journalService) ListJournals(ctx context.Context, businessID string, userID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.businessSvc.AuthorizeUserAction(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListJournals", "error", err)
		return nil, err
	}

	journals, nextToken, err := s.journalRepo.ListJournalsByBusiness(ctx, businessID, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		logger.Error("Failed to list journals from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	// If transactions are requested, fetch them in a batch for all journals.
	var transactionsMap map[string][]domain.Transaction
	if params.IncludeTransactions && len(journals) > 0 {
		journalIDs := make([]string, len(journals))
		for i, journal := range journals {
			journalIDs[i] = journal.JournalID
		}
		transactionsMap, err = s.journalRepo.FindTransactionsByJournalIDs(ctx, journalIDs)
		if err != nil {
			logger.Warn("Failed to fetch transactions for journals", "error", err)
			// Continue without transactions rather than failing the whole request
		}
	}

	journalResponses := make([]dto.JournalResponse, len(journals))
	for i, journal := range journals {
		if transactionsMap != nil {
			if txs, exists := transactionsMap[journal.JournalID]; exists {
				journal.Transactions = txs
			}
		} else {
			journal.Transactions = nil
		}
		journalResponses[i] = dto.ToJournalResponse(&journal)
	}

	resp := &dto.ListJournalsResponse{
		Journals:  journalResponses,
		NextToken: nextToken,
	}

	logger.Info("Journals listed successfully", "count", len(journals), "includeTxn", params.IncludeTransactions)
	return resp, nil
}

// ListTransactionsByAccount retrieves transactions for a specific account
// within a business.
func (s *journalService) ListTransactionsByAccount(ctx context.Context, businessID string, accountID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.businessSvc.AuthorizeUserAction(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListTransactionsByAccount", "error", err)
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	transactions, nextToken, err := s.journalRepo.ListTransactionsByAccountID(ctx, businessID, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions by account from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}

	logger.Info("Transactions listed successfully for account", "count", len(transactions))
	return resp, nil
}

// CalculateAccountBalance returns the persisted running balance of an account.
func (s *journalService) CalculateAccountBalance(ctx context.Context, businessID string, accountID string) (decimal.Decimal, error) {
	// The account balance is maintained atomically on every posted journal,
	// so the persisted value is authoritative.
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if account.BusinessID != businessID {
		return decimal.Zero, apperrors.ErrNotFound
	}
	return account.Balance, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}

func (s *journalService) validateReverseJournalAction(ctx context.Context, journalID string, userID string, businessID string) (*domain.Journal, []domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.businessSvc.AuthorizeUserAction(ctx, userID, businessID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for ReverseJournal", "error", err)
		return nil, nil, err
	}

	originalJournal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Original journal not found for reversal")
			return nil, nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to fetch original journal for reversal", "error", err)
		return nil, nil, fmt.Errorf("failed to retrieve original journal: %w", err)
	}

	if originalJournal.BusinessID != businessID {
		logger.Warn("Attempted to reverse journal from wrong business")
		return nil, nil, apperrors.ErrNotFound
	}
	if originalJournal.Status != domain.Posted {
		logger.Warn("Attempted to reverse non-posted journal", "status", originalJournal.Status)
		return nil, nil, fmt.Errorf("%w: journal status is %s, expected POSTED", apperrors.ErrConflict, originalJournal.Status)
	}
	if originalJournal.OriginalJournalID != "" {
		logger.Warn("Attempted to reverse a journal that is already a reversal", "journalID", journalID)
		return nil, nil, fmt.Errorf("%w: cannot reverse a journal that is already a reversal", apperrors.ErrConflict)
	}

	originalTransactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch original transactions for reversal", "error", err)
		return nil, nil, fmt.Errorf("failed to retrieve original transactions: %w", err)
	}
	return originalJournal, originalTransactions, nil
}

// ReverseJournal creates a new journal entry that reverses a previously
// posted journal. Each line is mirrored with its debit/credit flipped, the
// reversal links back to the original, and the original rolls to REVERSED.
func (s *journalService) ReverseJournal(ctx context.Context, businessID string, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	originalJournal, originalTransactions, err := s.validateReverseJournalAction(ctx, journalID, userID, businessID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newJournalID := uuid.NewString()

	reversingJournal := domain.Journal{
		JournalID:         newJournalID,
		BusinessID:        businessID,
		JournalDate:       originalJournal.JournalDate,
		Description:       reversalDescriptionPrefix + strings.TrimPrefix(originalJournal.Description, reversalDescriptionPrefix),
		Status:            domain.Posted,
		OriginalJournalID: originalJournal.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	reversingTransactions := make([]domain.Transaction, len(originalTransactions))
	accIDList := make([]string, 0, len(originalTransactions))
	for i, origTx := range originalTransactions {
		accIDList = append(accIDList, origTx.AccountID)
		newTxType := domain.Credit
		if origTx.TransactionType == domain.Credit {
			newTxType = domain.Debit
		}
		reversingTransactions[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       newJournalID,
			AccountID:       origTx.AccountID,
			Amount:          origTx.Amount,
			TransactionType: newTxType,
			Notes:           origTx.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, businessID, uniqueStrings(accIDList), userID)
	if err != nil {
		logger.Error("Failed to fetch accounts for reversal balance calculation", "error", err)
		return nil, fmt.Errorf("failed to get account details for reversal: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType, len(accountsMap))
	for id, acc := range accountsMap {
		accountTypes[id] = acc.AccountType
	}

	balanceChanges, err := s.calculateBalanceChanges(reversingTransactions, accountTypes)
	if err != nil {
		logger.Error("Failed to calculate balance changes for reversal", "error", err)
		return nil, fmt.Errorf("failed to calculate signed amounts for reversal: %w", err)
	}

	if err := s.journalRepo.SaveJournal(ctx, reversingJournal, reversingTransactions, balanceChanges); err != nil {
		logger.Error("Failed to save reversing journal entry", "error", err)
		return nil, fmt.Errorf("failed to save reversing journal: %w", err)
	}

	if err := s.journalRepo.UpdateJournalStatusAndLinks(ctx, originalJournal.JournalID, domain.Reversed, &newJournalID, nil, userID, now); err != nil {
		logger.Error("Failed to update original journal status after successful reversal", "originalJournalID", originalJournal.JournalID, "reversingJournalID", newJournalID, "error", err)
		return nil, fmt.Errorf("failed to update original journal status: %w", err)
	}

	logger.Info("Journal reversed successfully", "reversingJournalID", newJournalID)
	reversingJournal.Transactions = nil
	return &reversingJournal, nil
}
