package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/core/reports"
)

// reportingService assembles financial reports. It fetches ledger snapshots
// through the reporting repository and delegates all computation to the pure
// builders in internal/core/reports.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	contactRepo   portsrepo.ContactReader
}

// ReportingServiceOption configures the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingBusinessAuthorizer sets the business authorizer.
func WithReportingBusinessAuthorizer(authorizer portssvc.BusinessAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.BusinessAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, contactRepo portsrepo.ContactReader, options ...ReportingServiceOption) portssvc.ReportingService {
	s := &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		contactRepo:   contactRepo,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance as of a specific date.
func (s *reportingService) TrialBalance(ctx context.Context, businessID string, asOf time.Time, userID string) (*domain.TrialBalanceReport, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, balances, err := s.ledgerSnapshot(ctx, businessID, asOf)
	if err != nil {
		return nil, err
	}

	report, err := reports.BuildTrialBalance(accounts, balances)
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}

	if !report.IsBalanced {
		// An unbalanced trial balance means ledger corruption; the report is
		// still returned so the caller can see where it diverges.
		s.GetLogger(ctx).Error("Trial balance does not balance",
			slog.String("business_id", businessID),
			slog.String("total_debits", report.TotalDebits.String()),
			slog.String("total_credits", report.TotalCredits.String()))
	}
	return report, nil
}

// BalanceSheet generates a balance sheet as of a specific date.
func (s *reportingService) BalanceSheet(ctx context.Context, businessID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, balances, err := s.ledgerSnapshot(ctx, businessID, asOf)
	if err != nil {
		return nil, err
	}

	report, err := reports.BuildBalanceSheet(accounts, balances)
	if err != nil {
		s.LogError(ctx, err, "Failed to build balance sheet", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to build balance sheet: %w", err)
	}
	return report, nil
}

// ProfitAndLoss generates a profit and loss report for a period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, businessID string, from, to time.Time, userID string) (*domain.ProfitLossReport, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListActiveAccounts(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for P&L", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	activity, err := s.reportingRepo.GetLedgerActivity(ctx, businessID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger activity", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to fetch ledger activity: %w", err)
	}

	report, err := reports.BuildProfitLoss(accounts, activity, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to build profit and loss report", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to build profit and loss report: %w", err)
	}
	return report, nil
}

// ARAging generates an accounts-receivable aging report as of a date.
func (s *reportingService) ARAging(ctx context.Context, businessID string, asOf time.Time, userID string) (*domain.ARAgingReport, error) {
	if err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	invoices, err := s.reportingRepo.GetOpenInvoices(ctx, businessID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch open invoices for AR aging", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to fetch open invoices: %w", err)
	}

	customerIDs := make([]string, 0, len(invoices))
	seen := make(map[string]struct{}, len(invoices))
	for _, inv := range invoices {
		if _, ok := seen[inv.CustomerID]; !ok {
			seen[inv.CustomerID] = struct{}{}
			customerIDs = append(customerIDs, inv.CustomerID)
		}
	}

	customers := map[string]domain.Contact{}
	if len(customerIDs) > 0 {
		customers, err = s.contactRepo.FindContactsByIDs(ctx, customerIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch customers for AR aging", slog.String("business_id", businessID))
			return nil, fmt.Errorf("failed to fetch customers: %w", err)
		}
	}

	// A dangling customer reference is a data problem worth surfacing, but
	// the report still ages the invoice under a placeholder row.
	for _, id := range customerIDs {
		if _, ok := customers[id]; !ok {
			s.GetLogger(ctx).Warn("Customer missing for AR aging, using placeholder",
				slog.String("business_id", businessID),
				slog.String("customer_id", id),
				slog.String("error", apperrors.ErrMissingCustomer.Error()))
		}
	}

	report, err := reports.BuildARAging(invoices, customers, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to build AR aging report", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to build AR aging report: %w", err)
	}
	return report, nil
}

// ledgerSnapshot fetches the active accounts and signed balances of a
// business as of a date.
func (s *reportingService) ledgerSnapshot(ctx context.Context, businessID string, asOf time.Time) ([]domain.Account, []domain.LedgerBalance, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for report", slog.String("business_id", businessID))
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	balances, err := s.reportingRepo.GetLedgerBalances(ctx, businessID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger balances", slog.String("business_id", businessID))
		return nil, nil, fmt.Errorf("failed to fetch ledger balances: %w", err)
	}
	return accounts, balances, nil
}
