package services

import (
	"context"
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// Each method fetches a ledger snapshot and delegates the computation to
// the pure builders in internal/core/reports.
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date.
	TrialBalance(ctx context.Context, businessID string, asOf time.Time, userID string) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss generates a profit and loss report for a specific period.
	ProfitAndLoss(ctx context.Context, businessID string, from, to time.Time, userID string) (*domain.ProfitLossReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date.
	BalanceSheet(ctx context.Context, businessID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)

	// ARAging generates an accounts-receivable aging report as of a
	// specific date.
	ARAging(ctx context.Context, businessID string, asOf time.Time, userID string) (*domain.ARAgingReport, error)
}
