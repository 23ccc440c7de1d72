package reports

import (
	"fmt"
	"time"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
)

// BuildProfitLoss nets Revenue and Expense period activity into net income.
//
// The activity input must be period activity over [start, end], not a
// point-in-time balance; the ledger query layer owns that distinction.
// Revenue is credit-normal and reported positive for positive revenue;
// expenses are debit-normal and positive for spend. NetIncome is exactly
// Revenue.Total - Expenses.Total and may be negative. Lines for accounts
// outside Revenue/Expense are ignored; an account type outside the closed
// set rejects the report.
func BuildProfitLoss(accounts []domain.Account, activity []domain.LedgerBalance, start, end time.Time) (*domain.ProfitLossReport, error) {
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}

	report := &domain.ProfitLossReport{
		Revenue:   emptySection(),
		Expenses:  emptySection(),
		StartDate: start,
		EndDate:   end,
	}

	for _, b := range activity {
		acc, ok := byID[b.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s referenced by ledger activity", apperrors.ErrNotFound, b.AccountID)
		}

		line := domain.ReportAccount{
			AccountID:  acc.AccountID,
			Code:       acc.Code,
			Name:       acc.Name,
			NetBalance: b.NetBalance,
		}

		switch acc.AccountType {
		case domain.Revenue:
			appendLine(&report.Revenue, line)
		case domain.Expense:
			appendLine(&report.Expenses, line)
		case domain.Asset, domain.Liability, domain.Equity:
			// Point-in-time accounts do not participate in P&L.
		default:
			return nil, fmt.Errorf("%w: account %s has type %q", apperrors.ErrUnknownAccountType, acc.AccountID, acc.AccountType)
		}
	}

	sortSection(&report.Revenue)
	sortSection(&report.Expenses)

	report.NetIncome = report.Revenue.Total.Sub(report.Expenses.Total)
	return report, nil
}
