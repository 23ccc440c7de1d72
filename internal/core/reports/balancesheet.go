package reports

import (
	"fmt"
	"sort"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildBalanceSheet groups point-in-time balances into Assets, Liabilities
// and Equity sections and checks the accounting equation
// Assets = Liabilities + Equity with exact comparison.
//
// Revenue and Expense accounts are excluded: a balance sheet is a
// point-in-time statement, not a period statement. The builder does not
// auto-close P&L activity into equity; unclosed retained earnings will
// surface as IsBalanced == false so the caller can diagnose it.
func BuildBalanceSheet(accounts []domain.Account, balances []domain.LedgerBalance) (*domain.BalanceSheetReport, error) {
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}

	report := &domain.BalanceSheetReport{
		Assets:      emptySection(),
		Liabilities: emptySection(),
		Equity:      emptySection(),
	}

	for _, b := range balances {
		acc, ok := byID[b.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s referenced by ledger balance", apperrors.ErrNotFound, b.AccountID)
		}

		line := domain.ReportAccount{
			AccountID:  acc.AccountID,
			Code:       acc.Code,
			Name:       acc.Name,
			NetBalance: b.NetBalance,
		}

		switch acc.AccountType {
		case domain.Asset:
			appendLine(&report.Assets, line)
		case domain.Liability:
			appendLine(&report.Liabilities, line)
		case domain.Equity:
			appendLine(&report.Equity, line)
		case domain.Revenue, domain.Expense:
			// Period accounts do not appear on a balance sheet.
		default:
			return nil, fmt.Errorf("%w: account %s has type %q", apperrors.ErrUnknownAccountType, acc.AccountID, acc.AccountType)
		}
	}

	sortSection(&report.Assets)
	sortSection(&report.Liabilities)
	sortSection(&report.Equity)

	report.IsBalanced = report.Assets.Total.Equal(report.Liabilities.Total.Add(report.Equity.Total))
	return report, nil
}

func emptySection() domain.ReportSection {
	return domain.ReportSection{
		Accounts: make([]domain.ReportAccount, 0),
		Total:    decimal.Zero,
	}
}

func appendLine(section *domain.ReportSection, line domain.ReportAccount) {
	section.Accounts = append(section.Accounts, line)
	section.Total = section.Total.Add(line.NetBalance)
}

func sortSection(section *domain.ReportSection) {
	sort.SliceStable(section.Accounts, func(i, j int) bool {
		return section.Accounts[i].Code < section.Accounts[j].Code
	})
}
