package reports

import (
	"fmt"
	"sort"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildTrialBalance maps signed ledger balances onto debit/credit columns
// and checks totals equality.
//
// Column placement follows the account's normal side: a non-negative
// balance on a debit-normal account (ASSET, EXPENSE) lands in the debit
// column; a negative one is sign-flipped into the credit column as an
// abnormal balance. Credit-normal accounts (LIABILITY, EQUITY, REVENUE)
// mirror the rule. An abnormal balance is never dropped, which is what
// preserves total debits == total credits for any internally consistent
// ledger.
//
// Accounts with a zero net balance are omitted, so every entry carries
// exactly one nonzero column. Entries are sorted by account code, ascending
// lexicographic. Totals are compared with exact decimal equality.
func BuildTrialBalance(accounts []domain.Account, balances []domain.LedgerBalance) (*domain.TrialBalanceReport, error) {
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}

	report := &domain.TrialBalanceReport{
		Entries:      make([]domain.TrialBalanceEntry, 0, len(balances)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, b := range balances {
		acc, ok := byID[b.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s referenced by ledger balance", apperrors.ErrNotFound, b.AccountID)
		}

		side, err := acc.AccountType.NormalSide()
		if err != nil {
			return nil, fmt.Errorf("%w: account %s has type %q", apperrors.ErrUnknownAccountType, acc.AccountID, acc.AccountType)
		}

		// Dormant accounts report a zero balance; a trial balance line has
		// no column for them.
		if b.NetBalance.IsZero() {
			continue
		}

		entry := domain.TrialBalanceEntry{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		normalColumnIsDebit := side == domain.DebitNormal
		if b.NetBalance.Sign() < 0 {
			// Abnormal balance: re-express on the opposite column with
			// positive magnitude.
			normalColumnIsDebit = !normalColumnIsDebit
		}
		magnitude := b.NetBalance.Abs()

		if normalColumnIsDebit {
			entry.Debit = magnitude
			report.TotalDebits = report.TotalDebits.Add(magnitude)
		} else {
			entry.Credit = magnitude
			report.TotalCredits = report.TotalCredits.Add(magnitude)
		}

		report.Entries = append(report.Entries, entry)
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Code < report.Entries[j].Code
	})

	report.IsBalanced = report.TotalDebits.Equal(report.TotalCredits)
	return report, nil
}
