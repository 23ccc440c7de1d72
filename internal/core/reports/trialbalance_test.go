package reports_test

import (
	"testing"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/core/reports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTrialBalance_BalancedLedger(t *testing.T) {
	accounts := chartOfAccounts()
	// Debit-normal magnitudes equal credit-normal magnitudes, so the
	// report must balance.
	balances := []domain.LedgerBalance{
		balance("acc-cash", "600.00"),
		balance("acc-ar", "400.00"),
		balance("acc-ap", "250.00"),
		balance("acc-capital", "750.00"),
	}

	report, err := reports.BuildTrialBalance(accounts, balances)
	require.NoError(t, err)

	assert.True(t, report.IsBalanced)
	assert.Equal(t, "1000.00", reports.FormatAmount(report.TotalDebits))
	assert.Equal(t, "1000.00", reports.FormatAmount(report.TotalCredits))
	require.Len(t, report.Entries, 4)

	// Sorted by code, ascending lexicographic.
	codes := make([]string, 0, len(report.Entries))
	for _, e := range report.Entries {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{"1000", "1100", "2000", "3000"}, codes)
}

func TestBuildTrialBalance_ColumnPlacementByNormalSide(t *testing.T) {
	accounts := chartOfAccounts()
	balances := []domain.LedgerBalance{
		balance("acc-cash", "100.00"),  // asset, positive -> debit
		balance("acc-ap", "100.00"),    // liability, positive -> credit
		balance("acc-sales", "100.00"), // revenue, positive -> credit
		balance("acc-rent", "100.00"),  // expense, positive -> debit
	}

	report, err := reports.BuildTrialBalance(accounts, balances)
	require.NoError(t, err)

	byCode := map[string]domain.TrialBalanceEntry{}
	for _, e := range report.Entries {
		byCode[e.Code] = e
	}

	assert.Equal(t, "100.00", reports.FormatAmount(byCode["1000"].Debit))
	assert.True(t, byCode["1000"].Credit.IsZero())
	assert.Equal(t, "100.00", reports.FormatAmount(byCode["2000"].Credit))
	assert.True(t, byCode["2000"].Debit.IsZero())
	assert.Equal(t, "100.00", reports.FormatAmount(byCode["4000"].Credit))
	assert.Equal(t, "100.00", reports.FormatAmount(byCode["5000"].Debit))
}

func TestBuildTrialBalance_AbnormalBalanceFlipsColumn(t *testing.T) {
	accounts := chartOfAccounts()
	// An overdrawn cash account (negative debit-normal balance) must show
	// up as a positive credit, not be dropped or reported negative.
	balances := []domain.LedgerBalance{
		balance("acc-cash", "-150.00"),
		balance("acc-ap", "-150.00"), // abnormal liability -> debit column
	}

	report, err := reports.BuildTrialBalance(accounts, balances)
	require.NoError(t, err)

	byCode := map[string]domain.TrialBalanceEntry{}
	for _, e := range report.Entries {
		byCode[e.Code] = e
	}

	cash := byCode["1000"]
	assert.True(t, cash.Debit.IsZero())
	assert.Equal(t, "150.00", reports.FormatAmount(cash.Credit))

	ap := byCode["2000"]
	assert.Equal(t, "150.00", reports.FormatAmount(ap.Debit))
	assert.True(t, ap.Credit.IsZero())

	assert.True(t, report.IsBalanced)
}

// Column totals must account for every input balance: the debit-positive
// expression of the output equals the debit-positive expression of the
// input, so nothing is silently dropped in the mapping.
func TestBuildTrialBalance_NoSilentDrop(t *testing.T) {
	accounts := chartOfAccounts()
	balances := []domain.LedgerBalance{
		balance("acc-cash", "123.45"),
		balance("acc-ar", "-10.00"),
		balance("acc-ap", "55.55"),
		balance("acc-capital", "-20.10"),
		balance("acc-sales", "300.00"),
		balance("acc-wages", "17.25"),
	}

	report, err := reports.BuildTrialBalance(accounts, balances)
	require.NoError(t, err)

	// Input expressed debit-positive: debit-normal balances keep their
	// sign, credit-normal balances are negated.
	inputNet := decimal.Zero
	types := map[string]domain.AccountType{}
	for _, a := range accounts {
		types[a.AccountID] = a.AccountType
	}
	for _, b := range balances {
		side, err := types[b.AccountID].NormalSide()
		require.NoError(t, err)
		if side == domain.DebitNormal {
			inputNet = inputNet.Add(b.NetBalance)
		} else {
			inputNet = inputNet.Sub(b.NetBalance)
		}
	}

	outputNet := report.TotalDebits.Sub(report.TotalCredits)
	assert.True(t, outputNet.Equal(inputNet),
		"output net %s != input net %s", outputNet, inputNet)
}

// Dormant accounts arrive from the repository with a zero balance and must
// not produce a 0.00/0.00 line: every emitted entry has exactly one nonzero
// column.
func TestBuildTrialBalance_SkipsZeroBalances(t *testing.T) {
	accounts := chartOfAccounts()
	balances := []domain.LedgerBalance{
		balance("acc-cash", "75.00"),
		balance("acc-ar", "0.00"),
		balance("acc-capital", "75.00"),
		balance("acc-sales", "0.00"),
	}

	report, err := reports.BuildTrialBalance(accounts, balances)
	require.NoError(t, err)

	require.Len(t, report.Entries, 2)
	for _, e := range report.Entries {
		assert.True(t, e.Debit.IsZero() != e.Credit.IsZero(),
			"entry %s must have exactly one nonzero column", e.Code)
	}
	assert.Equal(t, "75.00", reports.FormatAmount(report.TotalDebits))
	assert.Equal(t, "75.00", reports.FormatAmount(report.TotalCredits))
	assert.True(t, report.IsBalanced)
}

func TestBuildTrialBalance_EmptyInput(t *testing.T) {
	report, err := reports.BuildTrialBalance(nil, nil)
	require.NoError(t, err)

	assert.NotNil(t, report.Entries)
	assert.Empty(t, report.Entries)
	assert.True(t, report.TotalDebits.IsZero())
	assert.True(t, report.TotalCredits.IsZero())
	assert.True(t, report.IsBalanced)
}

func TestBuildTrialBalance_UnknownAccountType(t *testing.T) {
	accounts := []domain.Account{account("acc-x", "9000", "Mystery", domain.AccountType("CONTRA"))}
	balances := []domain.LedgerBalance{balance("acc-x", "10.00")}

	_, err := reports.BuildTrialBalance(accounts, balances)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccountType)
}

func TestBuildTrialBalance_UnknownAccount(t *testing.T) {
	_, err := reports.BuildTrialBalance(chartOfAccounts(), []domain.LedgerBalance{balance("acc-ghost", "10.00")})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBuildTrialBalance_Idempotent(t *testing.T) {
	accounts := chartOfAccounts()
	balances := []domain.LedgerBalance{
		balance("acc-cash", "42.42"),
		balance("acc-capital", "42.42"),
	}

	first, err := reports.BuildTrialBalance(accounts, balances)
	require.NoError(t, err)
	second, err := reports.BuildTrialBalance(accounts, balances)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
