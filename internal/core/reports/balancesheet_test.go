package reports_test

import (
	"testing"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/core/reports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBalanceSheet_EquationHolds(t *testing.T) {
	accounts := chartOfAccounts()
	balances := []domain.LedgerBalance{
		balance("acc-cash", "1000.00"),
		balance("acc-ap", "400.00"),
		balance("acc-capital", "600.00"),
	}

	report, err := reports.BuildBalanceSheet(accounts, balances)
	require.NoError(t, err)

	assert.Equal(t, "1000.00", reports.FormatAmount(report.Assets.Total))
	assert.Equal(t, "400.00", reports.FormatAmount(report.Liabilities.Total))
	assert.Equal(t, "600.00", reports.FormatAmount(report.Equity.Total))
	assert.True(t, report.IsBalanced)
}

func TestBuildBalanceSheet_EquationBroken(t *testing.T) {
	accounts := chartOfAccounts()
	// Same assets/liabilities but equity short by 100: the builder must
	// surface the imbalance, not paper over it.
	balances := []domain.LedgerBalance{
		balance("acc-cash", "1000.00"),
		balance("acc-ap", "400.00"),
		balance("acc-capital", "500.00"),
	}

	report, err := reports.BuildBalanceSheet(accounts, balances)
	require.NoError(t, err)

	assert.False(t, report.IsBalanced)
}

func TestBuildBalanceSheet_ExcludesPeriodAccounts(t *testing.T) {
	accounts := chartOfAccounts()
	balances := []domain.LedgerBalance{
		balance("acc-cash", "100.00"),
		balance("acc-capital", "100.00"),
		balance("acc-sales", "999.00"), // revenue: excluded
		balance("acc-rent", "999.00"),  // expense: excluded
	}

	report, err := reports.BuildBalanceSheet(accounts, balances)
	require.NoError(t, err)

	require.Len(t, report.Assets.Accounts, 1)
	require.Len(t, report.Equity.Accounts, 1)
	assert.Empty(t, report.Liabilities.Accounts)
	assert.True(t, report.IsBalanced)
}

func TestBuildBalanceSheet_SectionsSortedByCode(t *testing.T) {
	accounts := chartOfAccounts()
	balances := []domain.LedgerBalance{
		balance("acc-loan", "300.00"),
		balance("acc-ap", "200.00"),
		balance("acc-ar", "250.00"),
		balance("acc-cash", "250.00"),
	}

	report, err := reports.BuildBalanceSheet(accounts, balances)
	require.NoError(t, err)

	require.Len(t, report.Assets.Accounts, 2)
	assert.Equal(t, "1000", report.Assets.Accounts[0].Code)
	assert.Equal(t, "1100", report.Assets.Accounts[1].Code)

	require.Len(t, report.Liabilities.Accounts, 2)
	assert.Equal(t, "2000", report.Liabilities.Accounts[0].Code)
	assert.Equal(t, "2100", report.Liabilities.Accounts[1].Code)
}

func TestBuildBalanceSheet_UnknownAccountType(t *testing.T) {
	accounts := []domain.Account{account("acc-x", "9000", "Mystery", domain.AccountType("SUSPENSE"))}
	balances := []domain.LedgerBalance{balance("acc-x", "1.00")}

	_, err := reports.BuildBalanceSheet(accounts, balances)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccountType)
}

func TestBuildBalanceSheet_EmptyInput(t *testing.T) {
	report, err := reports.BuildBalanceSheet(nil, nil)
	require.NoError(t, err)

	assert.Empty(t, report.Assets.Accounts)
	assert.Empty(t, report.Liabilities.Accounts)
	assert.Empty(t, report.Equity.Accounts)
	assert.True(t, report.IsBalanced) // 0 == 0 + 0
}
