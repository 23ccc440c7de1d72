package reports_test

import (
	"testing"

	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/oluto/oluto-backend/internal/core/reports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProfitLoss_PositiveNetIncome(t *testing.T) {
	accounts := chartOfAccounts()
	activity := []domain.LedgerBalance{
		balance("acc-sales", "5000.00"),
		balance("acc-rent", "3200.50"),
	}

	report, err := reports.BuildProfitLoss(accounts, activity, date("2024-01-01"), date("2024-12-31"))
	require.NoError(t, err)

	assert.Equal(t, "5000.00", reports.FormatAmount(report.Revenue.Total))
	assert.Equal(t, "3200.50", reports.FormatAmount(report.Expenses.Total))
	assert.Equal(t, "1799.50", reports.FormatAmount(report.NetIncome))
	assert.Equal(t, date("2024-01-01"), report.StartDate)
	assert.Equal(t, date("2024-12-31"), report.EndDate)
}

func TestBuildProfitLoss_NegativeNetIncome(t *testing.T) {
	accounts := chartOfAccounts()
	activity := []domain.LedgerBalance{
		balance("acc-sales", "1000.00"),
		balance("acc-wages", "1500.00"),
	}

	report, err := reports.BuildProfitLoss(accounts, activity, date("2024-01-01"), date("2024-03-31"))
	require.NoError(t, err)

	assert.Equal(t, "-500.00", reports.FormatAmount(report.NetIncome))
}

func TestBuildProfitLoss_NetIncomeIsExactDifference(t *testing.T) {
	accounts := chartOfAccounts()
	// Many small lines; repeated float summation would drift here,
	// decimals must not.
	activity := make([]domain.LedgerBalance, 0, 200)
	for i := 0; i < 100; i++ {
		activity = append(activity, balance("acc-sales", "0.10"))
		activity = append(activity, balance("acc-rent", "0.03"))
	}

	report, err := reports.BuildProfitLoss(accounts, activity, date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, "10.00", reports.FormatAmount(report.Revenue.Total))
	assert.Equal(t, "3.00", reports.FormatAmount(report.Expenses.Total))
	assert.True(t, report.NetIncome.Equal(report.Revenue.Total.Sub(report.Expenses.Total)))
	assert.Equal(t, "7.00", reports.FormatAmount(report.NetIncome))
}

func TestBuildProfitLoss_IgnoresBalanceSheetAccounts(t *testing.T) {
	accounts := chartOfAccounts()
	activity := []domain.LedgerBalance{
		balance("acc-sales", "100.00"),
		balance("acc-cash", "500.00"), // point-in-time account, not P&L
	}

	report, err := reports.BuildProfitLoss(accounts, activity, date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)

	require.Len(t, report.Revenue.Accounts, 1)
	assert.Empty(t, report.Expenses.Accounts)
	assert.Equal(t, "100.00", reports.FormatAmount(report.NetIncome))
}

func TestBuildProfitLoss_Idempotent(t *testing.T) {
	accounts := chartOfAccounts()
	activity := []domain.LedgerBalance{
		balance("acc-sales", "10.00"),
		balance("acc-wages", "4.00"),
	}

	first, err := reports.BuildProfitLoss(accounts, activity, date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)
	second, err := reports.BuildProfitLoss(accounts, activity, date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
