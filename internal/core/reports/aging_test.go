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

func TestDaysOverdue(t *testing.T) {
	asOf := date("2024-03-31")

	assert.Equal(t, 30, reports.DaysOverdue(asOf, date("2024-03-01")))
	assert.Equal(t, 29, reports.DaysOverdue(asOf, date("2024-03-02")))
	assert.Equal(t, 91, reports.DaysOverdue(asOf, date("2023-12-31")))
	assert.Equal(t, 0, reports.DaysOverdue(asOf, date("2024-03-31")))
	assert.Equal(t, -1, reports.DaysOverdue(asOf, date("2024-04-01")))
}

func TestBuildARAging_BucketBoundaries(t *testing.T) {
	asOf := date("2024-03-31")
	customers := customerMap(customer("cust-1", "Acme Co"))

	cases := []struct {
		name    string
		dueDate string
		column  func(domain.AgingBucket) decimal.Decimal
	}{
		{"not yet due", "2024-04-01", func(r domain.AgingBucket) decimal.Decimal { return r.Current }},
		{"due today", "2024-03-31", func(r domain.AgingBucket) decimal.Decimal { return r.Current }},
		{"1 day overdue", "2024-03-30", func(r domain.AgingBucket) decimal.Decimal { return r.Days1To30 }},
		{"29 days overdue", "2024-03-02", func(r domain.AgingBucket) decimal.Decimal { return r.Days1To30 }},
		{"30 days overdue", "2024-03-01", func(r domain.AgingBucket) decimal.Decimal { return r.Days1To30 }},
		{"31 days overdue", "2024-02-29", func(r domain.AgingBucket) decimal.Decimal { return r.Days31To60 }},
		{"60 days overdue", "2024-01-31", func(r domain.AgingBucket) decimal.Decimal { return r.Days31To60 }},
		{"61 days overdue", "2024-01-30", func(r domain.AgingBucket) decimal.Decimal { return r.Days61To90 }},
		{"90 days overdue", "2024-01-01", func(r domain.AgingBucket) decimal.Decimal { return r.Days61To90 }},
		{"91 days overdue", "2023-12-31", func(r domain.AgingBucket) decimal.Decimal { return r.Days91Plus }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			invoices := []domain.Invoice{invoice("inv-1", "cust-1", tc.dueDate, "100.00")}

			report, err := reports.BuildARAging(invoices, customers, asOf)
			require.NoError(t, err)
			require.Len(t, report.Buckets, 1)

			row := report.Buckets[0]
			assert.Equal(t, "100.00", reports.FormatAmount(tc.column(row)))
			assert.Equal(t, "100.00", reports.FormatAmount(row.Total))
		})
	}
}

func TestBuildARAging_AggregatesPerCustomer(t *testing.T) {
	asOf := date("2024-03-31")
	customers := customerMap(customer("cust-1", "Acme Co"), customer("cust-2", "Zenith Ltd"))

	invoices := []domain.Invoice{
		invoice("inv-1", "cust-1", "2024-04-15", "100.00"), // current
		invoice("inv-2", "cust-1", "2024-03-10", "50.00"),  // 21 days
		invoice("inv-3", "cust-1", "2024-03-20", "25.00"),  // 11 days, same bucket
		invoice("inv-4", "cust-2", "2023-11-30", "999.99"), // 122 days
	}

	report, err := reports.BuildARAging(invoices, customers, asOf)
	require.NoError(t, err)
	require.Len(t, report.Buckets, 2)

	acme := report.Buckets[0]
	assert.Equal(t, "Acme Co", acme.CustomerName)
	assert.Equal(t, "100.00", reports.FormatAmount(acme.Current))
	assert.Equal(t, "75.00", reports.FormatAmount(acme.Days1To30))
	assert.Equal(t, "175.00", reports.FormatAmount(acme.Total))

	zenith := report.Buckets[1]
	assert.Equal(t, "Zenith Ltd", zenith.CustomerName)
	assert.Equal(t, "999.99", reports.FormatAmount(zenith.Days91Plus))
	assert.Equal(t, "999.99", reports.FormatAmount(zenith.Total))
}

func TestBuildARAging_SkipsZeroBalances(t *testing.T) {
	asOf := date("2024-03-31")
	customers := customerMap(customer("cust-1", "Acme Co"))

	paid := invoice("inv-1", "cust-1", "2024-03-01", "100.00")
	paid.Balance = decimal.Zero
	paid.Status = domain.InvoicePaid

	report, err := reports.BuildARAging([]domain.Invoice{paid}, customers, asOf)
	require.NoError(t, err)

	// Customers with no open invoices are omitted entirely.
	assert.Empty(t, report.Buckets)
}

func TestBuildARAging_MissingCustomerGetsPlaceholder(t *testing.T) {
	asOf := date("2024-03-31")

	invoices := []domain.Invoice{invoice("inv-1", "cust-ghost", "2024-02-15", "42.00")}

	report, err := reports.BuildARAging(invoices, map[string]domain.Contact{}, asOf)
	require.NoError(t, err)
	require.Len(t, report.Buckets, 1)

	row := report.Buckets[0]
	assert.Equal(t, reports.MissingCustomerName, row.CustomerName)
	assert.Equal(t, "42.00", reports.FormatAmount(row.Days31To60))

	// The balance must not be dropped: totals still reconcile.
	totals := reports.ComputeAgingTotals(report)
	assert.Equal(t, "42.00", reports.FormatAmount(totals.Total))
}

func TestBuildARAging_NegativeBalanceRejected(t *testing.T) {
	asOf := date("2024-03-31")
	bad := invoice("inv-1", "cust-1", "2024-03-01", "10.00")
	bad.Balance = dec("-10.00")

	_, err := reports.BuildARAging([]domain.Invoice{bad}, nil, asOf)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

// The round-trip property: the grand total row equals the sum of all
// qualifying invoice balances, and equals the sum of every bucket column
// across all rows.
func TestComputeAgingTotals_RoundTrip(t *testing.T) {
	asOf := date("2024-03-31")
	customers := customerMap(
		customer("cust-1", "Acme Co"),
		customer("cust-2", "Zenith Ltd"),
		customer("cust-3", "Borealis Inc"),
	)

	invoices := []domain.Invoice{
		invoice("inv-1", "cust-1", "2024-04-10", "150.25"),
		invoice("inv-2", "cust-1", "2024-03-15", "75.50"),
		invoice("inv-3", "cust-2", "2024-02-01", "300.00"),
		invoice("inv-4", "cust-2", "2023-10-31", "12.34"),
		invoice("inv-5", "cust-3", "2024-01-05", "0.01"),
		invoice("inv-6", "cust-ghost", "2024-03-31", "99.99"),
	}

	report, err := reports.BuildARAging(invoices, customers, asOf)
	require.NoError(t, err)

	wantTotal := decimal.Zero
	for _, inv := range invoices {
		wantTotal = wantTotal.Add(inv.Balance)
	}

	totals := reports.ComputeAgingTotals(report)
	assert.True(t, totals.Total.Equal(wantTotal),
		"grand total %s != sum of invoice balances %s", totals.Total, wantTotal)

	columnSum := totals.Current.
		Add(totals.Days1To30).
		Add(totals.Days31To60).
		Add(totals.Days61To90).
		Add(totals.Days91Plus)
	assert.True(t, columnSum.Equal(wantTotal),
		"bucket column sum %s != sum of invoice balances %s", columnSum, wantTotal)

	// Per-row totals reconcile with per-row columns too.
	for _, row := range report.Buckets {
		rowSum := row.Current.
			Add(row.Days1To30).
			Add(row.Days31To60).
			Add(row.Days61To90).
			Add(row.Days91Plus)
		assert.True(t, rowSum.Equal(row.Total), "row %s: %s != %s", row.CustomerID, rowSum, row.Total)
	}
}

func TestBuildARAging_RowsSortedByCustomerName(t *testing.T) {
	asOf := date("2024-03-31")
	customers := customerMap(
		customer("cust-z", "Zenith Ltd"),
		customer("cust-a", "Acme Co"),
		customer("cust-m", "Midway LLC"),
	)

	invoices := []domain.Invoice{
		invoice("inv-1", "cust-z", "2024-03-01", "10.00"),
		invoice("inv-2", "cust-a", "2024-03-01", "10.00"),
		invoice("inv-3", "cust-m", "2024-03-01", "10.00"),
	}

	report, err := reports.BuildARAging(invoices, customers, asOf)
	require.NoError(t, err)
	require.Len(t, report.Buckets, 3)

	assert.Equal(t, "Acme Co", report.Buckets[0].CustomerName)
	assert.Equal(t, "Midway LLC", report.Buckets[1].CustomerName)
	assert.Equal(t, "Zenith Ltd", report.Buckets[2].CustomerName)
}

func TestBuildARAging_Idempotent(t *testing.T) {
	asOf := date("2024-03-31")
	customers := customerMap(customer("cust-1", "Acme Co"))
	invoices := []domain.Invoice{
		invoice("inv-1", "cust-1", "2024-03-01", "10.00"),
		invoice("inv-2", "cust-1", "2024-01-01", "20.00"),
	}

	first, err := reports.BuildARAging(invoices, customers, asOf)
	require.NoError(t, err)
	second, err := reports.BuildARAging(invoices, customers, asOf)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, reports.ComputeAgingTotals(first), reports.ComputeAgingTotals(second))
}
