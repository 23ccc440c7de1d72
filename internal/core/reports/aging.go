package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MissingCustomerName is the placeholder used when an invoice references a
// customer with no matching contact. The balance still aggregates under
// this name: dropping it would silently break the aging-total round trip.
const MissingCustomerName = "(unknown customer)"

// DaysOverdue returns asOf - dueDate in whole calendar days. Both inputs
// are treated as dates; any time-of-day component is discarded before the
// subtraction. Negative means not yet due.
func DaysOverdue(asOf, dueDate time.Time) int {
	asOfDay := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(asOfDay.Sub(dueDay) / (24 * time.Hour))
}

// BuildARAging buckets open invoice balances by days overdue as of a
// reference date, aggregated per customer.
//
// Bucket boundaries on days overdue d:
//
//	d <= 0        current (not yet due, including due exactly on asOf)
//	1 <= d <= 30  days 1-30
//	31 <= d <= 60 days 31-60
//	61 <= d <= 90 days 61-90
//	d > 90        days 91+
//
// Only invoices with a positive balance participate; each qualifying
// balance lands in exactly one bucket column and in the row total, so the
// grand total always equals the sum of all qualifying invoice balances.
// Rows are sorted by customer name, then customer ID for a stable order
// between customers sharing a name.
func BuildARAging(invoices []domain.Invoice, customers map[string]domain.Contact, asOf time.Time) (*domain.ARAgingReport, error) {
	rows := make(map[string]*domain.AgingBucket)

	for _, inv := range invoices {
		if inv.Balance.Sign() < 0 {
			return nil, fmt.Errorf("%w: invoice %s has negative balance %s", apperrors.ErrInvalidAmount, inv.InvoiceID, inv.Balance)
		}
		if !inv.Balance.IsPositive() {
			continue
		}

		row, ok := rows[inv.CustomerID]
		if !ok {
			name := MissingCustomerName
			if c, found := customers[inv.CustomerID]; found {
				name = c.Name
			}
			row = &domain.AgingBucket{
				CustomerID:   inv.CustomerID,
				CustomerName: name,
				Current:      decimal.Zero,
				Days1To30:    decimal.Zero,
				Days31To60:   decimal.Zero,
				Days61To90:   decimal.Zero,
				Days91Plus:   decimal.Zero,
				Total:        decimal.Zero,
			}
			rows[inv.CustomerID] = row
		}

		switch d := DaysOverdue(asOf, inv.DueDate); {
		case d <= 0:
			row.Current = row.Current.Add(inv.Balance)
		case d <= 30:
			row.Days1To30 = row.Days1To30.Add(inv.Balance)
		case d <= 60:
			row.Days31To60 = row.Days31To60.Add(inv.Balance)
		case d <= 90:
			row.Days61To90 = row.Days61To90.Add(inv.Balance)
		default:
			row.Days91Plus = row.Days91Plus.Add(inv.Balance)
		}
		row.Total = row.Total.Add(inv.Balance)
	}

	report := &domain.ARAgingReport{
		AsOfDate: asOf,
		Buckets:  make([]domain.AgingBucket, 0, len(rows)),
	}
	for _, row := range rows {
		report.Buckets = append(report.Buckets, *row)
	}
	sort.SliceStable(report.Buckets, func(i, j int) bool {
		a, b := report.Buckets[i], report.Buckets[j]
		if a.CustomerName != b.CustomerName {
			return a.CustomerName < b.CustomerName
		}
		return a.CustomerID < b.CustomerID
	})

	return report, nil
}

// ComputeAgingTotals reduces an aging report to its grand total row. It is
// a pure reduction over the report's rows, never a re-fetch, so the result
// reconciles with the per-customer rows by construction.
func ComputeAgingTotals(report *domain.ARAgingReport) domain.AgingBucket {
	total := domain.AgingBucket{
		CustomerName: "Total",
		Current:      decimal.Zero,
		Days1To30:    decimal.Zero,
		Days31To60:   decimal.Zero,
		Days61To90:   decimal.Zero,
		Days91Plus:   decimal.Zero,
		Total:        decimal.Zero,
	}
	for _, row := range report.Buckets {
		total.Current = total.Current.Add(row.Current)
		total.Days1To30 = total.Days1To30.Add(row.Days1To30)
		total.Days31To60 = total.Days31To60.Add(row.Days31To60)
		total.Days61To90 = total.Days61To90.Add(row.Days61To90)
		total.Days91Plus = total.Days91Plus.Add(row.Days91Plus)
		total.Total = total.Total.Add(row.Total)
	}
	return total
}
