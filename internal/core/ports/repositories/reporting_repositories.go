package repositories

import (
	"context"
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// ReportingRepository is the ledger query boundary consumed by the report
// builders. It produces in-memory snapshots; all report computation happens
// in internal/core/reports over the returned data.
type ReportingRepository interface {
	// GetLedgerBalances returns the signed net balance of every active
	// account of a business as of a date (point-in-time). The sign follows
	// each account's normal side.
	GetLedgerBalances(ctx context.Context, businessID string, asOf time.Time) ([]domain.LedgerBalance, error)

	// GetLedgerActivity returns period activity over [from, to] for
	// Revenue and Expense accounts only. This is a distinct query shape
	// from GetLedgerBalances: activity within the range, not a cumulative
	// balance.
	GetLedgerActivity(ctx context.Context, businessID string, from, to time.Time) ([]domain.LedgerBalance, error)

	// GetOpenInvoices returns invoices that carried a positive outstanding
	// balance as of the reference date. The balance is reconstructed from
	// payment applications dated on or before asOf, so the report is a
	// point-in-time view rather than "currently open".
	GetOpenInvoices(ctx context.Context, businessID string, asOf time.Time) ([]domain.Invoice, error)
}
