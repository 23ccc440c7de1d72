package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	"github.com/oluto/oluto-backend/internal/models"
	"github.com/oluto/oluto-backend/internal/utils/mapping"
)

// PgxReportingRepository answers the ledger queries behind the report
// builders. It only reads POSTED journals; reversing pairs cancel out in
// the sums so they need no special casing here.
type PgxReportingRepository struct {
	db *pgxpool.Pool
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetLedgerBalances returns the signed net balance of every active account
// of the business as of the given date. Accounts with no activity come back
// with a zero balance; the builders decide whether a zero line is shown.
func (r *PgxReportingRepository) GetLedgerBalances(ctx context.Context, businessID string, asOf time.Time) ([]domain.LedgerBalance, error) {
	query := `
        SELECT
            a.account_id,
            COALESCE(SUM(
                CASE
                    WHEN a.account_type IN ('ASSET', 'EXPENSE') THEN
                        CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END
                    ELSE
                        CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE -t.amount END
                END
            ), 0) AS net_balance
        FROM accounts a
        LEFT JOIN (
            SELECT t.account_id, t.amount, t.transaction_type
            FROM transactions t
            JOIN journals j ON j.journal_id = t.journal_id
            WHERE j.status = 'POSTED' AND j.journal_date <= $2
        ) t ON t.account_id = a.account_id
        WHERE a.business_id = $1 AND a.is_active = TRUE
        GROUP BY a.account_id
        ORDER BY a.code;
    `
	rows, err := r.db.Query(ctx, query, businessID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger balances: %w", err)
	}
	defer rows.Close()

	balances := []domain.LedgerBalance{}
	for rows.Next() {
		var b domain.LedgerBalance
		if err := rows.Scan(&b.AccountID, &b.NetBalance); err != nil {
			return nil, fmt.Errorf("failed to scan ledger balance row: %w", err)
		}
		balances = append(balances, b)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger balance rows: %w", rows.Err())
	}

	return balances, nil
}

// GetLedgerActivity returns period activity over [from, to] for Revenue and
// Expense accounts only. Unlike GetLedgerBalances this sums activity within
// the range rather than cumulatively from the beginning of time.
func (r *PgxReportingRepository) GetLedgerActivity(ctx context.Context, businessID string, from, to time.Time) ([]domain.LedgerBalance, error) {
	query := `
        SELECT
            a.account_id,
            COALESCE(SUM(
                CASE
                    WHEN a.account_type = 'EXPENSE' THEN
                        CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END
                    ELSE
                        CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE -t.amount END
                END
            ), 0) AS net_activity
        FROM accounts a
        LEFT JOIN (
            SELECT t.account_id, t.amount, t.transaction_type
            FROM transactions t
            JOIN journals j ON j.journal_id = t.journal_id
            WHERE j.status = 'POSTED' AND j.journal_date >= $2 AND j.journal_date <= $3
        ) t ON t.account_id = a.account_id
        WHERE a.business_id = $1
            AND a.is_active = TRUE
            AND a.account_type IN ('REVENUE', 'EXPENSE')
        GROUP BY a.account_id
        ORDER BY a.code;
    `
	rows, err := r.db.Query(ctx, query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger activity: %w", err)
	}
	defer rows.Close()

	activity := []domain.LedgerBalance{}
	for rows.Next() {
		var b domain.LedgerBalance
		if err := rows.Scan(&b.AccountID, &b.NetBalance); err != nil {
			return nil, fmt.Errorf("failed to scan ledger activity row: %w", err)
		}
		activity = append(activity, b)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger activity rows: %w", rows.Err())
	}

	return activity, nil
}

// GetOpenInvoices reconstructs each invoice's outstanding balance as of the
// reference date from the payment applications dated on or before it, and
// returns the invoices whose reconstructed balance is still positive. This
// gives a point-in-time view: an invoice paid off after asOf still shows as
// open here. DRAFT invoices have not been issued to the customer and are not
// receivables yet, so they stay out along with VOID ones.
func (r *PgxReportingRepository) GetOpenInvoices(ctx context.Context, businessID string, asOf time.Time) ([]domain.Invoice, error) {
	query := `
        SELECT
            i.invoice_id, i.business_id, i.customer_id, i.invoice_number,
            i.invoice_date, i.due_date, i.total_amount,
            i.total_amount - COALESCE(applied.total, 0) AS balance,
            i.status, i.memo,
            i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
        FROM invoices i
        LEFT JOIN (
            SELECT pa.invoice_id, SUM(pa.amount) AS total
            FROM payment_applications pa
            JOIN payments p ON p.payment_id = pa.payment_id
            WHERE pa.invoice_id IS NOT NULL AND p.payment_date <= $2
            GROUP BY pa.invoice_id
        ) applied ON applied.invoice_id = i.invoice_id
        WHERE i.business_id = $1
            AND i.status NOT IN ('DRAFT', 'VOID')
            AND i.invoice_date <= $2
            AND i.total_amount - COALESCE(applied.total, 0) > 0
        ORDER BY i.due_date, i.invoice_number;
    `
	rows, err := r.db.Query(ctx, query, businessID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query open invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var m models.Invoice
		err := rows.Scan(
			&m.InvoiceID,
			&m.BusinessID,
			&m.CustomerID,
			&m.InvoiceNumber,
			&m.InvoiceDate,
			&m.DueDate,
			&m.TotalAmount,
			&m.Balance,
			&m.Status,
			&m.Memo,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open invoice row: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating open invoice rows: %w", rows.Err())
	}

	return invoices, nil
}
