package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	"github.com/oluto/oluto-backend/internal/models"
	"github.com/oluto/oluto-backend/internal/utils/mapping"
)

const paymentColumns = `payment_id, business_id, contact_id, payment_date, amount, direction, reference, memo, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	pool *pgxpool.Pool
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{pool: pool}
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.BusinessID,
		&m.ContactID,
		&m.PaymentDate,
		&m.Amount,
		&m.Direction,
		&m.Reference,
		&m.Memo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Payment{}, err
	}
	return mapping.ToDomainPayment(m), nil
}

// SavePayment persists a payment, its applications, and the matching
// invoice/bill balance reductions in a single database transaction. Each
// balance update is guarded on the target's status and open balance, so a
// concurrent over-application rolls the whole payment back instead of
// leaving applications whose amounts never reached the target.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, applications []domain.PaymentApplication) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for payment %s: %w", payment.PaymentID, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	m := mapping.ToModelPayment(payment)

	paymentQuery := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err = tx.Exec(ctx, paymentQuery,
		m.PaymentID,
		m.BusinessID,
		m.ContactID,
		m.PaymentDate,
		m.Amount,
		m.Direction,
		m.Reference,
		m.Memo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: payment with ID %s already exists", apperrors.ErrDuplicate, m.PaymentID)
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}

	appQuery := `
		INSERT INTO payment_applications (application_id, payment_id, invoice_id, bill_id, amount, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	batch := &pgx.Batch{}
	for _, app := range applications {
		ma := mapping.ToModelPaymentApplication(app)
		var invoiceID, billID sql.NullString
		if ma.InvoiceID != "" {
			invoiceID = sql.NullString{String: ma.InvoiceID, Valid: true}
		}
		if ma.BillID != "" {
			billID = sql.NullString{String: ma.BillID, Valid: true}
		}
		batch.Queue(appQuery, ma.ApplicationID, ma.PaymentID, invoiceID, billID, ma.Amount, ma.AppliedAt)
	}

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("failed to save application %d of payment %s: %w", i, m.PaymentID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close application batch for payment %s: %w", m.PaymentID, err)
		}
	}

	for _, app := range applications {
		if app.InvoiceID != "" {
			err = applyToTargetBalance(ctx, tx, "invoices", "invoice_id", app.InvoiceID, app.Amount, payment.LastUpdatedBy, payment.LastUpdatedAt)
		} else {
			err = applyToTargetBalance(ctx, tx, "bills", "bill_id", app.BillID, app.Amount, payment.LastUpdatedBy, payment.LastUpdatedAt)
		}
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// applyToTargetBalance reduces an invoice or bill open balance inside the
// payment transaction and rolls its status forward. The WHERE clause guards
// status and balance; zero rows affected means the target is missing, not
// open, or the amount exceeds its open balance, and the caller's rollback
// discards the payment with it.
func applyToTargetBalance(ctx context.Context, tx pgx.Tx, table, idColumn, targetID string, amount decimal.Decimal, userID string, now time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET balance = balance - $2,
		    status = CASE WHEN balance - $2 = 0 THEN 'PAID' ELSE 'PARTIAL' END,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE %s = $1
		  AND status IN ('OPEN', 'PARTIAL')
		  AND balance >= $2;
	`, table, idColumn)

	cmdTag, err := tx.Exec(ctx, query, targetID, amount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to apply %s to %s %s: %w", amount.String(), table, targetID, err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var status string
	var balance decimal.Decimal
	findQuery := fmt.Sprintf(`SELECT status, balance FROM %s WHERE %s = $1;`, table, idColumn)
	if findErr := tx.QueryRow(ctx, findQuery, targetID).Scan(&status, &balance); findErr != nil {
		if errors.Is(findErr, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, table, targetID)
		}
		return fmt.Errorf("failed to inspect %s %s: %w", table, targetID, findErr)
	}
	if status != "OPEN" && status != "PARTIAL" {
		return fmt.Errorf("%w: %s %s is not open", apperrors.ErrValidation, table, targetID)
	}
	return fmt.Errorf("%w: %s %s has open balance %s", apperrors.ErrOverApplied, table, targetID, balance.String())
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	payment, err := scanPayment(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	return &payment, nil
}

// ListPayments retrieves a paginated list of payments for a business,
// newest payment date first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, businessID string, limit int, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE business_id = $1
		ORDER BY payment_date DESC, payment_id
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for business %s: %w", businessID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row for business %s: %w", businessID, err)
		}
		payments = append(payments, payment)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows for business %s: %w", businessID, rows.Err())
	}

	return payments, nil
}

// FindApplicationsByPaymentID retrieves the applications of a payment.
func (r *PgxPaymentRepository) FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error) {
	query := `
		SELECT application_id, payment_id, invoice_id, bill_id, amount, applied_at
		FROM payment_applications
		WHERE payment_id = $1
		ORDER BY applied_at, application_id;
	`

	rows, err := r.pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for payment %s: %w", paymentID, err)
	}
	defer rows.Close()

	applications := []domain.PaymentApplication{}
	for rows.Next() {
		var m models.PaymentApplication
		var invoiceID, billID sql.NullString
		err := rows.Scan(
			&m.ApplicationID,
			&m.PaymentID,
			&invoiceID,
			&billID,
			&m.Amount,
			&m.AppliedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application row for payment %s: %w", paymentID, err)
		}
		if invoiceID.Valid {
			m.InvoiceID = invoiceID.String
		}
		if billID.Valid {
			m.BillID = billID.String
		}
		applications = append(applications, mapping.ToDomainPaymentApplication(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating application rows for payment %s: %w", paymentID, rows.Err())
	}

	return applications, nil
}
