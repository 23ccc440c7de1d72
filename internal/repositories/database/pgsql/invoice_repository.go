package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	"github.com/oluto/oluto-backend/internal/models"
	"github.com/oluto/oluto-backend/internal/utils/mapping"
)

const invoiceColumns = `invoice_id, business_id, customer_id, invoice_number, invoice_date, due_date, total_amount, balance, status, memo, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepository {
	return &PgxInvoiceRepository{pool: pool}
}

var _ portsrepo.InvoiceRepository = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
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
		return domain.Invoice{}, err
	}
	return mapping.ToDomainInvoice(m), nil
}

// SaveInvoice inserts a new invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	_, err := r.pool.Exec(ctx, query,
		m.InvoiceID,
		m.BusinessID,
		m.CustomerID,
		m.InvoiceNumber,
		m.InvoiceDate,
		m.DueDate,
		m.TotalAmount,
		m.Balance,
		m.Status,
		m.Memo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: invoice number %s already exists in business %s", apperrors.ErrDuplicate, m.InvoiceNumber, m.BusinessID)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	invoice, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	return &invoice, nil
}

// ListInvoices retrieves a paginated list of invoices for a business,
// newest invoice date first, optionally filtered by status.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, businessID string, status *domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE business_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY invoice_date DESC, invoice_id
		LIMIT $3 OFFSET $4;
	`

	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	rows, err := r.pool.Query(ctx, query, businessID, statusFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for business %s: %w", businessID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row for business %s: %w", businessID, err)
		}
		invoices = append(invoices, invoice)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows for business %s: %w", businessID, rows.Err())
	}

	return invoices, nil
}

// ListInvoicesByCustomer retrieves invoices of a single customer contact.
func (r *PgxInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, businessID string, customerID string, limit int, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE business_id = $1 AND customer_id = $2
		ORDER BY invoice_date DESC, invoice_id
		LIMIT $3 OFFSET $4;
	`

	rows, err := r.pool.Query(ctx, query, businessID, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row for customer %s: %w", customerID, err)
		}
		invoices = append(invoices, invoice)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows for customer %s: %w", customerID, rows.Err())
	}

	return invoices, nil
}

// UpdateInvoice updates an existing invoice's details. Only drafts should
// reach this method; the service enforces that.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		UPDATE invoices
		SET invoice_number = $2, invoice_date = $3, due_date = $4, total_amount = $5, balance = $6, status = $7, memo = $8, last_updated_at = $9, last_updated_by = $10
		WHERE invoice_id = $1;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.InvoiceDate,
		m.DueDate,
		m.TotalAmount,
		m.Balance,
		m.Status,
		m.Memo,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update invoice %s: %w", m.InvoiceID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// VoidInvoice marks an invoice as VOID. Invoices with applied payments
// cannot be voided.
func (r *PgxInvoiceRepository) VoidInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET status = 'VOID', balance = 0, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $1 AND status IN ('DRAFT', 'OPEN');
	`

	cmdTag, err := r.pool.Exec(ctx, query, invoiceID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to void invoice %s: %w", invoiceID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindInvoiceByID(ctx, invoiceID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: invoice %s cannot be voided in its current status", apperrors.ErrValidation, invoiceID)
	}

	return nil
}
