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

const billColumns = `bill_id, business_id, vendor_id, bill_number, bill_date, due_date, total_amount, balance, status, memo, created_at, created_by, last_updated_at, last_updated_by`

type PgxBillRepository struct {
	pool *pgxpool.Pool
}

// newPgxBillRepository creates a new repository for bill data.
func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepository {
	return &PgxBillRepository{pool: pool}
}

var _ portsrepo.BillRepository = (*PgxBillRepository)(nil)

func scanBill(row pgx.Row) (domain.Bill, error) {
	var m models.Bill
	err := row.Scan(
		&m.BillID,
		&m.BusinessID,
		&m.VendorID,
		&m.BillNumber,
		&m.BillDate,
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
		return domain.Bill{}, err
	}
	return mapping.ToDomainBill(m), nil
}

// SaveBill inserts a new bill.
func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)

	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	_, err := r.pool.Exec(ctx, query,
		m.BillID,
		m.BusinessID,
		m.VendorID,
		m.BillNumber,
		m.BillDate,
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
			return fmt.Errorf("%w: bill number %s already exists in business %s", apperrors.ErrDuplicate, m.BillNumber, m.BusinessID)
		}
		return fmt.Errorf("failed to save bill %s: %w", m.BillID, err)
	}
	return nil
}

// FindBillByID retrieves a bill by its ID.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1;`

	bill, err := scanBill(r.pool.QueryRow(ctx, query, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill by ID %s: %w", billID, err)
	}
	return &bill, nil
}

// ListBills retrieves a paginated list of bills for a business, newest bill
// date first, optionally filtered by status.
func (r *PgxBillRepository) ListBills(ctx context.Context, businessID string, status *domain.BillStatus, limit int, offset int) ([]domain.Bill, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE business_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY bill_date DESC, bill_id
		LIMIT $3 OFFSET $4;
	`

	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	rows, err := r.pool.Query(ctx, query, businessID, statusFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills for business %s: %w", businessID, err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row for business %s: %w", businessID, err)
		}
		bills = append(bills, bill)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bill rows for business %s: %w", businessID, rows.Err())
	}

	return bills, nil
}

// ListBillsByVendor retrieves bills of a single vendor contact.
func (r *PgxBillRepository) ListBillsByVendor(ctx context.Context, businessID string, vendorID string, limit int, offset int) ([]domain.Bill, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE business_id = $1 AND vendor_id = $2
		ORDER BY bill_date DESC, bill_id
		LIMIT $3 OFFSET $4;
	`

	rows, err := r.pool.Query(ctx, query, businessID, vendorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills for vendor %s: %w", vendorID, err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row for vendor %s: %w", vendorID, err)
		}
		bills = append(bills, bill)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bill rows for vendor %s: %w", vendorID, rows.Err())
	}

	return bills, nil
}

// UpdateBill updates an existing bill's details.
func (r *PgxBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)

	query := `
		UPDATE bills
		SET bill_number = $2, bill_date = $3, due_date = $4, total_amount = $5, balance = $6, status = $7, memo = $8, last_updated_at = $9, last_updated_by = $10
		WHERE bill_id = $1;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		m.BillID,
		m.BillNumber,
		m.BillDate,
		m.DueDate,
		m.TotalAmount,
		m.Balance,
		m.Status,
		m.Memo,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update bill %s: %w", m.BillID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// VoidBill marks a bill as VOID. Bills with applied payments cannot be voided.
func (r *PgxBillRepository) VoidBill(ctx context.Context, billID string, userID string, now time.Time) error {
	query := `
		UPDATE bills
		SET status = 'VOID', balance = 0, last_updated_at = $2, last_updated_by = $3
		WHERE bill_id = $1 AND status IN ('DRAFT', 'OPEN');
	`

	cmdTag, err := r.pool.Exec(ctx, query, billID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to void bill %s: %w", billID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindBillByID(ctx, billID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: bill %s cannot be voided in its current status", apperrors.ErrValidation, billID)
	}

	return nil
}
