package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	"github.com/oluto/oluto-backend/internal/models"
	"github.com/oluto/oluto-backend/internal/utils/mapping"
)

const businessColumns = `business_id, name, legal_name, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxBusinessRepository struct {
	BaseRepository
}

// newPgxBusinessRepository creates a new repository for business data.
func newPgxBusinessRepository(pool *pgxpool.Pool) portsrepo.BusinessRepositoryFacade {
	return &PgxBusinessRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BusinessRepositoryFacade = (*PgxBusinessRepository)(nil)

func scanBusiness(row pgx.Row) (domain.Business, error) {
	var m models.Business
	err := row.Scan(
		&m.BusinessID,
		&m.Name,
		&m.LegalName,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Business{}, err
	}
	return mapping.ToDomainBusiness(m), nil
}

// SaveBusiness persists a new business.
func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	m := mapping.ToModelBusiness(business)

	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BusinessID,
		m.Name,
		m.LegalName,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: business ID %s already exists", apperrors.ErrDuplicate, m.BusinessID)
		}
		return apperrors.NewAppError(500, "failed to save business "+m.BusinessID, err)
	}
	return nil
}

// FindBusinessByID retrieves a business by its ID.
func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = $1;`

	business, err := scanBusiness(r.Pool.QueryRow(ctx, query, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find business by ID "+businessID, err)
	}
	return &business, nil
}

// UpdateBusiness updates an existing business's details.
func (r *PgxBusinessRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	m := mapping.ToModelBusiness(business)

	query := `
		UPDATE businesses
		SET name = $2, legal_name = $3, description = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE business_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.BusinessID,
		m.Name,
		m.LegalName,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to update business "+m.BusinessID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ListBusinessesByUserID retrieves all active businesses a user belongs to.
func (r *PgxBusinessRepository) ListBusinessesByUserID(ctx context.Context, userID string) ([]domain.Business, error) {
	query := `
		SELECT b.business_id, b.name, b.legal_name, b.description, b.is_active,
		       b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
		FROM businesses b
		JOIN user_businesses ub ON b.business_id = ub.business_id
		WHERE ub.user_id = $1 AND ub.role != $2 AND b.is_active = TRUE
		ORDER BY b.name;
	`

	rows, err := r.Pool.Query(ctx, query, userID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query businesses for user "+userID, err)
	}
	defer rows.Close()

	businesses := []domain.Business{}
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan business row for user "+userID, err)
		}
		businesses = append(businesses, business)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating business rows for user "+userID, err)
	}

	return businesses, nil
}

// AddUserToBusiness adds a user to a business, or updates their role if the
// membership already exists.
func (r *PgxBusinessRepository) AddUserToBusiness(ctx context.Context, membership domain.UserBusiness) error {
	query := `
		INSERT INTO user_businesses (user_id, business_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, business_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.BusinessID,
		membership.Role,
		membership.JoinedAt,
	)

	if err != nil {
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in business "+membership.BusinessID, err)
	}
	return nil
}

// FindUserBusinessRole retrieves the role of a user in a business.
func (r *PgxBusinessRepository) FindUserBusinessRole(ctx context.Context, userID, businessID string) (*domain.UserBusiness, error) {
	query := `
		SELECT user_id, business_id, role, joined_at
		FROM user_businesses
		WHERE user_id = $1 AND business_id = $2;
	`
	var ub domain.UserBusiness
	err := r.Pool.QueryRow(ctx, query, userID, businessID).Scan(
		&ub.UserID,
		&ub.BusinessID,
		&ub.Role,
		&ub.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No membership row means no access, not a server error.
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" role in business "+businessID, err)
	}
	return &ub, nil
}

// ListUsersInBusiness retrieves the memberships of a business, excluding
// removed users.
func (r *PgxBusinessRepository) ListUsersInBusiness(ctx context.Context, businessID string) ([]domain.UserBusiness, error) {
	query := `
		SELECT ub.user_id, u.name AS user_name, ub.business_id, ub.role, ub.joined_at
		FROM user_businesses ub
		JOIN users u ON ub.user_id = u.user_id
		WHERE ub.business_id = $1 AND ub.role != $2
		ORDER BY ub.joined_at DESC;
	`

	rows, err := r.Pool.Query(ctx, query, businessID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for business "+businessID, err)
	}
	defer rows.Close()

	var memberships []domain.UserBusiness
	for rows.Next() {
		var ub domain.UserBusiness
		err := rows.Scan(
			&ub.UserID,
			&ub.UserName,
			&ub.BusinessID,
			&ub.Role,
			&ub.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user business row", err)
		}
		memberships = append(memberships, ub)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user business rows", err)
	}

	return memberships, nil
}
