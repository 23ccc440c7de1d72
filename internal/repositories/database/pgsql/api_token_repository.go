package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	"github.com/oluto/oluto-backend/internal/models"
	"github.com/oluto/oluto-backend/internal/utils/mapping"
)

const apiTokenColumns = `id, user_id, name, token_hash, last_used_at, expires_at, created_at, updated_at`

type PgxAPITokenRepository struct {
	db *pgxpool.Pool
}

func newPgxAPITokenRepository(db *pgxpool.Pool) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{db: db}
}

var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

func scanAPIToken(row pgx.Row) (domain.APIToken, error) {
	var m models.APIToken
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.TokenHash,
		&m.LastUsedAt,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.APIToken{}, err
	}
	return mapping.ToDomainAPIToken(m), nil
}

// Create persists a new API token. The caller supplies the ID and the
// token hash; created_at and updated_at come back from the database.
func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	modelToken := mapping.ToModelAPIToken(*token)
	query := `
        INSERT INTO api_tokens (id, user_id, name, token_hash, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at;
    `
	err := r.db.QueryRow(ctx, query,
		modelToken.ID,
		modelToken.UserID,
		modelToken.Name,
		modelToken.TokenHash,
		modelToken.ExpiresAt,
	).Scan(&token.CreatedAt, &token.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create API token: %w", err)
	}
	return nil
}

func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE id = $1 AND deleted_at IS NULL;`

	token, err := scanAPIToken(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find API token by ID %s: %w", id, err)
	}
	return &token, nil
}

func (r *PgxAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	query := `
        SELECT ` + apiTokenColumns + `
        FROM api_tokens
        WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query API tokens for user %s: %w", userID, err)
	}
	defer rows.Close()

	tokens := []domain.APIToken{}
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan API token row: %w", err)
		}
		tokens = append(tokens, token)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating API token rows: %w", rows.Err())
	}

	return tokens, nil
}

func (r *PgxAPITokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + ` FROM api_tokens WHERE token_hash = $1 AND deleted_at IS NULL;`

	token, err := scanAPIToken(r.db.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find API token by hash: %w", err)
	}
	return &token, nil
}

// Update refreshes last_used_at on a token. Nothing else on a token is
// mutable after creation.
func (r *PgxAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	query := `
        UPDATE api_tokens
        SET last_used_at = COALESCE($2, last_used_at), updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING updated_at;
    `
	err := r.db.QueryRow(ctx, query, token.ID, token.LastUsedAt).Scan(&token.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update API token %s: %w", token.ID, err)
	}
	return nil
}

// Delete soft-deletes a token.
func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE api_tokens SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL;`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete API token %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpired soft-deletes every token that expired before the given time.
func (r *PgxAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `UPDATE api_tokens SET deleted_at = NOW() WHERE expires_at < $1 AND deleted_at IS NULL;`

	cmdTag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired API tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
