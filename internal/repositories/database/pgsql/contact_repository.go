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

const contactColumns = `contact_id, business_id, name, kind, email, phone, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxContactRepository struct {
	pool *pgxpool.Pool
}

// newPgxContactRepository creates a new repository for contact data.
func newPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactRepository {
	return &PgxContactRepository{pool: pool}
}

var _ portsrepo.ContactRepository = (*PgxContactRepository)(nil)

func scanContact(row pgx.Row) (domain.Contact, error) {
	var m models.Contact
	err := row.Scan(
		&m.ContactID,
		&m.BusinessID,
		&m.Name,
		&m.Kind,
		&m.Email,
		&m.Phone,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Contact{}, err
	}
	return mapping.ToDomainContact(m), nil
}

// SaveContact inserts a new contact.
func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)

	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.pool.Exec(ctx, query,
		m.ContactID,
		m.BusinessID,
		m.Name,
		m.Kind,
		m.Email,
		m.Phone,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: contact with ID %s already exists", apperrors.ErrDuplicate, m.ContactID)
		}
		return fmt.Errorf("failed to save contact %s: %w", m.ContactID, err)
	}
	return nil
}

// FindContactByID retrieves a contact by its ID.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1;`

	contact, err := scanContact(r.pool.QueryRow(ctx, query, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact by ID %s: %w", contactID, err)
	}
	return &contact, nil
}

// FindContactsByIDs retrieves multiple contacts by their IDs.
func (r *PgxContactRepository) FindContactsByIDs(ctx context.Context, contactIDs []string) (map[string]domain.Contact, error) {
	if len(contactIDs) == 0 {
		return map[string]domain.Contact{}, nil
	}

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, contactIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts by IDs: %w", err)
	}
	defer rows.Close()

	contactsMap := make(map[string]domain.Contact)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row during batch fetch: %w", err)
		}
		contactsMap[contact.ContactID] = contact
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows during batch fetch: %w", err)
	}

	// Missing IDs simply won't appear in the map; the caller decides how
	// to treat them.
	return contactsMap, nil
}

// ListContacts retrieves a paginated list of contacts for a business,
// optionally filtered by kind.
func (r *PgxContactRepository) ListContacts(ctx context.Context, businessID string, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE business_id = $1 AND ($2::text IS NULL OR kind = $2 OR kind = 'BOTH')
		ORDER BY name
		LIMIT $3 OFFSET $4;
	`

	var kindFilter *string
	if kind != nil {
		k := string(*kind)
		kindFilter = &k
	}

	rows, err := r.pool.Query(ctx, query, businessID, kindFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts for business %s: %w", businessID, err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row for business %s: %w", businessID, err)
		}
		contacts = append(contacts, contact)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating contact rows for business %s: %w", businessID, rows.Err())
	}

	return contacts, nil
}

// UpdateContact updates an existing contact's details.
func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)

	query := `
		UPDATE contacts
		SET name = $2, kind = $3, email = $4, phone = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE contact_id = $1;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		m.ContactID,
		m.Name,
		m.Kind,
		m.Email,
		m.Phone,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update contact %s: %w", m.ContactID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeactivateContact marks a contact as inactive.
func (r *PgxContactRepository) DeactivateContact(ctx context.Context, contactID string, userID string, now time.Time) error {
	query := `
		UPDATE contacts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE contact_id = $1 AND is_active = TRUE;
	`

	cmdTag, err := r.pool.Exec(ctx, query, contactID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate contact %s: %w", contactID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindContactByID(ctx, contactID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check contact status after deactivation attempt for %s: %w", contactID, findErr)
		}
		return apperrors.ErrValidation
	}

	return nil
}
