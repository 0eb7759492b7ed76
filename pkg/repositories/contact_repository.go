// Package repositories provides PostgreSQL data access for growth-engine
// entities. Upserts are single-statement INSERT ... ON CONFLICT DO UPDATE;
// partial updates use COALESCE so absent fields never clobber stored values.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/upliftgrowth/growth-engine/pkg/apperrors"
	"github.com/upliftgrowth/growth-engine/pkg/database"
	"github.com/upliftgrowth/growth-engine/pkg/models"
)

// listLimit caps every list query. There is no cursor pagination; the admin
// portal never pages past the first hundred rows.
const listLimit = 100

// ContactUpsert carries the fields of a contact write request. Nil pointers
// mean "not provided": on update the stored value is kept, on insert the
// column default applies.
type ContactUpsert struct {
	ID      *uuid.UUID
	Email   *string
	Name    *string
	Company *string
}

// ContactRepository defines the interface for contact data access.
type ContactRepository interface {
	// GetByID fetches a single contact with its opportunities.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	// GetByEmail fetches a single contact by its natural key.
	GetByEmail(ctx context.Context, email string) (*models.Contact, error)
	// List returns up to 100 contacts ordered by creation time descending,
	// optionally filtered by a case-insensitive substring over name, email
	// and company.
	List(ctx context.Context, search string) ([]*models.Contact, error)
	// Create inserts a new contact.
	Create(ctx context.Context, up *ContactUpsert) (*models.Contact, error)
	// UpsertByID inserts or partially updates a contact keyed by id.
	// The second return value reports whether a new row was created.
	UpsertByID(ctx context.Context, up *ContactUpsert) (*models.Contact, bool, error)
	// UpsertByEmail inserts or partially updates a contact keyed by email.
	UpsertByEmail(ctx context.Context, up *ContactUpsert) (*models.Contact, bool, error)
}

// contactRepository implements ContactRepository using PostgreSQL.
type contactRepository struct {
	db *database.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *database.DB) ContactRepository {
	return &contactRepository{db: db}
}

const contactColumns = `id, email, name, company, created_at, updated_at`

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.Email, &c.Name, &c.Company, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	contact, err := scanContact(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	contact.Opportunities, err = r.opportunitiesFor(ctx, "contact_id", contact.ID)
	if err != nil {
		return nil, err
	}

	return contact, nil
}

func (r *contactRepository) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE email = $1`

	contact, err := scanContact(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact by email: %w", err)
	}

	contact.Opportunities, err = r.opportunitiesFor(ctx, "contact_id", contact.ID)
	if err != nil {
		return nil, err
	}

	return contact, nil
}

func (r *contactRepository) List(ctx context.Context, search string) ([]*models.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE $1 = ''
		   OR name ILIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		   OR company ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, search, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*models.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

func (r *contactRepository) Create(ctx context.Context, up *ContactUpsert) (*models.Contact, error) {
	query := `
		INSERT INTO contacts (id, email, name, company)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''))
		RETURNING ` + contactColumns

	contact, err := scanContact(r.db.QueryRow(ctx, query, uuid.New(), up.Email, up.Name, up.Company))
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

func (r *contactRepository) UpsertByID(ctx context.Context, up *ContactUpsert) (*models.Contact, bool, error) {
	query := `
		INSERT INTO contacts (id, email, name, company)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''))
		ON CONFLICT (id) DO UPDATE
		SET email = COALESCE($2, contacts.email),
		    name = COALESCE($3, contacts.name),
		    company = COALESCE($4, contacts.company),
		    updated_at = now()
		RETURNING ` + contactColumns + `, (xmax = 0) AS created`

	return r.scanUpserted(r.db.QueryRow(ctx, query, *up.ID, up.Email, up.Name, up.Company))
}

func (r *contactRepository) UpsertByEmail(ctx context.Context, up *ContactUpsert) (*models.Contact, bool, error) {
	query := `
		INSERT INTO contacts (id, email, name, company)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''))
		ON CONFLICT (email) DO UPDATE
		SET name = COALESCE($3, contacts.name),
		    company = COALESCE($4, contacts.company),
		    updated_at = now()
		RETURNING ` + contactColumns + `, (xmax = 0) AS created`

	return r.scanUpserted(r.db.QueryRow(ctx, query, uuid.New(), *up.Email, up.Name, up.Company))
}

func (r *contactRepository) scanUpserted(row pgx.Row) (*models.Contact, bool, error) {
	var c models.Contact
	var created bool
	err := row.Scan(&c.ID, &c.Email, &c.Name, &c.Company, &c.CreatedAt, &c.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert contact: %w", err)
	}
	return &c, created, nil
}

// opportunitiesFor loads the opportunities referencing the given parent
// column. Shared with the business repository.
func (r *contactRepository) opportunitiesFor(ctx context.Context, column string, id uuid.UUID) ([]*models.Opportunity, error) {
	return listOpportunities(ctx, r.db, column, id)
}

// Ensure contactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*contactRepository)(nil)
