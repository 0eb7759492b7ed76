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

// BusinessUpsert carries the fields of a business write request.
type BusinessUpsert struct {
	ID   *uuid.UUID
	Name *string
}

// BusinessRepository defines the interface for business data access.
type BusinessRepository interface {
	// GetByID fetches a single business with its opportunities.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	// List returns up to 100 businesses ordered by name ascending,
	// optionally filtered by a case-insensitive substring over name.
	List(ctx context.Context, search string) ([]*models.Business, error)
	// Create inserts a new business.
	Create(ctx context.Context, up *BusinessUpsert) (*models.Business, error)
	// UpsertByID inserts or partially updates a business keyed by id.
	UpsertByID(ctx context.Context, up *BusinessUpsert) (*models.Business, bool, error)
}

type businessRepository struct {
	db *database.DB
}

// NewBusinessRepository creates a new business repository.
func NewBusinessRepository(db *database.DB) BusinessRepository {
	return &businessRepository{db: db}
}

const businessColumns = `id, name, created_at, updated_at`

func scanBusiness(row pgx.Row) (*models.Business, error) {
	var b models.Business
	err := row.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`

	business, err := scanBusiness(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	business.Opportunities, err = listOpportunities(ctx, r.db, "business_id", business.ID)
	if err != nil {
		return nil, err
	}

	return business, nil
}

func (r *businessRepository) List(ctx context.Context, search string) ([]*models.Business, error) {
	query := `
		SELECT ` + businessColumns + `
		FROM businesses
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, search, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	businesses := make([]*models.Business, 0)
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, business)
	}

	return businesses, rows.Err()
}

func (r *businessRepository) Create(ctx context.Context, up *BusinessUpsert) (*models.Business, error) {
	query := `
		INSERT INTO businesses (id, name)
		VALUES ($1, COALESCE($2, ''))
		RETURNING ` + businessColumns

	business, err := scanBusiness(r.db.QueryRow(ctx, query, uuid.New(), up.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to create business: %w", err)
	}
	return business, nil
}

func (r *businessRepository) UpsertByID(ctx context.Context, up *BusinessUpsert) (*models.Business, bool, error) {
	query := `
		INSERT INTO businesses (id, name)
		VALUES ($1, COALESCE($2, ''))
		ON CONFLICT (id) DO UPDATE
		SET name = COALESCE($2, businesses.name),
		    updated_at = now()
		RETURNING ` + businessColumns + `, (xmax = 0) AS created`

	var b models.Business
	var created bool
	err := r.db.QueryRow(ctx, query, *up.ID, up.Name).Scan(
		&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert business: %w", err)
	}
	return &b, created, nil
}

// Ensure businessRepository implements BusinessRepository at compile time.
var _ BusinessRepository = (*businessRepository)(nil)
