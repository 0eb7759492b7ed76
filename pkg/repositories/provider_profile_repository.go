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

// ProviderProfileUpsert carries the fields of a provider profile write
// request. Nil slices mean "not provided"; on insert they default to empty
// arrays.
type ProviderProfileUpsert struct {
	ID           *uuid.UUID
	UserID       *string
	CompanyName  *string
	About        *string
	ServiceLines *[]string
	Industries   *[]string
}

// ProviderProfileRepository defines the interface for provider profile data
// access.
type ProviderProfileRepository interface {
	// GetByID fetches a single profile with its reference clients.
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProviderProfile, error)
	// GetByUserID fetches a single profile by its natural key.
	GetByUserID(ctx context.Context, userID string) (*models.ProviderProfile, error)
	// UpsertByUserID inserts or partially updates the profile keyed by
	// user_id. The unique constraint guarantees one row per user.
	UpsertByUserID(ctx context.Context, up *ProviderProfileUpsert) (*models.ProviderProfile, bool, error)
	// UpsertByID inserts or partially updates the profile keyed by id.
	UpsertByID(ctx context.Context, up *ProviderProfileUpsert) (*models.ProviderProfile, bool, error)
}

type providerProfileRepository struct {
	db *database.DB
}

// NewProviderProfileRepository creates a new provider profile repository.
func NewProviderProfileRepository(db *database.DB) ProviderProfileRepository {
	return &providerProfileRepository{db: db}
}

const providerProfileColumns = `id, user_id, company_name, about, service_lines, industries, created_at, updated_at`

func scanProviderProfile(row pgx.Row) (*models.ProviderProfile, error) {
	var p models.ProviderProfile
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.About,
		&p.ServiceLines, &p.Industries, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *providerProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProviderProfile, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *providerProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.ProviderProfile, error) {
	return r.get(ctx, `WHERE user_id = $1`, userID)
}

func (r *providerProfileRepository) get(ctx context.Context, where string, arg any) (*models.ProviderProfile, error) {
	query := `SELECT ` + providerProfileColumns + ` FROM provider_profiles ` + where

	profile, err := scanProviderProfile(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get provider profile: %w", err)
	}

	profile.Clients, err = r.listClients(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *providerProfileRepository) listClients(ctx context.Context, profileID uuid.UUID) ([]*models.ProviderClient, error) {
	query := `
		SELECT id, provider_profile_id, name, industry, created_at
		FROM provider_clients
		WHERE provider_profile_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*models.ProviderClient, 0)
	for rows.Next() {
		var c models.ProviderClient
		if err := rows.Scan(&c.ID, &c.ProviderProfileID, &c.Name, &c.Industry, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan provider client: %w", err)
		}
		clients = append(clients, &c)
	}

	return clients, rows.Err()
}

func (r *providerProfileRepository) UpsertByUserID(ctx context.Context, up *ProviderProfileUpsert) (*models.ProviderProfile, bool, error) {
	query := `
		INSERT INTO provider_profiles (id, user_id, company_name, about, service_lines, industries)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, '{}'), COALESCE($6, '{}'))
		ON CONFLICT (user_id) DO UPDATE
		SET company_name = COALESCE($3, provider_profiles.company_name),
		    about = COALESCE($4, provider_profiles.about),
		    service_lines = COALESCE($5, provider_profiles.service_lines),
		    industries = COALESCE($6, provider_profiles.industries),
		    updated_at = now()
		RETURNING ` + providerProfileColumns + `, (xmax = 0) AS created`

	return r.scanUpserted(r.db.QueryRow(ctx, query,
		uuid.New(), *up.UserID, up.CompanyName, up.About, up.ServiceLines, up.Industries))
}

func (r *providerProfileRepository) UpsertByID(ctx context.Context, up *ProviderProfileUpsert) (*models.ProviderProfile, bool, error) {
	query := `
		INSERT INTO provider_profiles (id, user_id, company_name, about, service_lines, industries)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, '{}'), COALESCE($6, '{}'))
		ON CONFLICT (id) DO UPDATE
		SET user_id = COALESCE($2, provider_profiles.user_id),
		    company_name = COALESCE($3, provider_profiles.company_name),
		    about = COALESCE($4, provider_profiles.about),
		    service_lines = COALESCE($5, provider_profiles.service_lines),
		    industries = COALESCE($6, provider_profiles.industries),
		    updated_at = now()
		RETURNING ` + providerProfileColumns + `, (xmax = 0) AS created`

	return r.scanUpserted(r.db.QueryRow(ctx, query,
		*up.ID, up.UserID, up.CompanyName, up.About, up.ServiceLines, up.Industries))
}

func (r *providerProfileRepository) scanUpserted(row pgx.Row) (*models.ProviderProfile, bool, error) {
	var p models.ProviderProfile
	var created bool
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.About,
		&p.ServiceLines, &p.Industries, &p.CreatedAt, &p.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert provider profile: %w", err)
	}
	return &p, created, nil
}

// Ensure providerProfileRepository implements ProviderProfileRepository at compile time.
var _ ProviderProfileRepository = (*providerProfileRepository)(nil)
