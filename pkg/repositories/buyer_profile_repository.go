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

// BuyerProfileUpsert carries the fields of a buyer profile write request.
// UserID is the natural key; one profile exists per user.
type BuyerProfileUpsert struct {
	ID          *uuid.UUID
	UserID      *string
	CompanyName *string
	About       *string
}

// BuyerProfileRepository defines the interface for buyer profile data access.
type BuyerProfileRepository interface {
	// GetByID fetches a single profile with its projects.
	GetByID(ctx context.Context, id uuid.UUID) (*models.BuyerProfile, error)
	// GetByUserID fetches a single profile by its natural key.
	GetByUserID(ctx context.Context, userID string) (*models.BuyerProfile, error)
	// UpsertByUserID inserts or partially updates the profile keyed by
	// user_id. The unique constraint guarantees one row per user.
	UpsertByUserID(ctx context.Context, up *BuyerProfileUpsert) (*models.BuyerProfile, bool, error)
	// UpsertByID inserts or partially updates the profile keyed by id.
	UpsertByID(ctx context.Context, up *BuyerProfileUpsert) (*models.BuyerProfile, bool, error)
}

type buyerProfileRepository struct {
	db *database.DB
}

// NewBuyerProfileRepository creates a new buyer profile repository.
func NewBuyerProfileRepository(db *database.DB) BuyerProfileRepository {
	return &buyerProfileRepository{db: db}
}

const buyerProfileColumns = `id, user_id, company_name, about, created_at, updated_at`

func scanBuyerProfile(row pgx.Row) (*models.BuyerProfile, error) {
	var p models.BuyerProfile
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.About, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *buyerProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BuyerProfile, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *buyerProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.BuyerProfile, error) {
	return r.get(ctx, `WHERE user_id = $1`, userID)
}

func (r *buyerProfileRepository) get(ctx context.Context, where string, arg any) (*models.BuyerProfile, error) {
	query := `SELECT ` + buyerProfileColumns + ` FROM buyer_profiles ` + where

	profile, err := scanBuyerProfile(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get buyer profile: %w", err)
	}

	profile.Projects, err = listProjects(ctx, r.db, &profile.ID)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *buyerProfileRepository) UpsertByUserID(ctx context.Context, up *BuyerProfileUpsert) (*models.BuyerProfile, bool, error) {
	query := `
		INSERT INTO buyer_profiles (id, user_id, company_name, about)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''))
		ON CONFLICT (user_id) DO UPDATE
		SET company_name = COALESCE($3, buyer_profiles.company_name),
		    about = COALESCE($4, buyer_profiles.about),
		    updated_at = now()
		RETURNING ` + buyerProfileColumns + `, (xmax = 0) AS created`

	return r.scanUpserted(r.db.QueryRow(ctx, query, uuid.New(), *up.UserID, up.CompanyName, up.About))
}

func (r *buyerProfileRepository) UpsertByID(ctx context.Context, up *BuyerProfileUpsert) (*models.BuyerProfile, bool, error) {
	query := `
		INSERT INTO buyer_profiles (id, user_id, company_name, about)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''))
		ON CONFLICT (id) DO UPDATE
		SET user_id = COALESCE($2, buyer_profiles.user_id),
		    company_name = COALESCE($3, buyer_profiles.company_name),
		    about = COALESCE($4, buyer_profiles.about),
		    updated_at = now()
		RETURNING ` + buyerProfileColumns + `, (xmax = 0) AS created`

	return r.scanUpserted(r.db.QueryRow(ctx, query, *up.ID, up.UserID, up.CompanyName, up.About))
}

func (r *buyerProfileRepository) scanUpserted(row pgx.Row) (*models.BuyerProfile, bool, error) {
	var p models.BuyerProfile
	var created bool
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.About, &p.CreatedAt, &p.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert buyer profile: %w", err)
	}
	return &p, created, nil
}

// Ensure buyerProfileRepository implements BuyerProfileRepository at compile time.
var _ BuyerProfileRepository = (*buyerProfileRepository)(nil)
