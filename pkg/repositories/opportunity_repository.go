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

// OpportunityUpsert carries the fields of an opportunity write request.
type OpportunityUpsert struct {
	ID         *uuid.UUID
	ContactID  *uuid.UUID
	BusinessID *uuid.UUID
	PipelineID *uuid.UUID
	Stage      *string
	Status     *string
}

// OpportunityFilter narrows a list query. Nil fields are ignored.
type OpportunityFilter struct {
	ContactID  *uuid.UUID
	PipelineID *uuid.UUID
}

// OpportunityRepository defines the interface for opportunity data access.
type OpportunityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error)
	// List returns up to 100 opportunities ordered by creation time
	// descending, optionally filtered by contact and pipeline.
	List(ctx context.Context, filter *OpportunityFilter) ([]*models.Opportunity, error)
	Create(ctx context.Context, up *OpportunityUpsert) (*models.Opportunity, error)
	UpsertByID(ctx context.Context, up *OpportunityUpsert) (*models.Opportunity, bool, error)
}

type opportunityRepository struct {
	db *database.DB
}

// NewOpportunityRepository creates a new opportunity repository.
func NewOpportunityRepository(db *database.DB) OpportunityRepository {
	return &opportunityRepository{db: db}
}

const opportunityColumns = `id, contact_id, business_id, pipeline_id, stage, status, created_at, updated_at`

func scanOpportunity(row pgx.Row) (*models.Opportunity, error) {
	var o models.Opportunity
	err := row.Scan(&o.ID, &o.ContactID, &o.BusinessID, &o.PipelineID,
		&o.Stage, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// listOpportunities loads opportunities by parent column. column is one of
// the fixed FK column names, never caller input.
func listOpportunities(ctx context.Context, db *database.DB, column string, id uuid.UUID) ([]*models.Opportunity, error) {
	query := `
		SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC`

	rows, err := db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	opportunities := make([]*models.Opportunity, 0)
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opportunities = append(opportunities, opp)
	}

	return opportunities, rows.Err()
}

func (r *opportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`

	opp, err := scanOpportunity(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return opp, nil
}

func (r *opportunityRepository) List(ctx context.Context, filter *OpportunityFilter) ([]*models.Opportunity, error) {
	query := `
		SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE ($1::uuid IS NULL OR contact_id = $1)
		  AND ($2::uuid IS NULL OR pipeline_id = $2)
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, filter.ContactID, filter.PipelineID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	opportunities := make([]*models.Opportunity, 0)
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opportunities = append(opportunities, opp)
	}

	return opportunities, rows.Err()
}

func (r *opportunityRepository) Create(ctx context.Context, up *OpportunityUpsert) (*models.Opportunity, error) {
	query := `
		INSERT INTO opportunities (id, contact_id, business_id, pipeline_id, stage, status)
		VALUES ($1, $2, $3, $4, COALESCE($5, ''), COALESCE($6, ''))
		RETURNING ` + opportunityColumns

	opp, err := scanOpportunity(r.db.QueryRow(ctx, query,
		uuid.New(), up.ContactID, up.BusinessID, up.PipelineID, up.Stage, up.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}
	return opp, nil
}

func (r *opportunityRepository) UpsertByID(ctx context.Context, up *OpportunityUpsert) (*models.Opportunity, bool, error) {
	query := `
		INSERT INTO opportunities (id, contact_id, business_id, pipeline_id, stage, status)
		VALUES ($1, $2, $3, $4, COALESCE($5, ''), COALESCE($6, ''))
		ON CONFLICT (id) DO UPDATE
		SET contact_id = COALESCE($2, opportunities.contact_id),
		    business_id = COALESCE($3, opportunities.business_id),
		    pipeline_id = COALESCE($4, opportunities.pipeline_id),
		    stage = COALESCE($5, opportunities.stage),
		    status = COALESCE($6, opportunities.status),
		    updated_at = now()
		RETURNING ` + opportunityColumns + `, (xmax = 0) AS created`

	var o models.Opportunity
	var created bool
	err := r.db.QueryRow(ctx, query,
		*up.ID, up.ContactID, up.BusinessID, up.PipelineID, up.Stage, up.Status).Scan(
		&o.ID, &o.ContactID, &o.BusinessID, &o.PipelineID,
		&o.Stage, &o.Status, &o.CreatedAt, &o.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert opportunity: %w", err)
	}
	return &o, created, nil
}

// Ensure opportunityRepository implements OpportunityRepository at compile time.
var _ OpportunityRepository = (*opportunityRepository)(nil)
