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

// ProjectUpsert carries the fields of a project write request.
type ProjectUpsert struct {
	ID             *uuid.UUID
	BuyerProfileID *uuid.UUID
	Title          *string
	Description    *string
	Attachments    *[]string
	Status         *string
}

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	// GetByID fetches a single project with its responses.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// List returns up to 100 projects ordered by creation time descending,
	// optionally filtered by buyer profile.
	List(ctx context.Context, buyerProfileID *uuid.UUID) ([]*models.Project, error)
	// Create inserts a new project. BuyerProfileID is required.
	Create(ctx context.Context, up *ProjectUpsert) (*models.Project, error)
	// UpsertByID inserts or partially updates a project keyed by id.
	UpsertByID(ctx context.Context, up *ProjectUpsert) (*models.Project, bool, error)
}

type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, buyer_profile_id, title, description, attachments, status, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.BuyerProfileID, &p.Title, &p.Description,
		&p.Attachments, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// listProjects loads projects, optionally scoped to a buyer profile.
// Shared with the buyer profile repository for relation inclusion.
func listProjects(ctx context.Context, db *database.DB, buyerProfileID *uuid.UUID) ([]*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE ($1::uuid IS NULL OR buyer_profile_id = $1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := db.Query(ctx, query, buyerProfileID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.Responses, err = r.listResponses(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (r *projectRepository) listResponses(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectResponse, error) {
	query := `
		SELECT id, project_id, provider_profile_id, message, created_at, updated_at
		FROM project_responses
		WHERE project_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project responses: %w", err)
	}
	defer rows.Close()

	responses := make([]*models.ProjectResponse, 0)
	for rows.Next() {
		var resp models.ProjectResponse
		if err := rows.Scan(&resp.ID, &resp.ProjectID, &resp.ProviderProfileID,
			&resp.Message, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project response: %w", err)
		}
		responses = append(responses, &resp)
	}

	return responses, rows.Err()
}

func (r *projectRepository) List(ctx context.Context, buyerProfileID *uuid.UUID) ([]*models.Project, error) {
	return listProjects(ctx, r.db, buyerProfileID)
}

func (r *projectRepository) Create(ctx context.Context, up *ProjectUpsert) (*models.Project, error) {
	query := `
		INSERT INTO projects (id, buyer_profile_id, title, description, attachments, status)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, '{}'), COALESCE($6, 'open'))
		RETURNING ` + projectColumns

	project, err := scanProject(r.db.QueryRow(ctx, query,
		uuid.New(), *up.BuyerProfileID, up.Title, up.Description, up.Attachments, up.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (r *projectRepository) UpsertByID(ctx context.Context, up *ProjectUpsert) (*models.Project, bool, error) {
	query := `
		INSERT INTO projects (id, buyer_profile_id, title, description, attachments, status)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, '{}'), COALESCE($6, 'open'))
		ON CONFLICT (id) DO UPDATE
		SET buyer_profile_id = COALESCE($2, projects.buyer_profile_id),
		    title = COALESCE($3, projects.title),
		    description = COALESCE($4, projects.description),
		    attachments = COALESCE($5, projects.attachments),
		    status = COALESCE($6, projects.status),
		    updated_at = now()
		RETURNING ` + projectColumns + `, (xmax = 0) AS created`

	var p models.Project
	var created bool
	err := r.db.QueryRow(ctx, query,
		*up.ID, up.BuyerProfileID, up.Title, up.Description, up.Attachments, up.Status).Scan(
		&p.ID, &p.BuyerProfileID, &p.Title, &p.Description,
		&p.Attachments, &p.Status, &p.CreatedAt, &p.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert project: %w", err)
	}
	return &p, created, nil
}

// Ensure projectRepository implements ProjectRepository at compile time.
var _ ProjectRepository = (*projectRepository)(nil)
