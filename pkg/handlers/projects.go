package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upliftgrowth/growth-engine/pkg/apperrors"
	"github.com/upliftgrowth/growth-engine/pkg/auth"
	"github.com/upliftgrowth/growth-engine/pkg/repositories"
)

// ProjectRequest is the write request body for the projects endpoint.
type ProjectRequest struct {
	ID             *uuid.UUID `json:"id"`
	BuyerProfileID *uuid.UUID `json:"buyerProfileId"`
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Attachments    *[]string  `json:"attachments"`
	Status         *string    `json:"status"`
}

// ProjectsHandler handles project-related HTTP requests.
type ProjectsHandler struct {
	repo   repositories.ProjectRepository
	logger *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(repo repositories.ProjectRepository, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{repo: repo, logger: logger}
}

// RegisterRoutes registers the projects handler's routes on the given mux.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/projects", authMiddleware.RequireAdmin(h.Get))
	mux.HandleFunc("POST /api/projects", authMiddleware.RequireAdmin(h.Write))
	mux.HandleFunc("/api/projects", methodNotAllowed(h.logger, "GET, POST"))
}

// Get handles GET /api/projects
// With ?id it returns a single project including its responses; otherwise a
// list optionally filtered by ?buyerProfileId.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if idStr := query.Get("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_id", "Invalid project ID format")
			return
		}

		project, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				writeError(w, h.logger, http.StatusNotFound, "not_found", "Project not found")
				return
			}
			h.logger.Error("Failed to get project", zap.Error(err))
			writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to get project")
			return
		}

		writeJSON(w, h.logger, http.StatusOK, project)
		return
	}

	var buyerProfileID *uuid.UUID
	if bpStr := query.Get("buyerProfileId"); bpStr != "" {
		id, err := uuid.Parse(bpStr)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_buyer_profile_id", "Invalid buyer profile ID format")
			return
		}
		buyerProfileID = &id
	}

	projects, err := h.repo.List(r.Context(), buyerProfileID)
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to list projects")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, projects)
}

// Write handles POST /api/projects
// With an id it upserts by id; otherwise it creates a new project, which
// requires buyerProfileId.
func (h *ProjectsHandler) Write(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	up := &repositories.ProjectUpsert{
		ID:             req.ID,
		BuyerProfileID: req.BuyerProfileID,
		Title:          req.Title,
		Description:    req.Description,
		Attachments:    req.Attachments,
		Status:         req.Status,
	}

	if req.ID != nil {
		project, created, err := h.repo.UpsertByID(r.Context(), up)
		if err != nil {
			h.logger.Error("Failed to upsert project", zap.Error(err))
			writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to save project")
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, h.logger, status, project)
		return
	}

	if req.BuyerProfileID == nil {
		writeError(w, h.logger, http.StatusBadRequest, "missing_buyer_profile_id", "buyerProfileId is required")
		return
	}

	project, err := h.repo.Create(r.Context(), up)
	if err != nil {
		h.logger.Error("Failed to create project", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to save project")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, project)
}
