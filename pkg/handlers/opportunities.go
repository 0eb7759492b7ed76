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

// OpportunityRequest is the write request body for the opportunities
// endpoint.
type OpportunityRequest struct {
	ID         *uuid.UUID `json:"id"`
	ContactID  *uuid.UUID `json:"contactId"`
	BusinessID *uuid.UUID `json:"businessId"`
	PipelineID *uuid.UUID `json:"pipelineId"`
	Stage      *string    `json:"stage"`
	Status     *string    `json:"status"`
}

// OpportunitiesHandler handles opportunity-related HTTP requests.
type OpportunitiesHandler struct {
	repo   repositories.OpportunityRepository
	logger *zap.Logger
}

// NewOpportunitiesHandler creates a new opportunities handler.
func NewOpportunitiesHandler(repo repositories.OpportunityRepository, logger *zap.Logger) *OpportunitiesHandler {
	return &OpportunitiesHandler{repo: repo, logger: logger}
}

// RegisterRoutes registers the opportunities handler's routes on the given mux.
func (h *OpportunitiesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/opportunities", authMiddleware.RequireAdmin(h.Get))
	mux.HandleFunc("POST /api/opportunities", authMiddleware.RequireAdmin(h.Write))
	mux.HandleFunc("PATCH /api/opportunities", authMiddleware.RequireAdmin(h.Write))
	mux.HandleFunc("/api/opportunities", methodNotAllowed(h.logger, "GET, POST, PATCH"))
}

// Get handles GET /api/opportunities
// With ?id it returns a single opportunity; otherwise a list optionally
// filtered by ?contactId and ?pipelineId.
func (h *OpportunitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if idStr := query.Get("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_id", "Invalid opportunity ID format")
			return
		}

		opp, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				writeError(w, h.logger, http.StatusNotFound, "not_found", "Opportunity not found")
				return
			}
			h.logger.Error("Failed to get opportunity", zap.Error(err))
			writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to get opportunity")
			return
		}

		writeJSON(w, h.logger, http.StatusOK, opp)
		return
	}

	filter := &repositories.OpportunityFilter{}

	if contactIDStr := query.Get("contactId"); contactIDStr != "" {
		contactID, err := uuid.Parse(contactIDStr)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_contact_id", "Invalid contact ID format")
			return
		}
		filter.ContactID = &contactID
	}

	if pipelineIDStr := query.Get("pipelineId"); pipelineIDStr != "" {
		pipelineID, err := uuid.Parse(pipelineIDStr)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_pipeline_id", "Invalid pipeline ID format")
			return
		}
		filter.PipelineID = &pipelineID
	}

	opportunities, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list opportunities", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to list opportunities")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, opportunities)
}

// Write handles POST/PATCH /api/opportunities
// With an id it upserts by id (partial update); otherwise it creates a new
// opportunity.
func (h *OpportunitiesHandler) Write(w http.ResponseWriter, r *http.Request) {
	var req OpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	up := &repositories.OpportunityUpsert{
		ID:         req.ID,
		ContactID:  req.ContactID,
		BusinessID: req.BusinessID,
		PipelineID: req.PipelineID,
		Stage:      req.Stage,
		Status:     req.Status,
	}

	if req.ID != nil {
		opp, created, err := h.repo.UpsertByID(r.Context(), up)
		if err != nil {
			h.logger.Error("Failed to upsert opportunity", zap.Error(err))
			writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to save opportunity")
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, h.logger, status, opp)
		return
	}

	opp, err := h.repo.Create(r.Context(), up)
	if err != nil {
		h.logger.Error("Failed to create opportunity", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to save opportunity")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, opp)
}
