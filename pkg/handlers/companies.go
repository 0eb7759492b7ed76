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

// BusinessRequest is the write request body for the companies endpoint.
type BusinessRequest struct {
	ID   *uuid.UUID `json:"id"`
	Name *string    `json:"name"`
}

// CompaniesHandler handles business-related HTTP requests.
type CompaniesHandler struct {
	repo   repositories.BusinessRepository
	logger *zap.Logger
}

// NewCompaniesHandler creates a new companies handler.
func NewCompaniesHandler(repo repositories.BusinessRepository, logger *zap.Logger) *CompaniesHandler {
	return &CompaniesHandler{repo: repo, logger: logger}
}

// RegisterRoutes registers the companies handler's routes on the given mux.
func (h *CompaniesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/companies", authMiddleware.RequireAdmin(h.Get))
	mux.HandleFunc("POST /api/companies", authMiddleware.RequireAdmin(h.Write))
	mux.HandleFunc("/api/companies", methodNotAllowed(h.logger, "GET, POST"))
}

// Get handles GET /api/companies
// With ?id it returns a single business including its opportunities;
// otherwise a list ordered by name, optionally filtered by ?search.
func (h *CompaniesHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if idStr := query.Get("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_id", "Invalid business ID format")
			return
		}

		business, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				writeError(w, h.logger, http.StatusNotFound, "not_found", "Business not found")
				return
			}
			h.logger.Error("Failed to get business", zap.Error(err))
			writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to get business")
			return
		}

		writeJSON(w, h.logger, http.StatusOK, business)
		return
	}

	businesses, err := h.repo.List(r.Context(), query.Get("search"))
	if err != nil {
		h.logger.Error("Failed to list businesses", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to list businesses")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, businesses)
}

// Write handles POST /api/companies
// With an id it upserts by id; otherwise it creates a new business.
func (h *CompaniesHandler) Write(w http.ResponseWriter, r *http.Request) {
	var req BusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	up := &repositories.BusinessUpsert{
		ID:   req.ID,
		Name: req.Name,
	}

	if req.ID != nil {
		business, created, err := h.repo.UpsertByID(r.Context(), up)
		if err != nil {
			h.logger.Error("Failed to upsert business", zap.Error(err))
			writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to save business")
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, h.logger, status, business)
		return
	}

	business, err := h.repo.Create(r.Context(), up)
	if err != nil {
		h.logger.Error("Failed to create business", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to save business")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, business)
}
