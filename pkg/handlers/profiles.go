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

// BuyerProfileRequest is the write request body for the buyer profile
// endpoint. UserID is the upsert key; a write without userId or id is
// rejected.
type BuyerProfileRequest struct {
	ID          *uuid.UUID `json:"id"`
	UserID      *string    `json:"userId"`
	CompanyName *string    `json:"companyName"`
	About       *string    `json:"about"`
}

// ProviderProfileRequest is the write request body for the provider profile
// endpoint. Nil slices are "not provided"; they default to empty arrays on
// first insert.
type ProviderProfileRequest struct {
	ID           *uuid.UUID `json:"id"`
	UserID       *string    `json:"userId"`
	CompanyName  *string    `json:"companyName"`
	About        *string    `json:"about"`
	ServiceLines *[]string  `json:"serviceLines"`
	Industries   *[]string  `json:"industries"`
}

// ProfilesHandler handles buyer and provider profile HTTP requests.
type ProfilesHandler struct {
	buyers    repositories.BuyerProfileRepository
	providers repositories.ProviderProfileRepository
	logger    *zap.Logger
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(buyers repositories.BuyerProfileRepository, providers repositories.ProviderProfileRepository, logger *zap.Logger) *ProfilesHandler {
	return &ProfilesHandler{buyers: buyers, providers: providers, logger: logger}
}

// RegisterRoutes registers the profiles handler's routes on the given mux.
func (h *ProfilesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/profiles/buyer", authMiddleware.RequireAdmin(h.GetBuyer))
	mux.HandleFunc("POST /api/profiles/buyer", authMiddleware.RequireAdmin(h.WriteBuyer))
	mux.HandleFunc("PUT /api/profiles/buyer", authMiddleware.RequireAdmin(h.WriteBuyer))
	mux.HandleFunc("PATCH /api/profiles/buyer", authMiddleware.RequireAdmin(h.WriteBuyer))
	mux.HandleFunc("/api/profiles/buyer", methodNotAllowed(h.logger, "GET, POST, PUT, PATCH"))

	mux.HandleFunc("GET /api/profiles/provider", authMiddleware.RequireAdmin(h.GetProvider))
	mux.HandleFunc("POST /api/profiles/provider", authMiddleware.RequireAdmin(h.WriteProvider))
	mux.HandleFunc("PUT /api/profiles/provider", authMiddleware.RequireAdmin(h.WriteProvider))
	mux.HandleFunc("PATCH /api/profiles/provider", authMiddleware.RequireAdmin(h.WriteProvider))
	mux.HandleFunc("/api/profiles/provider", methodNotAllowed(h.logger, "GET, POST, PUT, PATCH"))
}

// GetBuyer handles GET /api/profiles/buyer
// Requires ?userId or ?id; returns the profile with its projects.
func (h *ProfilesHandler) GetBuyer(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if userID := query.Get("userId"); userID != "" {
		profile, err := h.buyers.GetByUserID(r.Context(), userID)
		h.respondProfile(w, profile, err, "buyer profile")
		return
	}

	if idStr := query.Get("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_id", "Invalid profile ID format")
			return
		}
		profile, err := h.buyers.GetByID(r.Context(), id)
		h.respondProfile(w, profile, err, "buyer profile")
		return
	}

	writeError(w, h.logger, http.StatusBadRequest, "missing_identifier", "userId or id query parameter is required")
}

// WriteBuyer handles POST/PUT/PATCH /api/profiles/buyer
// Upserts by userId (preferred) or id; the unique user_id constraint
// guarantees one profile per user.
func (h *ProfilesHandler) WriteBuyer(w http.ResponseWriter, r *http.Request) {
	var req BuyerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	up := &repositories.BuyerProfileUpsert{
		ID:          req.ID,
		UserID:      req.UserID,
		CompanyName: req.CompanyName,
		About:       req.About,
	}

	switch {
	case req.UserID != nil && *req.UserID != "":
		profile, created, err := h.buyers.UpsertByUserID(r.Context(), up)
		h.respondProfileWrite(w, profile, created, err, "buyer profile")
	case req.ID != nil:
		profile, created, err := h.buyers.UpsertByID(r.Context(), up)
		h.respondProfileWrite(w, profile, created, err, "buyer profile")
	default:
		writeError(w, h.logger, http.StatusBadRequest, "missing_user_id", "userId is required")
	}
}

// GetProvider handles GET /api/profiles/provider
// Requires ?userId or ?id; returns the profile with its clients.
func (h *ProfilesHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if userID := query.Get("userId"); userID != "" {
		profile, err := h.providers.GetByUserID(r.Context(), userID)
		h.respondProfile(w, profile, err, "provider profile")
		return
	}

	if idStr := query.Get("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_id", "Invalid profile ID format")
			return
		}
		profile, err := h.providers.GetByID(r.Context(), id)
		h.respondProfile(w, profile, err, "provider profile")
		return
	}

	writeError(w, h.logger, http.StatusBadRequest, "missing_identifier", "userId or id query parameter is required")
}

// WriteProvider handles POST/PUT/PATCH /api/profiles/provider
// Upserts by userId (preferred) or id.
func (h *ProfilesHandler) WriteProvider(w http.ResponseWriter, r *http.Request) {
	var req ProviderProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	up := &repositories.ProviderProfileUpsert{
		ID:           req.ID,
		UserID:       req.UserID,
		CompanyName:  req.CompanyName,
		About:        req.About,
		ServiceLines: req.ServiceLines,
		Industries:   req.Industries,
	}

	switch {
	case req.UserID != nil && *req.UserID != "":
		profile, created, err := h.providers.UpsertByUserID(r.Context(), up)
		h.respondProfileWrite(w, profile, created, err, "provider profile")
	case req.ID != nil:
		profile, created, err := h.providers.UpsertByID(r.Context(), up)
		h.respondProfileWrite(w, profile, created, err, "provider profile")
	default:
		writeError(w, h.logger, http.StatusBadRequest, "missing_user_id", "userId is required")
	}
}

func (h *ProfilesHandler) respondProfile(w http.ResponseWriter, profile interface{}, err error, kind string) {
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "not_found", "Profile not found")
			return
		}
		h.logger.Error("Failed to get "+kind, zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to get profile")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, profile)
}

func (h *ProfilesHandler) respondProfileWrite(w http.ResponseWriter, profile interface{}, created bool, err error, kind string) {
	if err != nil {
		h.logger.Error("Failed to upsert "+kind, zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to save profile")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, h.logger, status, profile)
}
