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

// ContactRequest is the write request body for the contacts endpoint.
// Nil fields are treated as "not provided" on upsert.
type ContactRequest struct {
	ID      *uuid.UUID `json:"id"`
	Email   *string    `json:"email"`
	Name    *string    `json:"name"`
	Company *string    `json:"company"`
}

// ContactsHandler handles contact-related HTTP requests.
type ContactsHandler struct {
	repo   repositories.ContactRepository
	logger *zap.Logger
}

// NewContactsHandler creates a new contacts handler.
func NewContactsHandler(repo repositories.ContactRepository, logger *zap.Logger) *ContactsHandler {
	return &ContactsHandler{repo: repo, logger: logger}
}

// RegisterRoutes registers the contacts handler's routes on the given mux.
// The bare pattern catches every unsupported method with a JSON 405.
func (h *ContactsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/contacts", authMiddleware.RequireAdmin(h.Get))
	mux.HandleFunc("POST /api/contacts", authMiddleware.RequireAdmin(h.Write))
	mux.HandleFunc("PUT /api/contacts", authMiddleware.RequireAdmin(h.Write))
	mux.HandleFunc("PATCH /api/contacts", authMiddleware.RequireAdmin(h.Write))
	mux.HandleFunc("/api/contacts", methodNotAllowed(h.logger, "GET, POST, PUT, PATCH"))
}

// Get handles GET /api/contacts
// With ?id or ?email it returns a single contact including its
// opportunities; otherwise a list optionally filtered by ?search.
func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if idStr := query.Get("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "invalid_id", "Invalid contact ID format")
			return
		}

		contact, err := h.repo.GetByID(r.Context(), id)
		h.respondSingle(w, contact, err)
		return
	}

	if email := query.Get("email"); email != "" {
		contact, err := h.repo.GetByEmail(r.Context(), email)
		h.respondSingle(w, contact, err)
		return
	}

	contacts, err := h.repo.List(r.Context(), query.Get("search"))
	if err != nil {
		h.logger.Error("Failed to list contacts", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to list contacts")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, contacts)
}

func (h *ContactsHandler) respondSingle(w http.ResponseWriter, contact interface{}, err error) {
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "not_found", "Contact not found")
			return
		}
		h.logger.Error("Failed to get contact", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to get contact")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, contact)
}

// Write handles POST/PUT/PATCH /api/contacts
// With an id it upserts by id; with an email it upserts by the natural key
// (never creating a duplicate email); otherwise it creates a new contact.
// Returns 201 when a new row was created, 200 when an existing row was
// updated.
func (h *ContactsHandler) Write(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	up := &repositories.ContactUpsert{
		ID:      req.ID,
		Email:   req.Email,
		Name:    req.Name,
		Company: req.Company,
	}

	switch {
	case req.ID != nil:
		contact, created, err := h.repo.UpsertByID(r.Context(), up)
		h.respondWrite(w, contact, created, err)
	case req.Email != nil && *req.Email != "":
		contact, created, err := h.repo.UpsertByEmail(r.Context(), up)
		h.respondWrite(w, contact, created, err)
	default:
		contact, err := h.repo.Create(r.Context(), up)
		h.respondWrite(w, contact, true, err)
	}
}

func (h *ContactsHandler) respondWrite(w http.ResponseWriter, contact interface{}, created bool, err error) {
	if err != nil {
		h.logger.Error("Failed to write contact", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal_error", "Failed to save contact")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, h.logger, status, contact)
}
