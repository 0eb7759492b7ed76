package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/upliftgrowth/growth-engine/pkg/auth"
	"github.com/upliftgrowth/growth-engine/pkg/services"
)

// CompetitorAnalysisRequest is the request body for competitor analysis.
type CompetitorAnalysisRequest struct {
	MyInfo      string   `json:"my_info"`
	Competitors []string `json:"competitors"`
}

// StrategyRequest is the request body for go-to-market strategy generation.
type StrategyRequest struct {
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// CopyHandler handles the AI copy-generation endpoints. Each request is one
// completion call; generation failures surface as a generic 500 with the
// cause logged, never exposed.
type CopyHandler struct {
	copyService services.CopyService
	logger      *zap.Logger
}

// NewCopyHandler creates a new copy-generation handler.
func NewCopyHandler(copyService services.CopyService, logger *zap.Logger) *CopyHandler {
	return &CopyHandler{copyService: copyService, logger: logger}
}

// RegisterRoutes registers the copy handler's routes on the given mux.
func (h *CopyHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/ai/competitor-analysis", authMiddleware.RequireAdmin(h.CompetitorAnalysis))
	mux.HandleFunc("/api/ai/competitor-analysis", methodNotAllowed(h.logger, "POST"))

	mux.HandleFunc("POST /api/ai/strategy", authMiddleware.RequireAdmin(h.Strategy))
	mux.HandleFunc("/api/ai/strategy", methodNotAllowed(h.logger, "POST"))
}

// CompetitorAnalysis handles POST /api/ai/competitor-analysis
// Requires my_info and at least one competitor.
func (h *CopyHandler) CompetitorAnalysis(w http.ResponseWriter, r *http.Request) {
	var req CompetitorAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if strings.TrimSpace(req.MyInfo) == "" {
		writeError(w, h.logger, http.StatusBadRequest, "missing_my_info", "my_info is required")
		return
	}
	if len(req.Competitors) == 0 {
		writeError(w, h.logger, http.StatusBadRequest, "missing_competitors", "at least one competitor is required")
		return
	}

	result, err := h.copyService.CompetitorAnalysis(r.Context(), req.MyInfo, req.Competitors)
	if err != nil {
		h.logger.Error("Competitor analysis generation failed", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "generation_failed", "Failed to generate competitor analysis")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// Strategy handles POST /api/ai/strategy
// Requires at least one of company_name and description.
func (h *CopyHandler) Strategy(w http.ResponseWriter, r *http.Request) {
	var req StrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if strings.TrimSpace(req.CompanyName) == "" && strings.TrimSpace(req.Description) == "" {
		writeError(w, h.logger, http.StatusBadRequest, "missing_input", "company_name or description is required")
		return
	}

	result, err := h.copyService.Strategy(r.Context(), req.CompanyName, req.Description, req.Website)
	if err != nil {
		h.logger.Error("Strategy generation failed", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "generation_failed", "Failed to generate strategy")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
