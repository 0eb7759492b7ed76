package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upliftgrowth/growth-engine/pkg/apperrors"
	"github.com/upliftgrowth/growth-engine/pkg/models"
)

func TestProjectsHandler_Get_ByID_IncludesResponses(t *testing.T) {
	id := uuid.New()
	repo := &mockProjectRepository{
		project: &models.Project{
			ID:          id,
			Title:       "Launch campaign",
			Attachments: []string{},
			Responses: []*models.ProjectResponse{
				{ID: uuid.New(), ProjectID: id, Message: "We can help."},
			},
		},
	}
	handler := NewProjectsHandler(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/projects?id="+id.String(), nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var project models.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&project))
	assert.Equal(t, "Launch campaign", project.Title)
	require.Len(t, project.Responses, 1)
}

func TestProjectsHandler_Get_NotFound(t *testing.T) {
	repo := &mockProjectRepository{err: apperrors.ErrNotFound}
	handler := NewProjectsHandler(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/projects?id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectsHandler_Get_InvalidBuyerProfileID(t *testing.T) {
	handler := NewProjectsHandler(&mockProjectRepository{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/projects?buyerProfileId=bogus", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "invalid_buyer_profile_id", errResp["error"])
}

func TestProjectsHandler_Write_Create(t *testing.T) {
	buyerProfileID := uuid.New()
	repo := &mockProjectRepository{
		project: &models.Project{ID: uuid.New(), BuyerProfileID: buyerProfileID, Title: "Launch campaign"},
	}
	handler := NewProjectsHandler(repo, zap.NewNop())

	body, _ := json.Marshal(map[string]interface{}{
		"buyerProfileId": buyerProfileID.String(),
		"title":          "Launch campaign",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Write(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestProjectsHandler_Write_Create_MissingBuyerProfileID(t *testing.T) {
	handler := NewProjectsHandler(&mockProjectRepository{}, zap.NewNop())

	body, _ := json.Marshal(map[string]string{"title": "Launch campaign"})
	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Write(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "missing_buyer_profile_id", errResp["error"])
}

func TestProjectsHandler_Write_UpsertByID_StatusPatch(t *testing.T) {
	id := uuid.New()
	repo := &mockProjectRepository{
		project: &models.Project{ID: id, Title: "Launch campaign", Status: "closed"},
		created: false,
	}
	handler := NewProjectsHandler(repo, zap.NewNop())

	body, _ := json.Marshal(map[string]interface{}{"id": id.String(), "status": "closed"})
	req := httptest.NewRequest(http.MethodPost, "/api/projects", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Write(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.lastUpsert)
	assert.Nil(t, repo.lastUpsert.Title)
	require.NotNil(t, repo.lastUpsert.Status)
	assert.Equal(t, "closed", *repo.lastUpsert.Status)
}

func TestProjectsHandler_Routes_MethodNotAllowed(t *testing.T) {
	mux := http.NewServeMux()
	handler := NewProjectsHandler(&mockProjectRepository{}, zap.NewNop())
	handler.RegisterRoutes(mux, adminMiddleware())

	req := httptest.NewRequest(http.MethodDelete, "/api/projects", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}
