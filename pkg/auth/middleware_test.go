package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAuthService implements AuthService with a fixed result.
type stubAuthService struct {
	claims *Claims
	err    error
}

func (s *stubAuthService) ValidateRequest(r *http.Request) (*Claims, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.claims, "raw-token", nil
}

func TestMiddleware_RequireAuth_SetsContext(t *testing.T) {
	claims := &Claims{Roles: []string{"member"}}
	claims.Subject = "user-42"
	mw := NewMiddleware(&stubAuthService{claims: claims}, zap.NewNop())

	var gotSubject, gotToken string
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = GetUserIDFromContext(r.Context())
		gotToken, _ = GetToken(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/buyer", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", gotSubject)
	assert.Equal(t, "raw-token", gotToken)
}

func TestMiddleware_RequireAuth_Unauthorized(t *testing.T) {
	mw := NewMiddleware(&stubAuthService{err: errors.New("no token")}, zap.NewNop())

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/buyer", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "unauthorized", body["error"])
}

func TestMiddleware_RequireAdmin_AdminPasses(t *testing.T) {
	claims := &Claims{Roles: []string{RoleAdmin}}
	claims.Subject = "admin-1"
	mw := NewMiddleware(&stubAuthService{claims: claims}, zap.NewNop())

	handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/contacts", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_RequireAdmin_NonAdminForbidden(t *testing.T) {
	claims := &Claims{Roles: []string{"member"}}
	claims.Subject = "user-42"
	mw := NewMiddleware(&stubAuthService{claims: claims}, zap.NewNop())

	called := false
	handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/contacts", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "forbidden", body["error"])
}

func TestMiddleware_RequireAdmin_InvalidTokenUnauthorized(t *testing.T) {
	mw := NewMiddleware(&stubAuthService{err: errors.New("expired")}, zap.NewNop())

	handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/api/contacts", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
