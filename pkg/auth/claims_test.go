package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaims_HasRole(t *testing.T) {
	claims := &Claims{Roles: []string{"member", "admin"}}

	assert.True(t, claims.HasRole("admin"))
	assert.True(t, claims.HasRole("member"))
	assert.False(t, claims.HasRole("owner"))
}

func TestClaims_IsAdmin(t *testing.T) {
	admin := &Claims{Roles: []string{RoleAdmin}}
	member := &Claims{Roles: []string{"member"}}
	empty := &Claims{}

	assert.True(t, admin.IsAdmin())
	assert.False(t, member.IsAdmin())
	assert.False(t, empty.IsAdmin())
}

func TestGetClaims_Missing(t *testing.T) {
	claims, ok := GetClaims(context.Background())
	assert.False(t, ok)
	assert.Nil(t, claims)
}

func TestGetUserIDFromContext(t *testing.T) {
	claims := &Claims{}
	claims.Subject = "user-42"
	ctx := context.WithValue(context.Background(), ClaimsKey, claims)

	assert.Equal(t, "user-42", GetUserIDFromContext(ctx))
	assert.Equal(t, "", GetUserIDFromContext(context.Background()))
}
