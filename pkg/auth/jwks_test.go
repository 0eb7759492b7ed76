package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTestToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestJWKSClient_VerificationDisabled_ParsesClaims(t *testing.T) {
	client, err := NewJWKSClient(&JWKSConfig{EnableVerification: false})
	require.NoError(t, err)

	claims := &Claims{
		Email: "admin@uplift.example",
		Roles: []string{RoleAdmin},
	}
	claims.Subject = "user-42"

	parsed, err := client.ValidateToken(signedTestToken(t, claims))
	require.NoError(t, err)
	assert.Equal(t, "user-42", parsed.Subject)
	assert.Equal(t, "admin@uplift.example", parsed.Email)
	assert.True(t, parsed.IsAdmin())
}

func TestJWKSClient_VerificationDisabled_GarbageToken(t *testing.T) {
	client, err := NewJWKSClient(&JWKSConfig{EnableVerification: false})
	require.NoError(t, err)

	_, err = client.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestJWKSClient_VerificationEnabled_RejectsHMAC(t *testing.T) {
	// An empty endpoint map means every issuer is unauthorized and HS256 is
	// rejected outright.
	verified, err := NewJWKSClient(&JWKSConfig{EnableVerification: true, JWKSEndpoints: map[string]string{}})
	require.NoError(t, err)

	claims := &Claims{}
	claims.Subject = "user-42"

	_, err = verified.ValidateToken(signedTestToken(t, claims))
	assert.Error(t, err)
}
