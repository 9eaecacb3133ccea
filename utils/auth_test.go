package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenemind/portal_backend/middleware"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("secret123", "not-a-hash"))
}

func TestValidateTokenFromHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := middleware.GenerateJWT("jane@x.com", "Jane Doe", "patient")
	require.NoError(t, err)

	result := ValidateTokenFromHeader("Bearer " + token)
	assert.True(t, result.Valid)
	assert.Equal(t, "jane@x.com", result.Email)
	assert.Equal(t, "Jane Doe", result.Name)
	assert.Equal(t, "patient", result.UserType)
	require.NotNil(t, result.ExpiresAt)

	assert.False(t, ValidateTokenFromHeader("").Valid)
	assert.False(t, ValidateTokenFromHeader(token).Valid) // missing Bearer prefix
	assert.False(t, ValidateTokenFromHeader("Bearer garbage").Valid)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := middleware.GenerateJWT("jane@x.com", "Jane Doe", "patient")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	assert.False(t, ValidateToken(token).Valid)
}
