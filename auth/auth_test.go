package auth

import (
	"testing"

	"github.com/sheharaF/Eventia-backend/middleware"
	"github.com/sheharaF/Eventia-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken_RoundTrip(t *testing.T) {
	user := models.User{UserID: "u123", Role: models.RoleVendor}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := middleware.ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.UserID)
	assert.Equal(t, models.RoleVendor, claims.Role)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestGenerateToken_DistinctPerUser(t *testing.T) {
	t1, err := GenerateToken(models.User{UserID: "u1", Role: models.RoleUser})
	require.NoError(t, err)
	t2, err := GenerateToken(models.User{UserID: "u2", Role: models.RoleUser})
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}
