package utils

import (
	"testing"
	"time"

	"gestaotemplate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() models.User {
	u := models.User{Email: "ana@example.com"}
	u.ID = "6f1c1c0e-0b7e-4c1e-9d63-8c1a2b3c4d5e"
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT(testUser(), "secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, testUser().ID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestParseJWTRejects(t *testing.T) {
	token, _, err := GenerateJWT(testUser(), "secret", time.Hour)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseJWT(token, "other")
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired, _, err := GenerateJWT(testUser(), "secret", -time.Minute)
		require.NoError(t, err)
		_, err = ParseJWT(expired, "secret")
		assert.Error(t, err)
	})

	t.Run("refresh token used as access token", func(t *testing.T) {
		refresh, err := GenerateRefreshToken(testUser(), "secret", time.Hour)
		require.NoError(t, err)
		_, err = ParseJWT(refresh, "secret")
		assert.Error(t, err)

		claims, err := ParseRefreshToken(refresh, "secret")
		require.NoError(t, err)
		assert.Equal(t, testUser().ID, claims.UserID)
	})

	t.Run("access token used as refresh token", func(t *testing.T) {
		_, err := ParseRefreshToken(token, "secret")
		assert.Error(t, err)
	})
}
