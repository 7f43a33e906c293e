package auth

import (
	"testing"
	"time"

	"github.com/ahaven/authors-haven-api/internal/config"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:           "test-secret",
			ExpireHours:         1,
			RememberExpireHours: 24,
			Issuer:              "test",
		},
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, "alice", model.RoleAdmin, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "test", claims.Issuer)
}

func TestRememberExtendsExpiry(t *testing.T) {
	short, err := GenerateToken(1, "alice", model.RoleUser, false)
	require.NoError(t, err)
	long, err := GenerateToken(1, "alice", model.RoleUser, true)
	require.NoError(t, err)

	shortClaims, err := ParseToken(short)
	require.NoError(t, err)
	longClaims, err := ParseToken(long)
	require.NoError(t, err)

	assert.Greater(t, longClaims.ExpiresAt, shortClaims.ExpiresAt)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(1, "alice", model.RoleUser, false)
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	UseBlacklist(NewMemoryBlacklist())

	token, err := GenerateToken(7, "bob", model.RoleUser, false)
	require.NoError(t, err)

	_, err = ParseToken(token)
	require.NoError(t, err)

	require.NoError(t, RevokeToken(token))

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestMemoryBlacklistExpiry(t *testing.T) {
	b := NewMemoryBlacklist()
	require.NoError(t, b.AddToBlacklist("stale", time.Now().Add(-time.Minute)))
	assert.False(t, b.IsBlacklisted("stale"))

	require.NoError(t, b.AddToBlacklist("fresh", time.Now().Add(time.Minute)))
	assert.True(t, b.IsBlacklisted("fresh"))
}
