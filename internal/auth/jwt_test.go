package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/emulium/internal/config"
	"evalgo.org/emulium/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			AuthEnabled:            true,
			JWTSecret:              "test-secret-for-unit-tests",
			JWTExpiration:          time.Hour,
			RefreshTokenExpiration: 24 * time.Hour,
		},
	}
}

func testUser() *models.User {
	return models.NewUser("alice", "alice@lab.example", []models.Role{models.RoleInstructor})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testConfig())
	user := testUser()

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []models.Role{models.RoleInstructor}, claims.Roles)
	assert.Equal(t, "emulium", claims.Issuer)
}

func TestGenerateTokenDisabledUser(t *testing.T) {
	svc := NewJWTService(testConfig())
	user := testUser()
	user.Enabled = false

	_, err := svc.GenerateToken(user)
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService(testConfig())
	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	other := testConfig()
	other.Security.JWTSecret = "a-different-secret"

	_, err = NewJWTService(other).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.Security.JWTExpiration = -time.Hour
	svc := NewJWTService(cfg)

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService(testConfig())

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := NewJWTService(testConfig())

	pair, refresh, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, refresh, pair.RefreshToken)
	assert.NotEmpty(t, pair.AccessToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	hash, err := svc.HashRefreshToken(refresh)
	require.NoError(t, err)
	assert.NoError(t, svc.CompareRefreshToken(refresh, hash))
	assert.Error(t, svc.CompareRefreshToken("stolen", hash))
}

func TestGenerateServiceToken(t *testing.T) {
	token, err := GenerateServiceToken("test-secret-for-unit-tests", "ci-pipeline",
		[]models.Role{models.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	claims, err := NewJWTService(testConfig()).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "service:ci-pipeline", claims.UserID)
	assert.Equal(t, "emulium-cli", claims.Issuer)
	assert.Equal(t, []models.Role{models.RoleAdmin}, claims.Roles)
}

func TestGenerateServiceTokenRequiresSecret(t *testing.T) {
	_, err := GenerateServiceToken("", "ci", nil, time.Hour)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, ComparePassword("correct horse battery staple", hash))
	assert.ErrorIs(t, ComparePassword("wrong", hash), ErrInvalidCredentials)
}

func TestAPIKeyLifecycle(t *testing.T) {
	key, err := GenerateAPIKey()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "ek_"))

	hash, err := HashAPIKey(key)
	require.NoError(t, err)
	assert.NoError(t, CompareAPIKey(key, hash))
	assert.Error(t, CompareAPIKey("ek_forged", hash))

	prefix := KeyPrefix(key)
	assert.Len(t, prefix, 11)
	assert.True(t, strings.HasPrefix(key, prefix))
}
