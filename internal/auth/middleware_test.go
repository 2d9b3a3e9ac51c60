package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/emulium/models"
)

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func newTestContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAuthDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Security.AuthEnabled = false
	mw := NewMiddleware(cfg)

	c, rec := newTestContext("")
	err := mw.RequireAuth(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := NewMiddleware(testConfig())

	c, _ := newTestContext("")
	err := mw.RequireAuth(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	mw := NewMiddleware(testConfig())

	c, _ := newTestContext("Token abc123")
	err := mw.RequireAuth(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	cfg := testConfig()
	mw := NewMiddleware(cfg)

	token, err := NewJWTService(cfg).GenerateToken(testUser())
	require.NoError(t, err)

	c, rec := newTestContext("Bearer "+token)
	err = mw.RequireAuth(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	claims, ok := GetClaims(c)
	require.True(t, ok)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", GetUsername(c))
	assert.True(t, CanWrite(c))
	assert.False(t, IsAdmin(c))
}

func TestRequireRoleForbidden(t *testing.T) {
	mw := NewMiddleware(testConfig())

	c, _ := newTestContext("")
	c.Set(ContextKeyClaims, &Claims{
		UserID:   "user:1",
		Username: "bob",
		Roles:    []models.Role{models.RoleStudent},
	})

	err := mw.RequireRole(models.RoleAdmin)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireRoleMissingClaims(t *testing.T) {
	mw := NewMiddleware(testConfig())

	c, _ := newTestContext("")
	err := mw.RequireRole(models.RoleAdmin)(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireWriteAllowsInstructor(t *testing.T) {
	mw := NewMiddleware(testConfig())

	c, rec := newTestContext("")
	c.Set(ContextKeyClaims, &Claims{
		UserID:   "user:2",
		Username: "carol",
		Roles:    []models.Role{models.RoleInstructor},
	})

	err := mw.RequireWrite(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireWriteRejectsStudent(t *testing.T) {
	mw := NewMiddleware(testConfig())

	c, _ := newTestContext("")
	c.Set(ContextKeyClaims, &Claims{
		UserID:   "user:3",
		Username: "dave",
		Roles:    []models.Role{models.RoleStudent},
	})

	err := mw.RequireWrite(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireRoleDisabledAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Security.AuthEnabled = false
	mw := NewMiddleware(cfg)

	c, rec := newTestContext("")
	err := mw.RequireRole(models.RoleAdmin)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUserIDWithoutClaims(t *testing.T) {
	c, _ := newTestContext("")
	_, ok := GetUserID(c)
	assert.False(t, ok)
	assert.Equal(t, "", GetUsername(c))
}
