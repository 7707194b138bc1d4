package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"artbook_backend/internal/auth"
	"artbook_backend/internal/config"
	"artbook_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = testSecret

	router := gin.New()
	authed := router.Group("/", AuthMiddleware())
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	artistOnly := authed.Group("/artist", RequireRoles(models.UserRoleArtist))
	artistOnly.GET("/profile", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	staff := authed.Group("/staff", RequireRoles(models.UserRoleArtist, models.UserRoleAdmin))
	staff.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter(t)

	token, err := auth.GenerateToken("user-1", string(models.UserRoleClient), testSecret, time.Hour)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		rec := doRequest(router, "/me", token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "user-1")
	})

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(router, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		rec := doRequest(router, "/me", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		forged, err := auth.GenerateToken("user-1", string(models.UserRoleAdmin), "another-secret", time.Hour)
		require.NoError(t, err)
		rec := doRequest(router, "/me", forged)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := auth.GenerateToken("user-1", string(models.UserRoleClient), testSecret, -time.Minute)
		require.NoError(t, err)
		rec := doRequest(router, "/me", expired)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	router := newTestRouter(t)

	clientToken, err := auth.GenerateToken("client-1", string(models.UserRoleClient), testSecret, time.Hour)
	require.NoError(t, err)
	artistToken, err := auth.GenerateToken("artist-1", string(models.UserRoleArtist), testSecret, time.Hour)
	require.NoError(t, err)
	adminToken, err := auth.GenerateToken("admin-1", string(models.UserRoleAdmin), testSecret, time.Hour)
	require.NoError(t, err)

	t.Run("matching role passes", func(t *testing.T) {
		rec := doRequest(router, "/artist/profile", artistToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		rec := doRequest(router, "/artist/profile", clientToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("any of several roles passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, doRequest(router, "/staff", artistToken).Code)
		assert.Equal(t, http.StatusOK, doRequest(router, "/staff", adminToken).Code)
		assert.Equal(t, http.StatusForbidden, doRequest(router, "/staff", clientToken).Code)
	})
}
