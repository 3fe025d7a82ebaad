package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/befuji/studio-backend/internal/service"
)

func newProtectedRouter(tokens *service.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAdminAuthMiddleware_NoHeader(t *testing.T) {
	r := newProtectedRouter(service.NewTokenManager("secret", time.Hour))

	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthMiddleware_BadToken(t *testing.T) {
	r := newProtectedRouter(service.NewTokenManager("secret", time.Hour))

	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthMiddleware_ValidToken(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Hour)
	r := newProtectedRouter(tokens)

	token, _, err := tokens.GenerateAdmin()
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuthMiddleware_ForeignSecret(t *testing.T) {
	r := newProtectedRouter(service.NewTokenManager("secret", time.Hour))

	token, _, err := service.NewTokenManager("other", time.Hour).GenerateAdmin()
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
