package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/befuji/studio-backend/internal/dto"
	"github.com/befuji/studio-backend/internal/service"
)

func newAuthTestRouter(password string) (*gin.Engine, *service.TokenManager) {
	gin.SetMode(gin.TestMode)

	tokens := service.NewTokenManager("test-secret", time.Hour)
	handler := NewAuthHandler(service.NewAuthService(password, "", tokens))

	r := gin.New()
	r.POST("/api/admin/verify", handler.Verify)
	return r, tokens
}

func TestAuthHandler_Verify_Success(t *testing.T) {
	r, tokens := newAuthTestRouter("s3cret")

	w := doJSON(r, "POST", "/api/admin/verify", gin.H{"password": "s3cret"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NoError(t, tokens.ParseAdmin(resp.Token))
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestAuthHandler_Verify_WrongPassword(t *testing.T) {
	r, _ := newAuthTestRouter("s3cret")

	w := doJSON(r, "POST", "/api/admin/verify", gin.H{"password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"ok":false}`, w.Body.String())
}

func TestAuthHandler_Verify_MissingPassword(t *testing.T) {
	r, _ := newAuthTestRouter("s3cret")

	w := doJSON(r, "POST", "/api/admin/verify", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
