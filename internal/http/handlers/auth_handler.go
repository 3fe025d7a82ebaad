package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/befuji/studio-backend/internal/dto"
	"github.com/befuji/studio-backend/internal/http/handlers/common"
	"github.com/befuji/studio-backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Verify POST /admin/verify
// Сверяет пароль админ-панели и выдаёт токен доступа.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "пароль обязателен")
		return
	}

	token, expiresAt, err := h.auth.Verify(req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.OKResponse{OK: false})
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{
		OK:        true,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
