package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/befuji/studio-backend/internal/dto"
	"github.com/befuji/studio-backend/internal/http/handlers/common"
	"github.com/befuji/studio-backend/internal/logger"
	"github.com/befuji/studio-backend/internal/mail"
	"github.com/befuji/studio-backend/internal/validation"
)

type ContactHandler struct {
	mailer *mail.Client
}

func NewContactHandler(mailer *mail.Client) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

// SendMessage POST /contact
// Пересылает сообщение контактной формы на ящик студии.
func (h *ContactHandler) SendMessage(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "тело запроса не распарсилось")
		return
	}

	if err := validation.ValidateNonEmpty("имя", req.Name); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateNonEmpty("сообщение", req.Message); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateLength("сообщение", req.Message, 0, validation.MaxContactMessageLength); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if h.mailer == nil || !h.mailer.Configured() {
		common.RespondError(c, http.StatusServiceUnavailable, "почта не сконфигурирована")
		return
	}

	if err := h.mailer.SendContactMessage(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
		logger.WithComponent("contact").Errorf("отправка сообщения не удалась: %v", err)
		common.RespondError(c, http.StatusBadGateway, "сообщение не отправилось, попробуйте позже")
		return
	}

	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}
