package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/befuji/studio-backend/internal/dto"
	"github.com/befuji/studio-backend/internal/logger"
	"github.com/befuji/studio-backend/internal/pkg/apperror"
)

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}

// RespondNotFound sends a 404 Not Found response
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "ресурс не найден"
	}
	RespondError(c, http.StatusNotFound, message)
}

// RespondUnauthorized sends a 401 Unauthorized response
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondInternalError sends a 500 Internal Server Error response
func RespondInternalError(c *gin.Context, message string) {
	if message == "" {
		message = "внутренняя ошибка сервера"
	}
	RespondError(c, http.StatusInternalServerError, message)
}

// RespondAppError маппит ошибку приложения на HTTP статус. Внутренние ошибки
// логируются и маскируются общим сообщением.
func RespondAppError(c *gin.Context, err error) {
	status := apperror.HTTPStatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.WithComponent("http").Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	if status == http.StatusInternalServerError {
		RespondInternalError(c, "")
		return
	}

	message := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	RespondError(c, status, message)
}

// NoStore запрещает промежуточное кэширование ответа.
func NoStore(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
}
