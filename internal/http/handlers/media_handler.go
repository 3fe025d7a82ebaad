package handlers

import (
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/befuji/studio-backend/internal/dto"
	"github.com/befuji/studio-backend/internal/http/handlers/common"
	"github.com/befuji/studio-backend/internal/logger"
	"github.com/befuji/studio-backend/internal/models"
	"github.com/befuji/studio-backend/internal/pkg/apperror"
	"github.com/befuji/studio-backend/internal/service"
	"github.com/befuji/studio-backend/internal/storage"
	"github.com/befuji/studio-backend/internal/validation"
)

// MediaHandler обслуживает загрузку и отдачу видеофайлов портфолио.
type MediaHandler struct {
	store          *storage.ObjectStorage
	uploadTTL      time.Duration
	maxUploadBytes int64
	allowedOrigins []string
}

func NewMediaHandler(store *storage.ObjectStorage, uploadTTL time.Duration, maxUploadMB int64, allowedOrigins []string) *MediaHandler {
	return &MediaHandler{
		store:          store,
		uploadTTL:      uploadTTL,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
		allowedOrigins: allowedOrigins,
	}
}

// UploadURL GET /admin/upload-url?filename=...
// Выдаёт подписанный URL для прямой загрузки видео из браузера в бакет.
func (h *MediaHandler) UploadURL(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		common.RespondBadRequest(c, "параметр filename обязателен")
		return
	}

	contentType, err := validation.VideoContentType(filename)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	key := validation.SanitizeObjectKey(filename)
	url, err := h.store.PresignPutURL(c.Request.Context(), key, contentType, h.uploadTTL)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadURLResponse{
		URL:         url,
		Key:         key,
		PublicURL:   "/api/videos/" + key,
		ContentType: contentType,
	})
}

// Upload POST /admin/upload
// Запасной путь загрузки небольших файлов через сервер. Тип файла
// проверяется по содержимому, не только по расширению.
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "файл не передан")
		return
	}

	contentType, err := validation.VideoContentType(fileHeader.Filename)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if fileHeader.Size > h.maxUploadBytes {
		common.RespondBadRequest(c, "файл больше лимита загрузки")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if !filetype.IsVideo(data) {
		common.RespondBadRequest(c, "содержимое файла не похоже на видео")
		return
	}

	key := validation.SanitizeObjectKey(fileHeader.Filename)
	if err := h.store.PutObject(c.Request.Context(), key, data, contentType); err != nil {
		common.RespondAppError(c, err)
		return
	}

	base := strings.TrimSuffix(key, path.Ext(key))
	c.JSON(http.StatusOK, models.Project{
		ID:    base,
		Title: service.TitleFromKey(base),
		Video: "/api/videos/" + key,
	})
}

// StreamVideo GET /videos/:key
// Проксирует видеообъект из бакета с поддержкой Range запросов, чтобы
// плеер мог перематывать.
func (h *MediaHandler) StreamVideo(c *gin.Context) {
	key := c.Param("key")
	rangeHeader := c.GetHeader("Range")

	obj, err := h.store.OpenObject(c.Request.Context(), key, rangeHeader)
	if err != nil {
		if apperror.IsNotFound(err) {
			common.RespondNotFound(c, "видео не найдено")
			return
		}
		common.RespondAppError(c, err)
		return
	}
	defer obj.Body.Close()

	c.Header("Content-Type", obj.ContentType)
	c.Header("Accept-Ranges", "bytes")
	c.Header("Cache-Control", "public, max-age=86400")
	if obj.ContentLength != nil {
		c.Header("Content-Length", strconv.FormatInt(*obj.ContentLength, 10))
	}
	if obj.ContentRange != "" {
		c.Header("Content-Range", obj.ContentRange)
	}

	status := http.StatusOK
	if rangeHeader != "" {
		status = http.StatusPartialContent
	}
	c.Status(status)

	if _, err := io.Copy(c.Writer, obj.Body); err != nil {
		// Клиент часто бросает соединение на перемотке, это не ошибка сервиса.
		logger.WithComponent("media").Debugf("отдача %s прервана: %v", key, err)
	}
}

// ListMedia GET /admin/media
// Инвентарь видеофайлов бакета для админ-панели.
func (h *MediaHandler) ListMedia(c *gin.Context) {
	videos, err := h.store.ListVideoKeys(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if videos == nil {
		videos = []storage.VideoObject{}
	}
	c.JSON(http.StatusOK, videos)
}

// SetupCORS POST /admin/setup-cors
// Настраивает бакет для прямых загрузок с разрешённых origins.
func (h *MediaHandler) SetupCORS(c *gin.Context) {
	if err := h.store.SetupCORS(c.Request.Context(), h.allowedOrigins); err != nil {
		logger.WithComponent("media").Errorf("настройка CORS бакета: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}
