package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/befuji/studio-backend/internal/ai"
	"github.com/befuji/studio-backend/internal/dto"
	"github.com/befuji/studio-backend/internal/http/handlers/common"
	"github.com/befuji/studio-backend/internal/service"
	"github.com/befuji/studio-backend/internal/validation"
)

type ReviewHandler struct {
	reviews *service.ReviewService
	ai      *ai.Client
}

// NewReviewHandler создаёт handler отзывов. aiClient может быть nil, тогда
// endpoint сжатия отвечает 503.
func NewReviewHandler(reviews *service.ReviewService, aiClient *ai.Client) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, ai: aiClient}
}

// ListReviews GET /reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.ListReviews(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.NoStore(c)
	c.JSON(http.StatusOK, reviews)
}

// CreateReview POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "тело запроса не распарсилось")
		return
	}

	created, err := h.reviews.CreateReview(c.Request.Context(), req.Name, req.Service, req.Company, req.Text)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// UpdateReview PUT /admin/reviews
// Тело - либо перестановка {order: [...]}, либо патч {id, ...поля}.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req dto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "тело запроса не распарсилось")
		return
	}

	if req.IsReorder() {
		ordered, err := h.reviews.ReorderReviews(c.Request.Context(), req.Order)
		if err != nil {
			common.RespondAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, ordered)
		return
	}

	if req.ID == "" {
		common.RespondBadRequest(c, "id обязателен")
		return
	}

	updated, err := h.reviews.PatchReview(c.Request.Context(), req.ID, req.Fields)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ReorderReviews PATCH /admin/reviews
func (h *ReviewHandler) ReorderReviews(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Order == nil {
		common.RespondBadRequest(c, "order должен быть массивом id")
		return
	}

	if _, err := h.reviews.ReorderReviews(c.Request.Context(), req.Order); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// DeleteReview DELETE /admin/reviews
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "id обязателен")
		return
	}

	if err := h.reviews.DeleteReview(c.Request.Context(), req.ID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// SummarizeReview POST /reviews/summarize
// Прокидывает текст в AI и возвращает сжатую версию для формы отзыва.
func (h *ReviewHandler) SummarizeReview(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		common.RespondBadRequest(c, "текст обязателен")
		return
	}

	if err := validation.ValidateLength("текст", req.Text, 0, validation.MaxSummarizeTextLength); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if h.ai == nil || !h.ai.Configured() {
		common.RespondError(c, http.StatusServiceUnavailable, "AI не сконфигурирован")
		return
	}

	condensed, err := h.ai.CondenseReview(c.Request.Context(), req.Text)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SummarizeResponse{Text: condensed})
}
