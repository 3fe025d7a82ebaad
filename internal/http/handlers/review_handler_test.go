package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/befuji/studio-backend/internal/models"
	"github.com/befuji/studio-backend/internal/service"
	"github.com/befuji/studio-backend/internal/store"
)

func newReviewTestRouter(t *testing.T, seed []models.Review) (*gin.Engine, *store.Collection[models.Review]) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	collection := store.NewCollection[models.Review](newMemoryObjectStore(), store.ReviewsKey, "", store.ReorderKeepMissing)
	if seed != nil {
		require.NoError(t, collection.Write(context.Background(), seed))
	}

	handler := NewReviewHandler(service.NewReviewService(collection, nil), nil)

	r := gin.New()
	r.GET("/api/reviews", handler.ListReviews)
	r.POST("/api/reviews", handler.CreateReview)
	r.POST("/api/reviews/summarize", handler.SummarizeReview)
	r.PUT("/api/admin/reviews", handler.UpdateReview)
	r.PATCH("/api/admin/reviews", handler.ReorderReviews)
	r.DELETE("/api/admin/reviews", handler.DeleteReview)
	return r, collection
}

func TestReviewHandler_ListReviews(t *testing.T) {
	seed := []models.Review{{ID: "r1", Name: "Анна", Text: "Отлично"}}
	r, _ := newReviewTestRouter(t, seed)

	w := doJSON(r, "GET", "/api/reviews", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

	var got []models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, seed, got)
}

func TestReviewHandler_CreateReview(t *testing.T) {
	r, collection := newReviewTestRouter(t, nil)

	w := doJSON(r, "POST", "/api/reviews", gin.H{
		"name":    "Анна",
		"service": "Motion design",
		"company": "Acme",
		"text":    "Отличная работа, рекомендую!",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var created models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, strings.HasPrefix(created.ID, "r"))
	assert.False(t, created.Featured)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, created.CreatedAt)

	records, err := collection.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, created, records[0])
}

func TestReviewHandler_CreateReview_TruncatesLongText(t *testing.T) {
	r, _ := newReviewTestRouter(t, nil)

	w := doJSON(r, "POST", "/api/reviews", gin.H{
		"name":    "Анна",
		"service": "монтаж",
		"text":    strings.Repeat("ж", 500),
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var created models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.MaxReviewTextLength, utf8.RuneCountInString(created.Text))
}

func TestReviewHandler_CreateReview_MissingFields(t *testing.T) {
	r, _ := newReviewTestRouter(t, nil)

	w := doJSON(r, "POST", "/api/reviews", gin.H{"name": "Анна"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandler_UpdateReview_Patch(t *testing.T) {
	seed := []models.Review{{ID: "r1", Name: "Анна", Featured: false}}
	r, _ := newReviewTestRouter(t, seed)

	w := doJSON(r, "PUT", "/api/admin/reviews", gin.H{"id": "r1", "featured": true})

	assert.Equal(t, http.StatusOK, w.Code)
	var updated models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.Featured)
	assert.Equal(t, "Анна", updated.Name)
}

func TestReviewHandler_UpdateReview_UnknownID(t *testing.T) {
	r, _ := newReviewTestRouter(t, []models.Review{{ID: "r1"}})

	w := doJSON(r, "PUT", "/api/admin/reviews", gin.H{"id": "ghost", "featured": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_UpdateReview_ReorderKeepsUnlisted(t *testing.T) {
	seed := []models.Review{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}
	r, _ := newReviewTestRouter(t, seed)

	w := doJSON(r, "PUT", "/api/admin/reviews", gin.H{"order": []string{"r3", "r1"}})

	assert.Equal(t, http.StatusOK, w.Code)
	var ordered []models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ordered))
	require.Len(t, ordered, 3)
	assert.Equal(t, "r3", ordered[0].ID)
	assert.Equal(t, "r1", ordered[1].ID)
	assert.Equal(t, "r2", ordered[2].ID)
}

func TestReviewHandler_ReorderReviews_PATCH(t *testing.T) {
	seed := []models.Review{{ID: "r1"}, {ID: "r2"}}
	r, collection := newReviewTestRouter(t, seed)

	w := doJSON(r, "PATCH", "/api/admin/reviews", gin.H{"order": []string{"r2", "r1"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	records, err := collection.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "r2", records[0].ID)
}

func TestReviewHandler_ReorderReviews_InvalidBody(t *testing.T) {
	r, _ := newReviewTestRouter(t, nil)

	w := doJSON(r, "PATCH", "/api/admin/reviews", gin.H{"order": "не массив"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandler_DeleteReview(t *testing.T) {
	seed := []models.Review{{ID: "r1"}, {ID: "r2"}}
	r, collection := newReviewTestRouter(t, seed)

	w := doJSON(r, "DELETE", "/api/admin/reviews", gin.H{"id": "r1"})

	assert.Equal(t, http.StatusOK, w.Code)
	records, err := collection.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r2", records[0].ID)
}

func TestReviewHandler_Summarize_EmptyText(t *testing.T) {
	r, _ := newReviewTestRouter(t, nil)

	w := doJSON(r, "POST", "/api/reviews/summarize", gin.H{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandler_Summarize_Unconfigured(t *testing.T) {
	r, _ := newReviewTestRouter(t, nil)

	w := doJSON(r, "POST", "/api/reviews/summarize", gin.H{"text": "длинный отзыв"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReviewHandler_Summarize_TooLong(t *testing.T) {
	r, _ := newReviewTestRouter(t, nil)

	w := doJSON(r, "POST", "/api/reviews/summarize", gin.H{"text": strings.Repeat("a", 5001)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
