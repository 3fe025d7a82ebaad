package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/befuji/studio-backend/internal/models"
	"github.com/befuji/studio-backend/internal/pkg/apperror"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("test-key", "claude-3-5-haiku-latest")
	c.endpoint = serverURL
	return c
}

func TestClient_Configured(t *testing.T) {
	assert.True(t, NewClient("key", "model").Configured())
	assert.False(t, NewClient("", "model").Configured())
}

func TestClient_CondenseReview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-3-5-haiku-latest", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "исходный текст отзыва")

		json.NewEncoder(w).Encode(messagesResponse{
			Content: []struct {
				Text string `json:"text"`
			}{{Text: "Сжатый отзыв"}},
		})
	}))
	defer srv.Close()

	condensed, err := newTestClient(srv.URL).CondenseReview(context.Background(), "исходный текст отзыва")
	assert.NoError(t, err)
	assert.Equal(t, "Сжатый отзыв", condensed)
}

func TestClient_CondenseReview_TruncatesOverlongAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(messagesResponse{
			Content: []struct {
				Text string `json:"text"`
			}{{Text: strings.Repeat("ы", 300)}},
		})
	}))
	defer srv.Close()

	condensed, err := newTestClient(srv.URL).CondenseReview(context.Background(), "текст")
	assert.NoError(t, err)
	assert.Equal(t, models.MaxReviewTextLength, utf8.RuneCountInString(condensed))
}

func TestClient_CondenseReview_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CondenseReview(context.Background(), "текст")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperror.HTTPStatusOf(err))
}

func TestClient_CondenseReview_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(messagesResponse{})
	}))
	defer srv.Close()

	condensed, err := newTestClient(srv.URL).CondenseReview(context.Background(), "текст")
	assert.NoError(t, err)
	assert.Empty(t, condensed)
}
