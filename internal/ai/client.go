package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/befuji/studio-backend/internal/models"
	"github.com/befuji/studio-backend/internal/pkg/apperror"
	"github.com/befuji/studio-backend/internal/validation"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion  = "2023-06-01"
)

// Client реализует сжатие отзывов через Anthropic Messages API.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewClient создаёт экземпляр клиента.
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: anthropicEndpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured сообщает, задан ли ключ API.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// CondenseReview сжимает текст отзыва до лимита поля text. Результат
// дополнительно обрезается: модель просят уложиться, но не верят на слово.
func (c *Client) CondenseReview(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(
		"Condense the following client review to %d characters or fewer. Keep the core meaning and tone. Output only the condensed review text, nothing else:\n\n%s",
		models.MaxReviewTextLength, text,
	)

	payload := messagesRequest{
		Model:     c.model,
		MaxTokens: 100,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeUpstream, "запрос к AI не удался")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", apperror.Wrap(
			fmt.Errorf("ai: статус %d: %s", resp.StatusCode, string(raw)),
			apperror.ErrCodeUpstream,
			"запрос к AI не удался",
		)
	}

	var parsed messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeUpstream, "ответ AI не распарсился")
	}

	var result string
	if len(parsed.Content) > 0 {
		result = parsed.Content[0].Text
	}
	return validation.Truncate(result, models.MaxReviewTextLength), nil
}
