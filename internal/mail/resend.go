package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/befuji/studio-backend/internal/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// Client отправляет транзакционные письма через Resend API.
type Client struct {
	apiKey     string
	from       string
	to         string
	endpoint   string
	httpClient *http.Client
}

// NewClient создаёт почтовый клиент. from - адрес отправителя,
// to - ящик студии, куда падают уведомления.
func NewClient(apiKey, from, to string) *Client {
	return &Client{
		apiKey:   apiKey,
		from:     from,
		to:       to,
		endpoint: resendEndpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured сообщает, задан ли ключ API и адрес получателя.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.to != ""
}

// NotifyReviewCreated отправляет в студию письмо о новом отзыве.
func (c *Client) NotifyReviewCreated(ctx context.Context, review models.Review) error {
	subject := fmt.Sprintf("Новый отзыв от %s", review.Name)
	body := fmt.Sprintf(
		"<p><strong>%s</strong> (%s)</p><p>Услуга: %s</p><blockquote>%s</blockquote><p>%s</p>",
		html.EscapeString(review.Name),
		html.EscapeString(review.Company),
		html.EscapeString(review.Service),
		html.EscapeString(review.Text),
		review.CreatedAt,
	)
	return c.send(ctx, subject, body, "")
}

// SendContactMessage пересылает сообщение из контактной формы.
func (c *Client) SendContactMessage(ctx context.Context, name, email, message string) error {
	subject := fmt.Sprintf("Сообщение с сайта от %s", name)
	body := fmt.Sprintf(
		"<p><strong>%s</strong> &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(name),
		html.EscapeString(email),
		html.EscapeString(message),
	)
	return c.send(ctx, subject, body, email)
}

// send выполняет запрос к Resend. Ретраев нет: неудачная отправка - это
// ошибка вызывающего сценария, письмо не переживает процесс.
func (c *Client) send(ctx context.Context, subject, htmlBody, replyTo string) error {
	if !c.Configured() {
		return fmt.Errorf("mail: клиент не сконфигурирован")
	}

	payload := map[string]any{
		"from":    c.from,
		"to":      []string{c.to},
		"subject": subject,
		"html":    htmlBody,
	}
	if replyTo != "" {
		payload["reply_to"] = replyTo
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail: запрос к Resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mail: Resend вернул %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
