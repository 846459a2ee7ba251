package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookSink отправляет сообщения во внешний почтовый шлюз по HTTP
type WebhookSink struct {
	url        string
	httpClient *http.Client
	log        Logger
}

// NewWebhookSink создает клиент шлюза уведомлений
func NewWebhookSink(url string, timeout time.Duration, log Logger) *WebhookSink {
	return &WebhookSink{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Publish отправляет сообщение POST-запросом с JSON телом
func (s *WebhookSink) Publish(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrPublish, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrPublish, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", msg.ID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrPublish, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		respBody, _ := io.ReadAll(resp.Body)
		s.log.Warn("Notification gateway rejected message id=%s: %s", msg.ID, string(respBody))
		return fmt.Errorf("%w: gateway rejected message: %s", ErrInvalidResponse, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
