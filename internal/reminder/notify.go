package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"futarinavi/internal/logger"
	"futarinavi/internal/telegram"
)

// LogNotifier writes digests to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, d Digest) error {
	logger.Info("reminder digest", map[string]interface{}{
		"plan_id": d.PlanID,
		"items":   len(d.Items),
		"overdue": d.Overdue,
		"urgent":  d.Urgent,
		"soon":    d.Soon,
	})
	return nil
}

// WebhookNotifier POSTs the digest as JSON.
type WebhookNotifier struct {
	URL       string
	UserAgent string
	Client    *http.Client
}

// NewWebhookNotifier posts to url with a 10s client timeout.
func NewWebhookNotifier(url, userAgent string) *WebhookNotifier {
	return &WebhookNotifier{URL: url, UserAgent: userAgent, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (n *WebhookNotifier) Notify(ctx context.Context, d Digest) error {
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.UserAgent != "" {
		req.Header.Set("User-Agent", n.UserAgent)
	}
	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: status %d", resp.StatusCode)
	}
	return nil
}

// TelegramNotifier sends the digest text to one chat.
type TelegramNotifier struct {
	Bot *telegram.Bot
}

func (n TelegramNotifier) Notify(ctx context.Context, d Digest) error {
	return n.Bot.Send(ctx, d.Text)
}

// MultiNotifier fans a digest out to several notifiers and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, d Digest) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
