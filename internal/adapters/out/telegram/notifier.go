// Package telegram delivers owner notifications through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const requestTimeout = 5 * time.Second

// Notifier sends chat messages via the Bot API sendMessage method.
// Delivery is best effort: callers fire it after their transaction commits
// and only get back whether the message went out.
type Notifier struct {
	apiURL string
	client *http.Client
	logger *slog.Logger
}

// NewNotifier creates a notifier for the given bot token.
func NewNotifier(botToken string, logger *slog.Logger) *Notifier {
	return &Notifier{
		apiURL: fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", botToken),
		client: &http.Client{Timeout: requestTimeout},
		logger: logger.With("component", "telegram_notifier"),
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Notify posts the text to the chat and reports whether delivery succeeded.
// Failures are logged, never returned as errors.
func (n *Notifier) Notify(ctx context.Context, chatID, text string) bool {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to encode notification", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, bytes.NewReader(body))
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to build notification request", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to send notification", "chat_id", chatID, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.logger.ErrorContext(ctx, "Telegram rejected notification",
			"chat_id", chatID, "status", resp.StatusCode)
		return false
	}

	return true
}
