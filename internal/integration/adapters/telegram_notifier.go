package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spaarbot/backend/internal/application/adapter"
)

// defaultBotAPIBaseURL is the production Telegram Bot API endpoint.
const defaultBotAPIBaseURL = "https://api.telegram.org"

// telegramNotifier implements adapter.TelegramNotifier over the Bot API.
type telegramNotifier struct {
	botToken string
	baseURL  string
	client   *http.Client
}

// NewTelegramNotifier creates a new Telegram Bot API notifier.
func NewTelegramNotifier(botToken string) adapter.TelegramNotifier {
	return &telegramNotifier{
		botToken: botToken,
		baseURL:  defaultBotAPIBaseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewTelegramNotifierWithBaseURL creates a notifier against a custom API
// endpoint. Used in tests.
func NewTelegramNotifierWithBaseURL(botToken, baseURL string) adapter.TelegramNotifier {
	return &telegramNotifier{
		botToken: botToken,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage delivers a plain-text message to the given Telegram chat.
func (n *telegramNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach telegram: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var apiResp sendMessageResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("unexpected telegram response: %w", err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram rejected message: %s", apiResp.Description)
	}

	return nil
}
