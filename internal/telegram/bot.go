package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"futarinavi/internal/logger"
)

const defaultAPIBase = "https://api.telegram.org"

// Bot posts messages to a single chat through the Bot API.
type Bot struct {
	Token   string
	ChatID  string
	Enabled bool
	APIBase string
	Client  *http.Client
}

// NewBot returns a bot that is disabled unless both token and chat id are set.
func NewBot(token, chatID string) *Bot {
	return &Bot{
		Token:   token,
		ChatID:  chatID,
		Enabled: token != "" && chatID != "",
		APIBase: defaultAPIBase,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers text. A disabled bot drops the message.
func (b *Bot) Send(ctx context.Context, text string) error {
	if !b.Enabled {
		logger.Debug("telegram: bot disabled, message dropped", nil)
		return nil
	}
	body, err := json.Marshal(sendMessage{ChatID: b.ChatID, Text: text})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", b.APIBase, b.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		// the URL carries the token; keep it out of the error
		return fmt.Errorf("telegram: request failed")
	}
	defer resp.Body.Close()

	var ar apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return fmt.Errorf("telegram: status %d", resp.StatusCode)
	}
	if !ar.OK {
		return fmt.Errorf("telegram: %s", ar.Description)
	}
	return nil
}
