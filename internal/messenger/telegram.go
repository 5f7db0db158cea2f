package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram sends messages through the Telegram Bot API. The bot must be an
// administrator of every destination channel.
type Telegram struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewTelegram creates a Telegram sender. baseURL may be empty to use the
// hosted Bot API.
func NewTelegram(baseURL, token string, logger *slog.Logger) *Telegram {
	if baseURL == "" {
		baseURL = telegramAPIBase
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Telegram{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type telegramSendRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64  `json:"message_id"`
		Title     string `json:"title"`
	} `json:"result"`
}

// Send delivers an HTML-formatted message to a chat. Delivery failures are
// reported in the Result, never as an error.
func (t *Telegram) Send(ctx context.Context, chatID, text string) Result {
	payload := telegramSendRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}

	resp, err := t.post(ctx, "/sendMessage", payload)
	if err != nil {
		t.logger.Warn("Telegram send failed", "chat_id", chatID, "error", err)
		return Result{Success: false, Error: err.Error()}
	}
	return Result{
		Success:   true,
		MessageID: fmt.Sprintf("%d", resp.Result.MessageID),
	}
}

// VerifyChannel checks that a chat_id is reachable by the bot. Used by the
// management API before persisting a new channel.
func (t *Telegram) VerifyChannel(ctx context.Context, chatID string) (title string, err error) {
	u := fmt.Sprintf("%s/bot%s/getChat?%s", t.baseURL, t.token,
		url.Values{"chat_id": {chatID}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpResp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("getChat: %w", err)
	}
	defer httpResp.Body.Close()

	var resp telegramResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("decode getChat response: %w", err)
	}
	if !resp.OK {
		return "", fmt.Errorf("telegram: %s", resp.Description)
	}
	if resp.Result.Title == "" {
		return chatID, nil
	}
	return resp.Result.Title, nil
}

func (t *Telegram) post(ctx context.Context, method string, payload interface{}) (*telegramResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	u := fmt.Sprintf("%s/bot%s%s", t.baseURL, t.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp telegramResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !resp.OK {
		if resp.Description != "" {
			return nil, fmt.Errorf("telegram: %s", resp.Description)
		}
		return nil, fmt.Errorf("telegram: status %d", httpResp.StatusCode)
	}
	return &resp, nil
}
