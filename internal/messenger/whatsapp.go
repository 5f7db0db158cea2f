package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const whatsappAPIBase = "https://graph.facebook.com/v18.0"

// WhatsApp sends messages through the WhatsApp Business Cloud API.
// WhatsApp is a plain-text platform: markup is stripped before transmission.
type WhatsApp struct {
	baseURL    string
	phoneID    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWhatsApp creates a WhatsApp sender. baseURL may be empty to use the
// hosted Graph API.
func NewWhatsApp(baseURL, phoneID, token string, logger *slog.Logger) *WhatsApp {
	if baseURL == "" {
		baseURL = whatsappAPIBase
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WhatsApp{
		baseURL:    baseURL,
		phoneID:    phoneID,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type whatsappSendRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsappText `json:"text"`
}

type whatsappText struct {
	Body string `json:"body"`
}

type whatsappResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Send delivers a plain-text message to a phone number. Delivery failures
// are reported in the Result, never as an error.
func (w *WhatsApp) Send(ctx context.Context, to, text string) Result {
	payload := whatsappSendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             whatsappText{Body: StripMarkup(text)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("marshal request: %v", err)}
	}

	u := fmt.Sprintf("%s/%s/messages", w.baseURL, w.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := w.httpClient.Do(req)
	if err != nil {
		w.logger.Warn("WhatsApp send failed", "to", to, "error", err)
		return Result{Success: false, Error: err.Error()}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("read response: %v", err)}
	}

	var resp whatsappResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("decode response: %v", err)}
	}
	if resp.Error != nil {
		w.logger.Warn("WhatsApp send failed", "to", to, "error", resp.Error.Message)
		return Result{Success: false, Error: resp.Error.Message}
	}
	if httpResp.StatusCode != http.StatusOK {
		return Result{Success: false, Error: fmt.Sprintf("status %d", httpResp.StatusCode)}
	}

	var messageID string
	if len(resp.Messages) > 0 {
		messageID = resp.Messages[0].ID
	}
	return Result{Success: true, MessageID: messageID}
}
