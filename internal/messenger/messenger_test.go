package messenger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "GOAL! Arsenal 2–1 Chelsea",
		StripMarkup("<b>GOAL! Arsenal 2–1 Chelsea</b>"))
	assert.Equal(t, "Bet on this match",
		StripMarkup(`<a href="https://bets.example/abc">Bet on this match</a>`))
	assert.Equal(t, "plain text untouched", StripMarkup("plain text untouched"))
}

// --------------------------------------------------------------------------
// Telegram
// --------------------------------------------------------------------------

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotBody telegramSendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"message_id":987}}`))
	}))
	defer srv.Close()

	tg := NewTelegram(srv.URL, "test-token", nil)
	result := tg.Send(context.Background(), "@mychannel", "<b>hello</b>")

	assert.True(t, result.Success)
	assert.Equal(t, "987", result.MessageID)
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "@mychannel", gotBody.ChatID)
	assert.Equal(t, "<b>hello</b>", gotBody.Text)
	assert.Equal(t, "HTML", gotBody.ParseMode)
	assert.True(t, gotBody.DisableWebPagePreview)
}

func TestTelegramSendFailureReturnsResultNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	tg := NewTelegram(srv.URL, "test-token", nil)
	result := tg.Send(context.Background(), "@missing", "hello")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "chat not found")
}

func TestTelegramVerifyChannel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getChat", r.URL.Path)
		assert.Equal(t, "@mychannel", r.URL.Query().Get("chat_id"))
		w.Write([]byte(`{"ok":true,"result":{"title":"My Channel"}}`))
	}))
	defer srv.Close()

	tg := NewTelegram(srv.URL, "test-token", nil)
	title, err := tg.VerifyChannel(context.Background(), "@mychannel")
	require.NoError(t, err)
	assert.Equal(t, "My Channel", title)
}

func TestTelegramVerifyChannelRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Forbidden: bot is not a member"}`))
	}))
	defer srv.Close()

	tg := NewTelegram(srv.URL, "test-token", nil)
	_, err := tg.VerifyChannel(context.Background(), "@private")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot is not a member")
}

// --------------------------------------------------------------------------
// WhatsApp
// --------------------------------------------------------------------------

func TestWhatsAppSendStripsMarkup(t *testing.T) {
	var gotAuth string
	var gotBody whatsappSendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/phone-123/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"messages":[{"id":"wamid.abc"}]}`))
	}))
	defer srv.Close()

	wa := NewWhatsApp(srv.URL, "phone-123", "secret-token", nil)
	result := wa.Send(context.Background(), "15550001111", "<b>GOAL!</b> Arsenal lead")

	assert.True(t, result.Success)
	assert.Equal(t, "wamid.abc", result.MessageID)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "whatsapp", gotBody.MessagingProduct)
	assert.Equal(t, "15550001111", gotBody.To)
	assert.Equal(t, "GOAL! Arsenal lead", gotBody.Text.Body, "markup stripped for plain-text platform")
}

func TestWhatsAppSendFailureReturnsResultNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	wa := NewWhatsApp(srv.URL, "phone-123", "bad-token", nil)
	result := wa.Send(context.Background(), "15550001111", "hello")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Invalid OAuth access token")
}
