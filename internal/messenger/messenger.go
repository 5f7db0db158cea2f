// Package messenger provides delivery clients for outbound messaging
// platforms (Telegram, WhatsApp).
//
// Senders never return a Go error for a failed delivery; the outcome is
// reported in the Result so callers can log and continue.
package messenger

import (
	"context"
	"regexp"
)

// Result is the outcome of one send attempt.
type Result struct {
	Success   bool
	MessageID string
	Error     string
}

// Sender delivers a message body to a platform destination.
type Sender interface {
	Send(ctx context.Context, destination, text string) Result
}

var markupRe = regexp.MustCompile(`<[^>]+>`)

// StripMarkup removes rich-text markers for plain-text-only platforms.
// Message formatting is platform-agnostic; plain-text senders strip markup
// before transmission.
func StripMarkup(text string) string {
	return markupRe.ReplaceAllString(text, "")
}
