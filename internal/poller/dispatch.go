package poller

import (
	"context"
	"log/slog"

	"github.com/goalfeed-app/goalfeed/internal/store"
)

// dispatch sends a message via the channel's platform sender, then records a
// delivery log row with the outcome. The log write happens regardless of the
// send result. A failed send is logged, never retried, never escalated.
// Returns whether the delivery succeeded.
func (p *Poller) dispatch(ctx context.Context, logger *slog.Logger, channel store.Channel, message, eventType, matchID string) bool {
	sender, ok := p.senders[channel.Platform]
	if !ok {
		logger.Warn("No sender for platform", "channel", channel.Name, "platform", channel.Platform)
		return false
	}

	result := sender.Send(ctx, channel.ChatID, message)

	status := store.PostStatusSent
	if !result.Success {
		status = store.PostStatusFailed
	}
	if err := p.posts.Append(ctx, channel.ID, message, eventType, matchID, status); err != nil {
		logger.Warn("Post log write failed", "channel", channel.Name, "error", err)
	}

	if !result.Success {
		logger.Warn("Delivery failed",
			"channel", channel.Name, "platform", channel.Platform,
			"event_type", eventType, "match_id", matchID, "error", result.Error)
	}
	return result.Success
}
