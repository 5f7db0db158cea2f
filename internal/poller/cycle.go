package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Run executes one poll cycle and returns a summary. The only error it
// returns is a failure to reach the event source or the channel store —
// failures for individual fixtures and channels are logged and isolated, so
// one bad fixture cannot abort the remaining work.
func (p *Poller) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	logger := p.logger.With("cycle_id", uuid.NewString()[:8])

	var summary Summary

	fixtures, err := p.source.LiveFixtures(ctx)
	if err != nil {
		summary.Duration = time.Since(start)
		return summary, fmt.Errorf("fetch live fixtures: %w", err)
	}
	summary.Matched = len(fixtures)
	logger.Info("Poll cycle started", "live_fixtures", len(fixtures))

	if len(fixtures) == 0 {
		p.expireLedger(ctx, logger, &summary)
		summary.Duration = time.Since(start)
		return summary, nil
	}

	// One channel snapshot per cycle: every fixture in this pass sees the
	// same configuration even if the management API changes it mid-cycle.
	channels, err := p.channels.ListActive(ctx)
	if err != nil {
		summary.Duration = time.Since(start)
		return summary, fmt.Errorf("list active channels: %w", err)
	}

	if len(channels) == 0 {
		logger.Info("No active channels, skipping fixture processing")
	} else {
		for _, fixture := range fixtures {
			dispatched := p.processFixture(ctx, logger, fixture, channels)
			summary.Dispatched += dispatched
		}
	}

	p.expireLedger(ctx, logger, &summary)
	summary.Duration = time.Since(start)
	logger.Info("Poll cycle complete", "summary", summary.String())
	return summary, nil
}

// expireLedger garbage-collects old ledger entries. Runs unconditionally on
// every cycle; it is cheap and avoids a second scheduled job.
func (p *Poller) expireLedger(ctx context.Context, logger *slog.Logger, summary *Summary) {
	expired, err := p.ledger.DeleteOlderThan(ctx, p.maxAge)
	if err != nil {
		logger.Warn("Ledger expiry failed", "error", err)
		return
	}
	summary.Expired = expired
	if expired > 0 {
		logger.Info("Expired tracked events", "count", expired)
	}
}
