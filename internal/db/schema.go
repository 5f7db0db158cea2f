package db

import (
	"context"
	"fmt"
)

// schema is applied idempotently on startup. The poll pipeline relies on the
// UNIQUE constraint on tracked_events.event_key for insert-or-ignore dedup.
const schema = `
CREATE TABLE IF NOT EXISTS channels (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	platform TEXT NOT NULL CHECK (platform IN ('telegram', 'whatsapp')),
	chat_id TEXT NOT NULL,
	active BOOLEAN NOT NULL DEFAULT true,
	post_goals BOOLEAN NOT NULL DEFAULT true,
	post_cards BOOLEAN NOT NULL DEFAULT true,
	post_lineups BOOLEAN NOT NULL DEFAULT true,
	post_fulltime BOOLEAN NOT NULL DEFAULT true,
	post_subs BOOLEAN NOT NULL DEFAULT false,
	affiliate_link TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS leagues (
	id SERIAL PRIMARY KEY,
	league_id INTEGER NOT NULL UNIQUE,
	name TEXT NOT NULL,
	country TEXT,
	active BOOLEAN NOT NULL DEFAULT true
);

CREATE TABLE IF NOT EXISTS posts (
	id SERIAL PRIMARY KEY,
	channel_id INTEGER NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
	message TEXT NOT NULL,
	event_type TEXT NOT NULL,
	match_id TEXT,
	status TEXT NOT NULL DEFAULT 'sent' CHECK (status IN ('sent', 'failed', 'scheduled')),
	scheduled_at TIMESTAMPTZ,
	sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tracked_events (
	id SERIAL PRIMARY KEY,
	match_id TEXT NOT NULL,
	event_key TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_posts_sent_at ON posts (sent_at DESC);
CREATE INDEX IF NOT EXISTS idx_tracked_events_created_at ON tracked_events (created_at);
`

// InitSchema creates all tables and indexes if they do not exist.
func (p *Pool) InitSchema(ctx context.Context) error {
	if _, err := p.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
