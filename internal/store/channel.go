// Package store provides pgx-backed repositories for channels, leagues,
// posts, and the tracked-event dedup ledger.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Platform values for channels.
const (
	PlatformTelegram = "telegram"
	PlatformWhatsApp = "whatsapp"
)

// Channel is a configured outbound messaging destination with per-event-kind
// subscription flags. Managed by the HTTP API; read-only to the poller.
type Channel struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Platform      string    `json:"platform"`
	ChatID        string    `json:"chat_id"`
	Active        bool      `json:"active"`
	PostGoals     bool      `json:"post_goals"`
	PostCards     bool      `json:"post_cards"`
	PostLineups   bool      `json:"post_lineups"`
	PostFulltime  bool      `json:"post_fulltime"`
	PostSubs      bool      `json:"post_subs"`
	AffiliateLink *string   `json:"affiliate_link"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChannelUpdate carries the patchable channel fields; nil means unchanged.
type ChannelUpdate struct {
	Name          *string `json:"name"`
	Active        *bool   `json:"active"`
	AffiliateLink *string `json:"affiliate_link"`
	PostGoals     *bool   `json:"post_goals"`
	PostCards     *bool   `json:"post_cards"`
	PostLineups   *bool   `json:"post_lineups"`
	PostFulltime  *bool   `json:"post_fulltime"`
	PostSubs      *bool   `json:"post_subs"`
}

// Channels is the channel repository.
type Channels struct {
	pool *pgxpool.Pool
}

// NewChannels creates a channel repository.
func NewChannels(pool *pgxpool.Pool) *Channels {
	return &Channels{pool: pool}
}

// List returns all channels, newest first.
func (r *Channels) List(ctx context.Context) ([]Channel, error) {
	return r.queryChannels(ctx, "list_channels")
}

// ListActive returns all active channels. The poller calls this once per
// cycle so every fixture in a cycle sees the same configuration snapshot.
func (r *Channels) ListActive(ctx context.Context) ([]Channel, error) {
	return r.queryChannels(ctx, "list_active_channels")
}

// Get returns one channel, or pgx.ErrNoRows if absent.
func (r *Channels) Get(ctx context.Context, id int) (*Channel, error) {
	row := r.pool.QueryRow(ctx, "channel_by_id", id)
	c, err := scanChannel(row)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a channel and returns it with its assigned id.
func (r *Channels) Create(ctx context.Context, c Channel) (*Channel, error) {
	var id int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO channels (name, platform, chat_id, affiliate_link,
			post_goals, post_cards, post_lineups, post_fulltime, post_subs)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`,
		c.Name, c.Platform, c.ChatID, c.AffiliateLink,
		c.PostGoals, c.PostCards, c.PostLineups, c.PostFulltime, c.PostSubs,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert channel: %w", err)
	}
	return r.Get(ctx, id)
}

// Update applies the non-nil fields of upd and returns the updated channel.
func (r *Channels) Update(ctx context.Context, id int, upd ChannelUpdate) (*Channel, error) {
	_, err := r.pool.Exec(ctx, `
		UPDATE channels SET
			name = COALESCE($2, name),
			active = COALESCE($3, active),
			affiliate_link = COALESCE($4, affiliate_link),
			post_goals = COALESCE($5, post_goals),
			post_cards = COALESCE($6, post_cards),
			post_lineups = COALESCE($7, post_lineups),
			post_fulltime = COALESCE($8, post_fulltime),
			post_subs = COALESCE($9, post_subs)
		WHERE id = $1`,
		id, upd.Name, upd.Active, upd.AffiliateLink,
		upd.PostGoals, upd.PostCards, upd.PostLineups, upd.PostFulltime, upd.PostSubs,
	)
	if err != nil {
		return nil, fmt.Errorf("update channel %d: %w", id, err)
	}
	return r.Get(ctx, id)
}

// Delete removes a channel and, via cascade, its posts.
func (r *Channels) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM channels WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete channel %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Channels) queryChannels(ctx context.Context, stmt string) ([]Channel, error) {
	rows, err := r.pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("query channels: %w", err)
	}
	defer rows.Close()

	var channels []Channel
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, *c)
	}
	return channels, rows.Err()
}

func scanChannel(row pgx.Row) (*Channel, error) {
	var c Channel
	if err := row.Scan(
		&c.ID, &c.Name, &c.Platform, &c.ChatID, &c.Active,
		&c.PostGoals, &c.PostCards, &c.PostLineups, &c.PostFulltime, &c.PostSubs,
		&c.AffiliateLink, &c.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan channel: %w", err)
	}
	return &c, nil
}
