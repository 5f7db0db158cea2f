package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Post statuses.
const (
	PostStatusSent      = "sent"
	PostStatusFailed    = "failed"
	PostStatusScheduled = "scheduled"
)

// Post is one delivery attempt record. Append-only; the poller never reads
// posts back.
type Post struct {
	ID          int       `json:"id"`
	ChannelID   int       `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	Platform    string    `json:"platform"`
	Message     string    `json:"message"`
	EventType   string    `json:"event_type"`
	MatchID     *string   `json:"match_id"`
	Status      string    `json:"status"`
	SentAt      time.Time `json:"sent_at"`
}

// PostStats is the aggregate shape served by /api/posts/stats.
type PostStats struct {
	PostsToday int            `json:"posts_today"`
	TotalPosts int            `json:"total_posts"`
	ByType     []TypeCount    `json:"by_type"`
	ByChannel  []ChannelCount `json:"by_channel"`
}

// TypeCount is a per-event-type sent count.
type TypeCount struct {
	EventType string `json:"event_type"`
	Count     int    `json:"count"`
}

// ChannelCount is a per-channel sent count.
type ChannelCount struct {
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	PostCount int    `json:"post_count"`
}

// Posts is the delivery log repository.
type Posts struct {
	pool *pgxpool.Pool
}

// NewPosts creates a posts repository.
func NewPosts(pool *pgxpool.Pool) *Posts {
	return &Posts{pool: pool}
}

// Append records one delivery attempt. Called unconditionally after every
// send, with status "sent" or "failed".
func (r *Posts) Append(ctx context.Context, channelID int, message, eventType, matchID, status string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO posts (channel_id, message, event_type, match_id, status)
		VALUES ($1, $2, $3, $4, $5)`,
		channelID, message, eventType, nilIfEmpty(matchID), status)
	if err != nil {
		return fmt.Errorf("append post: %w", err)
	}
	return nil
}

// Recent returns the latest delivery records joined with channel info.
func (r *Posts) Recent(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, "recent_posts", limit)
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(
			&p.ID, &p.ChannelID, &p.ChannelName, &p.Platform,
			&p.Message, &p.EventType, &p.MatchID, &p.Status, &p.SentAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Stats aggregates delivery counts for the analytics dashboard.
func (r *Posts) Stats(ctx context.Context) (*PostStats, error) {
	var stats PostStats

	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE sent_at::date = CURRENT_DATE AND status = 'sent'),
			COUNT(*) FILTER (WHERE status = 'sent')
		FROM posts`).Scan(&stats.PostsToday, &stats.TotalPosts)
	if err != nil {
		return nil, fmt.Errorf("post totals: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT event_type, COUNT(*) FROM posts
		WHERE status = 'sent'
		GROUP BY event_type`)
	if err != nil {
		return nil, fmt.Errorf("posts by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.EventType, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		stats.ByType = append(stats.ByType, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	chRows, err := r.pool.Query(ctx, `
		SELECT c.name, c.platform, COUNT(p.id)
		FROM channels c
		LEFT JOIN posts p ON p.channel_id = c.id AND p.status = 'sent'
		GROUP BY c.id, c.name, c.platform
		ORDER BY COUNT(p.id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("posts by channel: %w", err)
	}
	defer chRows.Close()
	for chRows.Next() {
		var cc ChannelCount
		if err := chRows.Scan(&cc.Name, &cc.Platform, &cc.PostCount); err != nil {
			return nil, fmt.Errorf("scan channel count: %w", err)
		}
		stats.ByChannel = append(stats.ByChannel, cc)
	}
	return &stats, chRows.Err()
}

// Delete removes one delivery record. Returns pgx.ErrNoRows when no record
// matched.
func (r *Posts) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
