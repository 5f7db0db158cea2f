// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goalfeed-app/goalfeed/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and polling
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Channels
		"list_channels":        "SELECT id, name, platform, chat_id, active, post_goals, post_cards, post_lineups, post_fulltime, post_subs, affiliate_link, created_at FROM channels ORDER BY created_at DESC",
		"list_active_channels": "SELECT id, name, platform, chat_id, active, post_goals, post_cards, post_lineups, post_fulltime, post_subs, affiliate_link, created_at FROM channels WHERE active",
		"channel_by_id":        "SELECT id, name, platform, chat_id, active, post_goals, post_cards, post_lineups, post_fulltime, post_subs, affiliate_link, created_at FROM channels WHERE id = $1",

		// Dedup ledger
		"tracked_event_exists": "SELECT EXISTS (SELECT 1 FROM tracked_events WHERE event_key = $1)",

		// Leagues
		"list_active_leagues": "SELECT id, league_id, name, country, active FROM leagues WHERE active ORDER BY name",
		"league_by_league_id": "SELECT id, league_id, name, country, active FROM leagues WHERE league_id = $1",

		// Posts
		"recent_posts": "SELECT p.id, p.channel_id, c.name, c.platform, p.message, p.event_type, p.match_id, p.status, p.sent_at FROM posts p JOIN channels c ON c.id = p.channel_id ORDER BY p.sent_at DESC LIMIT $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
