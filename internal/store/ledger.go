package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger is the persistent set of already-notified event keys. An entry is
// written before any delivery attempt for its key, so a crash between write
// and send can only under-deliver, never duplicate.
type Ledger struct {
	pool *pgxpool.Pool
}

// NewLedger creates a ledger repository.
func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// Exists reports whether an event key has been recorded.
func (r *Ledger) Exists(ctx context.Context, eventKey string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, "tracked_event_exists", eventKey).Scan(&exists); err != nil {
		return false, fmt.Errorf("check event key %q: %w", eventKey, err)
	}
	return exists, nil
}

// InsertIfAbsent records an event key. A duplicate key is a no-op, not an
// error, so overlapping poll cycles can race on the same event safely.
func (r *Ledger) InsertIfAbsent(ctx context.Context, matchID, eventKey string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tracked_events (match_id, event_key)
		VALUES ($1, $2)
		ON CONFLICT (event_key) DO NOTHING`,
		matchID, eventKey)
	if err != nil {
		return fmt.Errorf("insert event key %q: %w", eventKey, err)
	}
	return nil
}

// DeleteOlderThan garbage-collects entries older than maxAge. Runs on every
// poll cycle regardless of whether any entry was matched.
func (r *Ledger) DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM tracked_events
		WHERE created_at < NOW() - make_interval(secs => $1)`,
		maxAge.Seconds())
	if err != nil {
		return 0, fmt.Errorf("expire tracked events: %w", err)
	}
	return tag.RowsAffected(), nil
}
