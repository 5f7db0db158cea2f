package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// League is a tracked competition. league_id is the upstream API identifier.
type League struct {
	ID       int     `json:"id"`
	LeagueID int     `json:"league_id"`
	Name     string  `json:"name"`
	Country  *string `json:"country"`
	Active   bool    `json:"active"`
}

// Leagues is the league repository.
type Leagues struct {
	pool *pgxpool.Pool
}

// NewLeagues creates a league repository.
func NewLeagues(pool *pgxpool.Pool) *Leagues {
	return &Leagues{pool: pool}
}

// ListActive returns all active leagues.
func (r *Leagues) ListActive(ctx context.Context) ([]League, error) {
	rows, err := r.pool.Query(ctx, "list_active_leagues")
	if err != nil {
		return nil, fmt.Errorf("list active leagues: %w", err)
	}
	defer rows.Close()

	var leagues []League
	for rows.Next() {
		var l League
		if err := rows.Scan(&l.ID, &l.LeagueID, &l.Name, &l.Country, &l.Active); err != nil {
			return nil, fmt.Errorf("scan league: %w", err)
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

// Upsert adds a league or re-activates an existing one.
func (r *Leagues) Upsert(ctx context.Context, leagueID int, name string, country *string) (*League, error) {
	var l League
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leagues (league_id, name, country)
		VALUES ($1, $2, $3)
		ON CONFLICT (league_id) DO UPDATE SET active = true
		RETURNING id, league_id, name, country, active`,
		leagueID, name, country,
	).Scan(&l.ID, &l.LeagueID, &l.Name, &l.Country, &l.Active)
	if err != nil {
		return nil, fmt.Errorf("upsert league %d: %w", leagueID, err)
	}
	return &l, nil
}

// Deactivate soft-deletes a league by internal id.
func (r *Leagues) Deactivate(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, "UPDATE leagues SET active = false WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate league %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
