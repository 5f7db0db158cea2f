package footballapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// LiveFixtures returns every fixture currently in play, across all leagues.
func (c *Client) LiveFixtures(ctx context.Context) ([]Fixture, error) {
	params := url.Values{}
	params.Set("live", "all")

	var fixtures []Fixture
	if err := c.get(ctx, "/fixtures", params, &fixtures); err != nil {
		return nil, fmt.Errorf("live fixtures: %w", err)
	}
	return fixtures, nil
}

// FixtureByID returns a single fixture snapshot, or nil if not found.
func (c *Client) FixtureByID(ctx context.Context, fixtureID int) (*Fixture, error) {
	params := url.Values{}
	params.Set("id", strconv.Itoa(fixtureID))

	var fixtures []Fixture
	if err := c.get(ctx, "/fixtures", params, &fixtures); err != nil {
		return nil, fmt.Errorf("fixture %d: %w", fixtureID, err)
	}
	if len(fixtures) == 0 {
		return nil, nil
	}
	return &fixtures[0], nil
}

// TodayFixtures returns today's fixtures for the given leagues.
func (c *Client) TodayFixtures(ctx context.Context, leagueIDs []int) ([]Fixture, error) {
	today := time.Now().UTC().Format("2006-01-02")
	season := time.Now().UTC().Year()

	var all []Fixture
	for _, leagueID := range leagueIDs {
		params := url.Values{}
		params.Set("league", strconv.Itoa(leagueID))
		params.Set("date", today)
		params.Set("season", strconv.Itoa(season))

		var fixtures []Fixture
		if err := c.get(ctx, "/fixtures", params, &fixtures); err != nil {
			return nil, fmt.Errorf("today fixtures league %d: %w", leagueID, err)
		}
		all = append(all, fixtures...)
	}
	return all, nil
}

// FixtureEvents returns the ordered event list (goals, cards, substitutions)
// for a fixture since kickoff.
func (c *Client) FixtureEvents(ctx context.Context, fixtureID int) ([]Event, error) {
	params := url.Values{}
	params.Set("fixture", strconv.Itoa(fixtureID))

	var events []Event
	if err := c.get(ctx, "/fixtures/events", params, &events); err != nil {
		return nil, fmt.Errorf("fixture %d events: %w", fixtureID, err)
	}
	return events, nil
}

// Lineups returns the raw lineups payload for a fixture. The management API
// passes it through unchanged.
func (c *Client) Lineups(ctx context.Context, fixtureID int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("fixture", strconv.Itoa(fixtureID))

	var raw json.RawMessage
	if err := c.get(ctx, "/fixtures/lineups", params, &raw); err != nil {
		return nil, fmt.Errorf("fixture %d lineups: %w", fixtureID, err)
	}
	return raw, nil
}

// Standings returns the raw league table for the current season.
func (c *Client) Standings(ctx context.Context, leagueID int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(leagueID))
	params.Set("season", strconv.Itoa(time.Now().UTC().Year()))

	var raw json.RawMessage
	if err := c.get(ctx, "/standings", params, &raw); err != nil {
		return nil, fmt.Errorf("standings league %d: %w", leagueID, err)
	}
	return raw, nil
}

// SearchLeagues returns the raw league list matching a name search.
func (c *Client) SearchLeagues(ctx context.Context, name string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("search", name)

	var raw json.RawMessage
	if err := c.get(ctx, "/leagues", params, &raw); err != nil {
		return nil, fmt.Errorf("search leagues %q: %w", name, err)
	}
	return raw, nil
}
