package footballapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	// High limit so tests never block on the rate limiter.
	return NewClient(srv.URL, "test-key", 60000, nil)
}

func TestLiveFixtures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("live"))
		assert.Equal(t, "test-key", r.Header.Get("x-apisports-key"))

		w.Write([]byte(`{
			"results": 1,
			"response": [{
				"fixture": {"id": 100, "status": {"short": "1H", "long": "First Half", "elapsed": 23}},
				"league": {"id": 39, "name": "Premier League", "country": "England", "season": 2026},
				"teams": {"home": {"id": 1, "name": "Arsenal"}, "away": {"id": 2, "name": "Chelsea"}},
				"goals": {"home": 1, "away": 0}
			}]
		}`))
	}))
	defer srv.Close()

	fixtures, err := newTestClient(srv).LiveFixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, fixtures, 1)

	f := fixtures[0]
	assert.Equal(t, 100, f.Fixture.ID)
	assert.Equal(t, StatusFirstHalf, f.Fixture.Status.Short)
	require.NotNil(t, f.Fixture.Status.Elapsed)
	assert.Equal(t, 23, *f.Fixture.Status.Elapsed)
	assert.Equal(t, "Arsenal", f.Teams.Home.Name)
	require.NotNil(t, f.Goals.Home)
	assert.Equal(t, 1, *f.Goals.Home)
}

func TestFixtureEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures/events", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("fixture"))

		w.Write([]byte(`{
			"results": 2,
			"response": [
				{
					"time": {"elapsed": 23},
					"team": {"id": 1, "name": "Arsenal"},
					"player": {"id": 42, "name": "Smith"},
					"assist": {"id": 43, "name": "Jones"},
					"type": "Goal",
					"detail": "Normal Goal"
				},
				{
					"time": {"elapsed": 55, "extra": 2},
					"team": {"id": 2, "name": "Chelsea"},
					"player": {"id": null, "name": ""},
					"assist": {"id": null, "name": ""},
					"type": "Card",
					"detail": "Yellow Card"
				}
			]
		}`))
	}))
	defer srv.Close()

	events, err := newTestClient(srv).FixtureEvents(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, events, 2)

	goal := events[0]
	assert.Equal(t, EventTypeGoal, goal.Type)
	assert.Equal(t, 23, goal.Time.Elapsed)
	require.NotNil(t, goal.Player.ID)
	assert.Equal(t, 42, *goal.Player.ID)
	assert.Equal(t, "Jones", goal.Assist.Name)

	card := events[1]
	assert.Equal(t, EventTypeCard, card.Type)
	assert.Nil(t, card.Player.ID, "unattributed cards carry no player id")
}

func TestFixtureByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": 0, "response": []}`))
	}))
	defer srv.Close()

	fixture, err := newTestClient(srv).FixtureByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, fixture)
}

func TestGetUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message": "rate limit reached"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).LiveFixtures(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSearchLeaguesRawPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leagues", r.URL.Path)
		assert.Equal(t, "premier", r.URL.Query().Get("search"))
		w.Write([]byte(`{"results": 1, "response": [{"league": {"id": 39, "name": "Premier League"}}]}`))
	}))
	defer srv.Close()

	raw, err := newTestClient(srv).SearchLeagues(context.Background(), "premier")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"league": {"id": 39, "name": "Premier League"}}]`, string(raw))
}
