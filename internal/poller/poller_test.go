package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalfeed-app/goalfeed/internal/footballapi"
	"github.com/goalfeed-app/goalfeed/internal/messenger"
	"github.com/goalfeed-app/goalfeed/internal/store"
)

// --------------------------------------------------------------------------
// Fakes
// --------------------------------------------------------------------------

type fakeSource struct {
	fixtures    []footballapi.Fixture
	events      map[int][]footballapi.Event
	fixturesErr error
	eventsErr   error
	eventCalls  int
}

func (f *fakeSource) LiveFixtures(ctx context.Context) ([]footballapi.Fixture, error) {
	return f.fixtures, f.fixturesErr
}

func (f *fakeSource) FixtureEvents(ctx context.Context, fixtureID int) ([]footballapi.Event, error) {
	f.eventCalls++
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events[fixtureID], nil
}

type fakeChannels struct {
	channels []store.Channel
	err      error
	calls    int
}

func (f *fakeChannels) ListActive(ctx context.Context) ([]store.Channel, error) {
	f.calls++
	return f.channels, f.err
}

type fakeLedger struct {
	keys        map[string]bool
	deleteCalls int
	lastMaxAge  time.Duration
	expired     int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{keys: make(map[string]bool)}
}

func (f *fakeLedger) Exists(ctx context.Context, eventKey string) (bool, error) {
	return f.keys[eventKey], nil
}

func (f *fakeLedger) InsertIfAbsent(ctx context.Context, matchID, eventKey string) error {
	f.keys[eventKey] = true
	return nil
}

func (f *fakeLedger) DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	f.deleteCalls++
	f.lastMaxAge = maxAge
	return f.expired, nil
}

type loggedPost struct {
	channelID int
	message   string
	eventType string
	matchID   string
	status    string
}

type fakePosts struct {
	rows []loggedPost
}

func (f *fakePosts) Append(ctx context.Context, channelID int, message, eventType, matchID, status string) error {
	f.rows = append(f.rows, loggedPost{channelID, message, eventType, matchID, status})
	return nil
}

type sentMessage struct {
	destination string
	text        string
}

type fakeSender struct {
	sent []sentMessage
	fail bool
}

func (f *fakeSender) Send(ctx context.Context, destination, text string) messenger.Result {
	f.sent = append(f.sent, sentMessage{destination, text})
	if f.fail {
		return messenger.Result{Success: false, Error: "delivery refused"}
	}
	return messenger.Result{Success: true, MessageID: "msg-1"}
}

// --------------------------------------------------------------------------
// Fixture builders
// --------------------------------------------------------------------------

func intPtr(n int) *int { return &n }

func liveFixture(id int, status string, home, away int) footballapi.Fixture {
	return footballapi.Fixture{
		Fixture: footballapi.FixtureInfo{
			ID:     id,
			Status: footballapi.Status{Short: status, Elapsed: intPtr(23)},
		},
		League: footballapi.League{ID: 39, Name: "Premier League"},
		Teams: footballapi.Teams{
			Home: footballapi.Team{ID: 1, Name: "Arsenal"},
			Away: footballapi.Team{ID: 2, Name: "Chelsea"},
		},
		Goals: footballapi.Goals{Home: intPtr(home), Away: intPtr(away)},
	}
}

func goalEvent(minute int, player string, playerID int) footballapi.Event {
	return footballapi.Event{
		Time:   footballapi.EventTime{Elapsed: minute},
		Team:   footballapi.Team{ID: 1, Name: "Arsenal"},
		Player: footballapi.Person{ID: intPtr(playerID), Name: player},
		Type:   footballapi.EventTypeGoal,
		Detail: "Normal Goal",
	}
}

func telegramChannel(id int) store.Channel {
	return store.Channel{
		ID: id, Name: "Main", Platform: store.PlatformTelegram, ChatID: "@main",
		Active: true, PostGoals: true, PostCards: true, PostFulltime: true,
	}
}

func newTestPoller(source *fakeSource, channels *fakeChannels, ledger *fakeLedger, posts *fakePosts, senders map[string]messenger.Sender) *Poller {
	return New(source, channels, ledger, posts, senders, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --------------------------------------------------------------------------
// Cycle behavior
// --------------------------------------------------------------------------

func TestRunDispatchesNewGoalOnce(t *testing.T) {
	source := &fakeSource{
		fixtures: []footballapi.Fixture{liveFixture(100, footballapi.StatusFirstHalf, 1, 0)},
		events:   map[int][]footballapi.Event{100: {goalEvent(23, "Smith", 42)}},
	}
	channels := &fakeChannels{channels: []store.Channel{telegramChannel(1)}}
	ledger := newFakeLedger()
	posts := &fakePosts{}
	sender := &fakeSender{}

	p := newTestPoller(source, channels, ledger, posts, map[string]messenger.Sender{store.PlatformTelegram: sender})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Matched)
	assert.Equal(t, 1, summary.Dispatched)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "@main", sender.sent[0].destination)
	assert.Contains(t, sender.sent[0].text, "Smith")
	assert.Contains(t, sender.sent[0].text, "23'")
	assert.True(t, ledger.keys["100_23_Goal_42"])

	require.Len(t, posts.rows, 1)
	assert.Equal(t, store.PostStatusSent, posts.rows[0].status)
	assert.Equal(t, "goal", posts.rows[0].eventType)
	assert.Equal(t, "100", posts.rows[0].matchID)

	// Second cycle with identical upstream state: nothing new to announce.
	summary, err = p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Dispatched)
	assert.Len(t, sender.sent, 1)
}

func TestRunFullTimeAnnouncedOnce(t *testing.T) {
	source := &fakeSource{
		fixtures: []footballapi.Fixture{liveFixture(100, footballapi.StatusFullTime, 2, 1)},
	}
	channels := &fakeChannels{channels: []store.Channel{telegramChannel(1)}}
	ledger := newFakeLedger()
	posts := &fakePosts{}
	sender := &fakeSender{}

	p := newTestPoller(source, channels, ledger, posts, map[string]messenger.Sender{store.PlatformTelegram: sender})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Dispatched)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].text, "Full Time")
	assert.Contains(t, sender.sent[0].text, "2–1")
	assert.True(t, ledger.keys["100_FT"])
	assert.Equal(t, 0, source.eventCalls, "finished fixtures must not fetch events")

	// The fixture keeps appearing in the live feed for a while after FT.
	for i := 0; i < 2; i++ {
		summary, err = p.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Dispatched)
	}
	assert.Len(t, sender.sent, 1)
}

func TestRunSubscriptionFiltering(t *testing.T) {
	subsOnly := telegramChannel(2)
	subsOnly.ChatID = "@subs"
	subsOnly.PostGoals = false
	subsOnly.PostSubs = true

	source := &fakeSource{
		fixtures: []footballapi.Fixture{liveFixture(100, footballapi.StatusSecondHalf, 1, 1)},
		events: map[int][]footballapi.Event{100: {
			goalEvent(61, "Jones", 7),
			{
				Time:   footballapi.EventTime{Elapsed: 62},
				Team:   footballapi.Team{Name: "Chelsea"},
				Player: footballapi.Person{ID: intPtr(8), Name: "Old Legs"},
				Assist: footballapi.Person{ID: intPtr(9), Name: "Fresh Legs"},
				Type:   footballapi.EventTypeSubstitution,
				Detail: "Substitution 1",
			},
		}},
	}
	channels := &fakeChannels{channels: []store.Channel{telegramChannel(1), subsOnly}}
	ledger := newFakeLedger()
	posts := &fakePosts{}
	sender := &fakeSender{}

	p := newTestPoller(source, channels, ledger, posts, map[string]messenger.Sender{store.PlatformTelegram: sender})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	// Goal goes to channel 1 only, substitution to channel 2 only.
	assert.Equal(t, 2, summary.Dispatched)
	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[0].text, "Jones")
	assert.Equal(t, "@main", sender.sent[0].destination)
	assert.Contains(t, sender.sent[1].text, "Substitution")
	assert.Equal(t, "@subs", sender.sent[1].destination)
}

func TestRunSenderFailureIsolated(t *testing.T) {
	whatsappChannel := store.Channel{
		ID: 2, Name: "WA", Platform: store.PlatformWhatsApp, ChatID: "15550001111",
		Active: true, PostGoals: true,
	}
	source := &fakeSource{
		fixtures: []footballapi.Fixture{liveFixture(100, footballapi.StatusFirstHalf, 1, 0)},
		events:   map[int][]footballapi.Event{100: {goalEvent(23, "Smith", 42)}},
	}
	channels := &fakeChannels{channels: []store.Channel{telegramChannel(1), whatsappChannel}}
	ledger := newFakeLedger()
	posts := &fakePosts{}
	failing := &fakeSender{fail: true}
	working := &fakeSender{}

	p := newTestPoller(source, channels, ledger, posts, map[string]messenger.Sender{
		store.PlatformTelegram: failing,
		store.PlatformWhatsApp: working,
	})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	// The Telegram failure must not stop the WhatsApp delivery.
	assert.Equal(t, 1, summary.Dispatched)
	assert.Len(t, failing.sent, 1)
	assert.Len(t, working.sent, 1)

	require.Len(t, posts.rows, 2)
	assert.Equal(t, store.PostStatusFailed, posts.rows[0].status)
	assert.Equal(t, store.PostStatusSent, posts.rows[1].status)
}

func TestRunUnknownEventKindLedgeredNotDispatched(t *testing.T) {
	source := &fakeSource{
		fixtures: []footballapi.Fixture{liveFixture(100, footballapi.StatusFirstHalf, 1, 0)},
		events: map[int][]footballapi.Event{100: {{
			Time:   footballapi.EventTime{Elapsed: 30},
			Player: footballapi.Person{ID: intPtr(5), Name: "Ref Target"},
			Type:   "Var",
			Detail: "Goal cancelled",
		}}},
	}
	channels := &fakeChannels{channels: []store.Channel{telegramChannel(1)}}
	ledger := newFakeLedger()
	posts := &fakePosts{}
	sender := &fakeSender{}

	p := newTestPoller(source, channels, ledger, posts, map[string]messenger.Sender{store.PlatformTelegram: sender})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Dispatched)
	assert.Empty(t, sender.sent)
	// The key is still reserved so the kind can be enabled later without a
	// backlog flood.
	assert.True(t, ledger.keys["100_30_Var_5"])
}

func TestRunNoChannelsSkipsFixtureProcessing(t *testing.T) {
	source := &fakeSource{
		fixtures: []footballapi.Fixture{liveFixture(100, footballapi.StatusFirstHalf, 1, 0)},
		events:   map[int][]footballapi.Event{100: {goalEvent(23, "Smith", 42)}},
	}
	channels := &fakeChannels{}
	ledger := newFakeLedger()
	posts := &fakePosts{}

	p := newTestPoller(source, channels, ledger, posts, nil)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Dispatched)
	assert.Equal(t, 0, source.eventCalls)
	assert.Empty(t, ledger.keys)
	assert.Equal(t, 1, ledger.deleteCalls, "ledger GC still runs")
}

func TestRunEmptyFeedStillExpiresLedger(t *testing.T) {
	source := &fakeSource{}
	channels := &fakeChannels{}
	ledger := newFakeLedger()
	ledger.expired = 12

	p := newTestPoller(source, channels, ledger, &fakePosts{}, nil)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Matched)
	assert.Equal(t, int64(12), summary.Expired)
	assert.Equal(t, 1, ledger.deleteCalls)
	assert.Equal(t, 7*24*time.Hour, ledger.lastMaxAge)
	assert.Equal(t, 0, channels.calls, "no fixtures, no channel lookup")
}

func TestRunChannelsFetchedOncePerCycle(t *testing.T) {
	source := &fakeSource{
		fixtures: []footballapi.Fixture{
			liveFixture(100, footballapi.StatusFirstHalf, 0, 0),
			liveFixture(200, footballapi.StatusSecondHalf, 1, 1),
		},
		events: map[int][]footballapi.Event{},
	}
	channels := &fakeChannels{channels: []store.Channel{telegramChannel(1)}}

	p := newTestPoller(source, channels, newFakeLedger(), &fakePosts{}, map[string]messenger.Sender{store.PlatformTelegram: &fakeSender{}})

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, channels.calls)
	assert.Equal(t, 2, source.eventCalls)
}

func TestRunSourceErrorAborts(t *testing.T) {
	source := &fakeSource{fixturesErr: errors.New("upstream down")}
	ledger := newFakeLedger()

	p := newTestPoller(source, &fakeChannels{}, ledger, &fakePosts{}, nil)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "fetch live fixtures"))
	assert.Equal(t, 0, ledger.deleteCalls)
}

func TestRunChannelStoreErrorAborts(t *testing.T) {
	source := &fakeSource{
		fixtures: []footballapi.Fixture{liveFixture(100, footballapi.StatusFirstHalf, 0, 0)},
	}
	channels := &fakeChannels{err: errors.New("db gone")}

	p := newTestPoller(source, channels, newFakeLedger(), &fakePosts{}, nil)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "list active channels"))
}

func TestRunEventsFetchFailureIsolatedPerFixture(t *testing.T) {
	source := &fakeSource{
		fixtures:  []footballapi.Fixture{liveFixture(100, footballapi.StatusFirstHalf, 0, 0)},
		eventsErr: errors.New("timeout"),
	}
	channels := &fakeChannels{channels: []store.Channel{telegramChannel(1)}}
	ledger := newFakeLedger()

	p := newTestPoller(source, channels, ledger, &fakePosts{}, map[string]messenger.Sender{store.PlatformTelegram: &fakeSender{}})

	summary, err := p.Run(context.Background())
	require.NoError(t, err, "a fixture-level failure must not abort the cycle")
	assert.Equal(t, 0, summary.Dispatched)
	assert.Equal(t, 1, ledger.deleteCalls)
}

func TestRunHalfTimeProducesNothing(t *testing.T) {
	source := &fakeSource{
		fixtures: []footballapi.Fixture{liveFixture(100, footballapi.StatusHalfTime, 1, 0)},
	}
	channels := &fakeChannels{channels: []store.Channel{telegramChannel(1)}}

	p := newTestPoller(source, channels, newFakeLedger(), &fakePosts{}, map[string]messenger.Sender{store.PlatformTelegram: &fakeSender{}})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Dispatched)
	assert.Equal(t, 0, source.eventCalls)
}

// --------------------------------------------------------------------------
// Event keys
// --------------------------------------------------------------------------

func TestEventKey(t *testing.T) {
	assert.Equal(t, "100_23_Goal_42", eventKey(100, goalEvent(23, "Smith", 42)))

	anonymous := footballapi.Event{
		Time: footballapi.EventTime{Elapsed: 55},
		Type: footballapi.EventTypeCard,
	}
	assert.Equal(t, "100_55_Card_na", eventKey(100, anonymous))
}
