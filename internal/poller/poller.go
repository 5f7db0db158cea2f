// Package poller implements the live-match polling pipeline: fetch live
// fixtures, detect new scoreable events, deduplicate against the tracked
// ledger, and fan formatted notifications out to subscribed channels.
//
// Pipeline: live fixtures → per-fixture events → ledger dedup → per-channel
// dispatch → delivery log. The ledger entry for an event is always written
// before any delivery attempt, so a crash in between can only under-deliver,
// never double-post.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goalfeed-app/goalfeed/internal/footballapi"
	"github.com/goalfeed-app/goalfeed/internal/messenger"
	"github.com/goalfeed-app/goalfeed/internal/store"
)

// defaultTrackedEventMaxAge is how long ledger entries are retained before
// garbage collection.
const defaultTrackedEventMaxAge = 7 * 24 * time.Hour

// Statuses during which the event list is fetched and processed.
var inPlayStatuses = map[string]bool{
	footballapi.StatusFirstHalf:  true,
	footballapi.StatusSecondHalf: true,
	footballapi.StatusExtraTime:  true,
	footballapi.StatusPenalties:  true,
}

// --------------------------------------------------------------------------
// Collaborator interfaces
// --------------------------------------------------------------------------

type eventSource interface {
	LiveFixtures(ctx context.Context) ([]footballapi.Fixture, error)
	FixtureEvents(ctx context.Context, fixtureID int) ([]footballapi.Event, error)
}

type channelSource interface {
	ListActive(ctx context.Context) ([]store.Channel, error)
}

type eventLedger interface {
	Exists(ctx context.Context, eventKey string) (bool, error)
	InsertIfAbsent(ctx context.Context, matchID, eventKey string) error
	DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error)
}

type postLog interface {
	Append(ctx context.Context, channelID int, message, eventType, matchID, status string) error
}

// --------------------------------------------------------------------------
// Poller
// --------------------------------------------------------------------------

// Poller drives one polling pass over all live fixtures. It holds no state
// between cycles; all dedup state lives in the ledger.
type Poller struct {
	source   eventSource
	channels channelSource
	ledger   eventLedger
	posts    postLog
	senders  map[string]messenger.Sender // keyed by channel platform
	maxAge   time.Duration
	logger   *slog.Logger
}

// New creates a Poller. maxAge controls ledger retention; zero means the
// 7-day default.
func New(
	source eventSource,
	channels channelSource,
	ledger eventLedger,
	posts postLog,
	senders map[string]messenger.Sender,
	maxAge time.Duration,
	logger *slog.Logger,
) *Poller {
	if maxAge <= 0 {
		maxAge = defaultTrackedEventMaxAge
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		source:   source,
		channels: channels,
		ledger:   ledger,
		posts:    posts,
		senders:  senders,
		maxAge:   maxAge,
		logger:   logger,
	}
}

// Summary tracks the outcome of one poll cycle.
type Summary struct {
	Matched    int           // live fixtures fetched
	Dispatched int           // messages handed to a sender
	Expired    int64         // ledger entries garbage-collected
	Duration   time.Duration
}

// String returns a human-readable summary.
func (s Summary) String() string {
	return fmt.Sprintf("matched=%d dispatched=%d expired=%d dur=%s",
		s.Matched, s.Dispatched, s.Expired, s.Duration.Round(time.Millisecond))
}
