package poller

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/goalfeed-app/goalfeed/internal/footballapi"
	"github.com/goalfeed-app/goalfeed/internal/store"
)

// Event type tags recorded in the delivery log.
const (
	postTypeGoal         = "goal"
	postTypeCard         = "card"
	postTypeSubstitution = "substitution"
	postTypeFulltime     = "fulltime"
)

// eventRule maps an upstream event kind to its subscription flag and message
// formatter. New kinds are added here, not as conditional branches.
type eventRule struct {
	postType   string
	subscribed func(store.Channel) bool
	format     func(footballapi.Fixture, footballapi.Event, store.Channel) string
}

var eventRules = map[string]eventRule{
	footballapi.EventTypeGoal: {
		postType:   postTypeGoal,
		subscribed: func(c store.Channel) bool { return c.PostGoals },
		format:     GoalMessage,
	},
	footballapi.EventTypeCard: {
		postType:   postTypeCard,
		subscribed: func(c store.Channel) bool { return c.PostCards },
		format:     CardMessage,
	},
	footballapi.EventTypeSubstitution: {
		postType:   postTypeSubstitution,
		subscribed: func(c store.Channel) bool { return c.PostSubs },
		format: func(f footballapi.Fixture, e footballapi.Event, _ store.Channel) string {
			return SubstitutionMessage(f, e)
		},
	},
}

// processFixture handles one fixture snapshot: full-time announcement or
// in-play event processing, depending on status. Idempotent across repeated
// invocations with the same fixture state. Returns the number of messages
// dispatched. Errors are logged, never propagated — one bad fixture must not
// abort the cycle.
func (p *Poller) processFixture(ctx context.Context, logger *slog.Logger, fixture footballapi.Fixture, channels []store.Channel) int {
	fixtureID := fixture.Fixture.ID
	matchID := strconv.Itoa(fixtureID)
	status := fixture.Fixture.Status.Short

	switch {
	case status == footballapi.StatusFullTime:
		return p.processFullTime(ctx, logger, fixture, matchID, channels)
	case inPlayStatuses[status]:
		return p.processLiveEvents(ctx, logger, fixture, matchID, channels)
	default:
		// Pre-match, half-time, postponed etc. — nothing to announce.
		return 0
	}
}

// processFullTime announces the final score at most once per fixture, ever.
// The synthetic "<id>_FT" ledger key is reserved before any send.
func (p *Poller) processFullTime(ctx context.Context, logger *slog.Logger, fixture footballapi.Fixture, matchID string, channels []store.Channel) int {
	ftKey := matchID + "_FT"

	sent, err := p.ledger.Exists(ctx, ftKey)
	if err != nil {
		logger.Warn("Ledger check failed", "fixture_id", matchID, "event_key", ftKey, "error", err)
		return 0
	}
	if sent {
		return 0
	}

	// Reserve the key first: a failure past this point is an accepted
	// silent miss, not grounds for a retry that could double-post.
	if err := p.ledger.InsertIfAbsent(ctx, matchID, ftKey); err != nil {
		logger.Warn("Ledger insert failed", "fixture_id", matchID, "event_key", ftKey, "error", err)
		return 0
	}

	dispatched := 0
	for _, channel := range channels {
		if !channel.PostFulltime {
			continue
		}
		if p.dispatch(ctx, logger, channel, FullTimeMessage(fixture, channel), postTypeFulltime, matchID) {
			dispatched++
		}
	}
	logger.Info("Full-time announced", "fixture_id", matchID, "dispatched", dispatched)
	return dispatched
}

// processLiveEvents fetches the fixture's event list and dispatches every
// event not yet in the ledger to subscribed channels.
func (p *Poller) processLiveEvents(ctx context.Context, logger *slog.Logger, fixture footballapi.Fixture, matchID string, channels []store.Channel) int {
	events, err := p.source.FixtureEvents(ctx, fixture.Fixture.ID)
	if err != nil {
		logger.Warn("Fetch events failed", "fixture_id", matchID, "error", err)
		return 0
	}

	dispatched := 0
	for _, event := range events {
		rule, known := eventRules[event.Type]
		key := eventKey(fixture.Fixture.ID, event)

		seen, err := p.ledger.Exists(ctx, key)
		if err != nil {
			logger.Warn("Ledger check failed", "fixture_id", matchID, "event_key", key, "error", err)
			continue
		}
		if seen {
			continue
		}

		// Insert before dispatch; a duplicate insert from an overlapping
		// cycle is a no-op on the unique key.
		if err := p.ledger.InsertIfAbsent(ctx, matchID, key); err != nil {
			logger.Warn("Ledger insert failed", "fixture_id", matchID, "event_key", key, "error", err)
			continue
		}

		if !known {
			continue
		}
		for _, channel := range channels {
			if !rule.subscribed(channel) {
				continue
			}
			if p.dispatch(ctx, logger, channel, rule.format(fixture, event, channel), rule.postType, matchID) {
				dispatched++
			}
		}
	}
	return dispatched
}

// eventKey builds the dedup identity for an event: fixture id, minute, kind,
// and player id (or an absence marker). The upstream feed provides no stable
// event id. Known limitation: two same-kind events by the same player within
// one minute collapse to a single key.
func eventKey(fixtureID int, event footballapi.Event) string {
	playerID := "na"
	if event.Player.ID != nil {
		playerID = strconv.Itoa(*event.Player.ID)
	}
	return fmt.Sprintf("%d_%d_%s_%s", fixtureID, event.Time.Elapsed, event.Type, playerID)
}
