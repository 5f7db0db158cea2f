package poller

import (
	"fmt"
	"strings"

	"github.com/goalfeed-app/goalfeed/internal/footballapi"
	"github.com/goalfeed-app/goalfeed/internal/store"
)

// Message formatters are pure functions producing platform-agnostic rich
// text (HTML markers). Plain-text platforms strip the markup at send time.
// Missing upstream fields are substituted with placeholders, never errors.

// GoalMessage formats a goal announcement with scoreline, scorer, own-goal
// and penalty qualifiers, assist, minute, and league.
func GoalMessage(fixture footballapi.Fixture, event footballapi.Event, channel store.Channel) string {
	home := fixture.Teams.Home.Name
	away := fixture.Teams.Away.Name
	scorer := nameOr(event.Player.Name, "Unknown")
	ownGoal := event.Detail == footballapi.DetailOwnGoal
	penalty := event.Detail == footballapi.DetailPenalty

	var b strings.Builder
	fmt.Fprintf(&b, "⚽ <b>GOAL! %s %s %s</b>\n", home, scoreline(fixture), away)
	fmt.Fprintf(&b, "🕐 %d' | %s\n\n", event.Time.Elapsed, fixture.League.Name)

	if ownGoal {
		fmt.Fprintf(&b, "Own goal by %s 😬\n", scorer)
	} else {
		b.WriteString(scorer)
		if penalty {
			b.WriteString(" (Pen)")
		}
		if event.Assist.Name != "" {
			fmt.Fprintf(&b, " | Assist: %s", event.Assist.Name)
		}
		b.WriteString("\n")
	}

	if link := affiliateLink(channel); link != "" {
		fmt.Fprintf(&b, "\n🎯 <a href=%q>Bet on this match</a>", link)
	}
	return b.String()
}

// CardMessage formats a booking, distinguishing red from yellow.
func CardMessage(fixture footballapi.Fixture, event footballapi.Event, channel store.Channel) string {
	cardEmoji := "🟨"
	if event.Detail == footballapi.DetailRedCard {
		cardEmoji = "🟥"
	}
	player := nameOr(event.Player.Name, "Unknown")

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s!</b>\n", cardEmoji, event.Detail)
	fmt.Fprintf(&b, "%s (%s)\n", player, event.Team.Name)
	fmt.Fprintf(&b, "🕐 %d' | %s vs %s\n%s",
		event.Time.Elapsed, fixture.Teams.Home.Name, fixture.Teams.Away.Name, fixture.League.Name)

	if link := affiliateLink(channel); link != "" {
		fmt.Fprintf(&b, "\n\n🎯 <a href=%q>Live odds</a>", link)
	}
	return b.String()
}

// SubstitutionMessage formats a substitution. The incoming player arrives in
// the assist slot of the upstream event. No affiliate line: substitution
// posts are lower-value.
func SubstitutionMessage(fixture footballapi.Fixture, event footballapi.Event) string {
	playerIn := nameOr(event.Assist.Name, "?")
	playerOut := nameOr(event.Player.Name, "?")

	return fmt.Sprintf("🔄 <b>Substitution</b> | %s\n⬆️ %s  ⬇️ %s\n🕐 %d' | %s vs %s",
		event.Team.Name, playerIn, playerOut,
		event.Time.Elapsed, fixture.Teams.Home.Name, fixture.Teams.Away.Name)
}

// FullTimeMessage formats the final score announcement.
func FullTimeMessage(fixture footballapi.Fixture, channel store.Channel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 <b>Full Time</b>\n%s <b>%s</b> %s\n%s",
		fixture.Teams.Home.Name, scoreline(fixture), fixture.Teams.Away.Name,
		fixture.League.Name)

	if link := affiliateLink(channel); link != "" {
		fmt.Fprintf(&b, "\n\n🎯 <a href=%q>Next match odds</a>", link)
	}
	return b.String()
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// scoreline renders the current score with an en dash, e.g. "2–1".
func scoreline(fixture footballapi.Fixture) string {
	return fmt.Sprintf("%d–%d", intOrZero(fixture.Goals.Home), intOrZero(fixture.Goals.Away))
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func affiliateLink(channel store.Channel) string {
	if channel.AffiliateLink == nil {
		return ""
	}
	return *channel.AffiliateLink
}
