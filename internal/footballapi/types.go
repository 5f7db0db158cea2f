package footballapi

// --------------------------------------------------------------------------
// Match status vocabulary (fixture.status.short)
// --------------------------------------------------------------------------

const (
	StatusNotStarted = "NS"
	StatusFirstHalf  = "1H"
	StatusHalfTime   = "HT"
	StatusSecondHalf = "2H"
	StatusExtraTime  = "ET"
	StatusPenalties  = "P"
	StatusFullTime   = "FT"
)

// Event type values as delivered by the upstream feed.
const (
	EventTypeGoal         = "Goal"
	EventTypeCard         = "Card"
	EventTypeSubstitution = "subst"
)

// Event detail qualifiers.
const (
	DetailOwnGoal    = "Own Goal"
	DetailPenalty    = "Penalty"
	DetailRedCard    = "Red Card"
	DetailYellowCard = "Yellow Card"
)

// --------------------------------------------------------------------------
// Fixture — one live or finished match snapshot
// --------------------------------------------------------------------------

// Fixture is a match snapshot as returned by /fixtures.
type Fixture struct {
	Fixture FixtureInfo `json:"fixture"`
	League  League      `json:"league"`
	Teams   Teams       `json:"teams"`
	Goals   Goals       `json:"goals"`
}

// FixtureInfo carries the fixture identity and clock state.
type FixtureInfo struct {
	ID     int    `json:"id"`
	Date   string `json:"date"`
	Status Status `json:"status"`
}

// Status is the match status code plus elapsed minute.
type Status struct {
	Short   string `json:"short"`
	Long    string `json:"long"`
	Elapsed *int   `json:"elapsed"`
}

// League identifies the competition a fixture belongs to.
type League struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Season  int    `json:"season"`
}

// Teams holds the two participants.
type Teams struct {
	Home Team `json:"home"`
	Away Team `json:"away"`
}

// Team is one participant.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Goals is the current score. Values are nil before kickoff.
type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// --------------------------------------------------------------------------
// Event — one in-match occurrence (goal, card, substitution)
// --------------------------------------------------------------------------

// Event is one match event as returned by /fixtures/events. The feed
// provides no stable event id; identity is derived downstream from
// (fixture, minute, type, player).
type Event struct {
	Time   EventTime `json:"time"`
	Team   Team      `json:"team"`
	Player Person    `json:"player"`
	Assist Person    `json:"assist"` // assist on goals, incoming player on substitutions
	Type   string    `json:"type"`
	Detail string    `json:"detail"`
}

// EventTime is the match minute an event occurred at.
type EventTime struct {
	Elapsed int  `json:"elapsed"`
	Extra   *int `json:"extra"`
}

// Person is a (possibly absent) player reference. Both fields may be empty
// for anonymous events such as unattributed cards.
type Person struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
}

