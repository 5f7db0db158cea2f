package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/goalfeed-app/goalfeed/internal/api/respond"
	"github.com/goalfeed-app/goalfeed/internal/store"
)

// LiveMatches proxies the current live fixture set.
// @Summary Live matches
// @Tags matches
// @Produce json
// @Success 200 {array} footballapi.Fixture
// @Router /api/matches/live [get]
func (h *Handler) LiveMatches(w http.ResponseWriter, r *http.Request) {
	fixtures, err := h.football.LiveFixtures(r.Context())
	if err != nil {
		h.logger.Error("live fixtures", "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM", "Failed to fetch live matches")
		return
	}
	respond.WriteJSON(w, http.StatusOK, fixtures)
}

// TodayMatches returns today's fixtures for all active leagues.
// @Summary Today's matches for active leagues
// @Tags matches
// @Produce json
// @Success 200 {array} footballapi.Fixture
// @Router /api/matches/today [get]
func (h *Handler) TodayMatches(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagues.ListActive(r.Context())
	if err != nil {
		h.logger.Error("list active leagues", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to list leagues")
		return
	}
	if len(leagues) == 0 {
		respond.WriteJSON(w, http.StatusOK, []struct{}{})
		return
	}

	ids := make([]int, 0, len(leagues))
	for _, l := range leagues {
		ids = append(ids, l.LeagueID)
	}
	fixtures, err := h.football.TodayFixtures(r.Context(), ids)
	if err != nil {
		h.logger.Error("today fixtures", "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM", "Failed to fetch today's matches")
		return
	}
	respond.WriteJSON(w, http.StatusOK, fixtures)
}

// MatchByID returns one fixture snapshot.
// @Summary Match by id
// @Tags matches
// @Produce json
// @Param id path int true "Fixture ID"
// @Success 200 {object} footballapi.Fixture
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/matches/{id} [get]
func (h *Handler) MatchByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid fixture id")
		return
	}
	fixture, err := h.football.FixtureByID(r.Context(), id)
	if err != nil {
		h.logger.Error("fixture by id", "id", id, "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM", "Failed to fetch match")
		return
	}
	if fixture == nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Match not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, fixture)
}

// MatchEvents returns a fixture's event list.
// @Summary Match events
// @Tags matches
// @Produce json
// @Param id path int true "Fixture ID"
// @Success 200 {array} footballapi.Event
// @Router /api/matches/{id}/events [get]
func (h *Handler) MatchEvents(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid fixture id")
		return
	}
	events, err := h.football.FixtureEvents(r.Context(), id)
	if err != nil {
		h.logger.Error("fixture events", "id", id, "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM", "Failed to fetch events")
		return
	}
	respond.WriteJSON(w, http.StatusOK, events)
}

// MatchLineups passes a fixture's lineups payload through.
// @Summary Match lineups
// @Tags matches
// @Produce json
// @Param id path int true "Fixture ID"
// @Success 200 {array} object
// @Router /api/matches/{id}/lineups [get]
func (h *Handler) MatchLineups(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid fixture id")
		return
	}
	raw, err := h.football.Lineups(r.Context(), id)
	if err != nil {
		h.logger.Error("fixture lineups", "id", id, "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM", "Failed to fetch lineups")
		return
	}
	respond.WriteRaw(w, http.StatusOK, raw)
}

// Standings passes a league table through.
// @Summary League standings
// @Tags matches
// @Produce json
// @Param leagueId path int true "League ID"
// @Success 200 {array} object
// @Router /api/matches/standings/{leagueId} [get]
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	leagueID, err := strconv.Atoi(chi.URLParam(r, "leagueId"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid league id")
		return
	}
	raw, err := h.football.Standings(r.Context(), leagueID)
	if err != nil {
		h.logger.Error("standings", "league_id", leagueID, "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM", "Failed to fetch standings")
		return
	}
	respond.WriteRaw(w, http.StatusOK, raw)
}

// SearchLeagues proxies a league name search.
// @Summary Search leagues upstream
// @Tags leagues
// @Produce json
// @Param q query string true "League name"
// @Success 200 {array} object
// @Router /api/matches/leagues/search [get]
func (h *Handler) SearchLeagues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Missing search query")
		return
	}
	raw, err := h.football.SearchLeagues(r.Context(), q)
	if err != nil {
		h.logger.Error("search leagues", "q", q, "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM", "Failed to search leagues")
		return
	}
	respond.WriteRaw(w, http.StatusOK, raw)
}

// ActiveLeagues returns the tracked leagues.
// @Summary List active leagues
// @Tags leagues
// @Produce json
// @Success 200 {array} store.League
// @Router /api/matches/leagues/active [get]
func (h *Handler) ActiveLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagues.ListActive(r.Context())
	if err != nil {
		h.logger.Error("list active leagues", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to list leagues")
		return
	}
	if leagues == nil {
		leagues = []store.League{}
	}
	respond.WriteJSON(w, http.StatusOK, leagues)
}

// AddLeague tracks a league (or re-activates an existing one).
// @Summary Track league
// @Tags leagues
// @Accept json
// @Produce json
// @Success 201 {object} store.League
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/matches/leagues [post]
func (h *Handler) AddLeague(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LeagueID int     `json:"league_id"`
		Name     string  `json:"name"`
		Country  *string `json:"country"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body")
		return
	}
	if req.LeagueID == 0 || req.Name == "" {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "league_id and name required")
		return
	}

	league, err := h.leagues.Upsert(r.Context(), req.LeagueID, req.Name, req.Country)
	if err != nil {
		h.logger.Error("upsert league", "league_id", req.LeagueID, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to add league")
		return
	}
	respond.WriteJSON(w, http.StatusCreated, league)
}

// RemoveLeague deactivates a tracked league.
// @Summary Deactivate league
// @Tags leagues
// @Produce json
// @Param id path int true "League row ID"
// @Success 200 {object} map[string]string
// @Router /api/matches/leagues/{id} [delete]
func (h *Handler) RemoveLeague(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid league id")
		return
	}
	if err := h.leagues.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "League not found")
			return
		}
		h.logger.Error("deactivate league", "id", id, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to deactivate league")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"message": "League deactivated"})
}
