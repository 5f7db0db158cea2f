// Package handler provides HTTP handlers for the management API: channel
// configuration, match lookups, delivery analytics, and the poll trigger.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goalfeed-app/goalfeed/internal/api/respond"
	"github.com/goalfeed-app/goalfeed/internal/config"
	"github.com/goalfeed-app/goalfeed/internal/footballapi"
	"github.com/goalfeed-app/goalfeed/internal/messenger"
	"github.com/goalfeed-app/goalfeed/internal/poller"
	"github.com/goalfeed-app/goalfeed/internal/store"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool     *pgxpool.Pool
	cfg      *config.Config
	logger   *slog.Logger
	channels *store.Channels
	leagues  *store.Leagues
	posts    *store.Posts
	football *footballapi.Client
	telegram *messenger.Telegram
	senders  map[string]messenger.Sender
	poller   *poller.Poller
}

// New creates a Handler with shared dependencies.
func New(
	pool *pgxpool.Pool,
	cfg *config.Config,
	football *footballapi.Client,
	telegram *messenger.Telegram,
	senders map[string]messenger.Sender,
	p *poller.Poller,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		pool:     pool,
		cfg:      cfg,
		logger:   logger,
		channels: store.NewChannels(pool),
		leagues:  store.NewLeagues(pool),
		posts:    store.NewPosts(pool),
		football: football,
		telegram: telegram,
		senders:  senders,
		poller:   p,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Goalfeed API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	if err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database connection check failed")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
