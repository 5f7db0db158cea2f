// Package api wires the management HTTP surface: router, middleware, and
// handler registration.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/goalfeed-app/goalfeed/internal/api/handler"
	"github.com/goalfeed-app/goalfeed/internal/config"
	"github.com/goalfeed-app/goalfeed/internal/footballapi"
	"github.com/goalfeed-app/goalfeed/internal/messenger"
	"github.com/goalfeed-app/goalfeed/internal/poller"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(
	pool *pgxpool.Pool,
	cfg *config.Config,
	football *footballapi.Client,
	telegram *messenger.Telegram,
	senders map[string]messenger.Sender,
	p *poller.Poller,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Cron-Secret"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, cfg, football, telegram, senders, p, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		// Health checks
		r.Get("/health", h.HealthCheck)
		r.Get("/health/db", h.HealthCheckDB)

		// Poll trigger (cron)
		r.Post("/poll", h.Poll)

		// Channel management
		r.Route("/channels", func(r chi.Router) {
			r.Get("/", h.ListChannels)
			r.Post("/", h.CreateChannel)
			r.Get("/{id}", h.GetChannel)
			r.Patch("/{id}", h.UpdateChannel)
			r.Delete("/{id}", h.DeleteChannel)
		})

		// Match data and league tracking
		r.Route("/matches", func(r chi.Router) {
			r.Get("/live", h.LiveMatches)
			r.Get("/today", h.TodayMatches)
			r.Get("/standings/{leagueId}", h.Standings)
			r.Get("/leagues/search", h.SearchLeagues)
			r.Get("/leagues/active", h.ActiveLeagues)
			r.Post("/leagues", h.AddLeague)
			r.Delete("/leagues/{id}", h.RemoveLeague)
			r.Get("/{id}/events", h.MatchEvents)
			r.Get("/{id}/lineups", h.MatchLineups)
			r.Get("/{id}", h.MatchByID)
		})

		// Delivery log
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Get("/stats", h.PostStats)
			r.Post("/send", h.SendPost)
			r.Delete("/{id}", h.DeletePost)
		})
	})

	return r
}
