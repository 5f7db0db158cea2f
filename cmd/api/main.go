// Command api is the Goalfeed management API server.
//
// Usage:
//
//	goalfeed-api
//	API_PORT=8080 goalfeed-api

// @title Goalfeed API
// @version 1.0.0
// @description Live football match polling and notification relay: channel management, match lookups, delivery analytics, and the poll trigger.
// @host localhost:4000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/goalfeed-app/goalfeed/internal/api"
	"github.com/goalfeed-app/goalfeed/internal/config"
	"github.com/goalfeed-app/goalfeed/internal/db"
	"github.com/goalfeed-app/goalfeed/internal/footballapi"
	"github.com/goalfeed-app/goalfeed/internal/messenger"
	"github.com/goalfeed-app/goalfeed/internal/poller"
	"github.com/goalfeed-app/goalfeed/internal/store"

	_ "github.com/goalfeed-app/goalfeed/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Apply schema
	if err := pool.InitSchema(ctx); err != nil {
		logger.Error("Failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// Build upstream client and platform senders
	football := footballapi.NewClient(cfg.FootballAPIBase, cfg.FootballAPIKey, cfg.FootballAPIPerMin, logger)
	telegram := messenger.NewTelegram("", cfg.TelegramBotToken, logger)

	senders := map[string]messenger.Sender{}
	if cfg.TelegramBotToken != "" {
		senders[store.PlatformTelegram] = telegram
	}
	if cfg.WhatsAppPhoneID != "" && cfg.WhatsAppToken != "" {
		senders[store.PlatformWhatsApp] = messenger.NewWhatsApp("", cfg.WhatsAppPhoneID, cfg.WhatsAppToken, logger)
	}
	logger.Info("Senders configured", "platforms", len(senders))

	p := poller.New(
		football,
		store.NewChannels(pool.Pool),
		store.NewLedger(pool.Pool),
		store.NewPosts(pool.Pool),
		senders,
		cfg.TrackedEventMaxAge,
		logger,
	)

	// Start in-process poll loop (if configured). Deployments driven by an
	// external cron leave POLL_INTERVAL_SECONDS unset and hit POST /api/poll.
	if cfg.PollInterval > 0 {
		go pollLoop(ctx, p, cfg.PollInterval, logger)
		logger.Info("In-process poll loop started", "interval", cfg.PollInterval)
	} else {
		logger.Info("In-process poll loop disabled (no POLL_INTERVAL_SECONDS)")
	}

	// Create router
	router := api.NewRouter(pool.Pool, cfg, football, telegram, senders, p, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Goalfeed API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// pollLoop runs poll cycles on a fixed interval until ctx is cancelled.
func pollLoop(ctx context.Context, p *poller.Poller, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Poll loop stopped")
			return
		case <-ticker.C:
			summary, err := p.Run(ctx)
			if err != nil {
				logger.Error("Poll cycle failed", "error", err)
				continue
			}
			logger.Info("Poll cycle finished", "summary", summary.String())
		}
	}
}
