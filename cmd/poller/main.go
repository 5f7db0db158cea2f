// Command poller is the Goalfeed polling CLI.
//
// Usage:
//
//	goalfeed-poller poll run
//	goalfeed-poller poll loop --interval 60
//	goalfeed-poller db init
//	goalfeed-poller channels verify --chat-id @mychannel
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/goalfeed-app/goalfeed/internal/config"
	"github.com/goalfeed-app/goalfeed/internal/db"
	"github.com/goalfeed-app/goalfeed/internal/footballapi"
	"github.com/goalfeed-app/goalfeed/internal/messenger"
	"github.com/goalfeed-app/goalfeed/internal/poller"
	"github.com/goalfeed-app/goalfeed/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env from repo root if present
	_ = godotenv.Load("../.env")
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "goalfeed-poller",
		Short: "Goalfeed live-match polling CLI",
	}

	root.AddCommand(pollCmd())
	root.AddCommand(dbCmd())
	root.AddCommand(channelsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// poll command
// --------------------------------------------------------------------------

func pollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Run poll cycles",
	}
	cmd.AddCommand(pollRunCmd())
	cmd.AddCommand(pollLoopCmd())
	return cmd
}

func pollRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a single poll cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				p := buildPoller(cfg, pool)
				summary, err := p.Run(ctx)
				if err != nil {
					return err
				}
				logger.Info("poll cycle finished", "summary", summary.String())
				return nil
			})
		},
	}
}

func pollLoopCmd() *cobra.Command {
	var intervalSec int
	cmd := &cobra.Command{
		Use:   "loop",
		Short: "Run poll cycles on a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				p := buildPoller(cfg, pool)
				interval := time.Duration(intervalSec) * time.Second

				logger.Info("poll loop started", "interval", interval)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						logger.Info("poll loop stopped")
						return nil
					case <-ticker.C:
						summary, err := p.Run(ctx)
						if err != nil {
							logger.Error("poll cycle failed", "error", err)
							continue
						}
						logger.Info("poll cycle finished", "summary", summary.String())
					}
				}
			})
		},
	}
	cmd.Flags().IntVar(&intervalSec, "interval", 60, "Seconds between cycles")
	return cmd
}

// --------------------------------------------------------------------------
// db command
// --------------------------------------------------------------------------

func dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create tables and indexes if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDeps(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := pool.InitSchema(ctx); err != nil {
					return fmt.Errorf("init schema: %w", err)
				}
				logger.Info("schema initialized")
				return nil
			})
		},
	})
	return cmd
}

// --------------------------------------------------------------------------
// channels command
// --------------------------------------------------------------------------

func channelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "Channel utilities",
	}
	cmd.AddCommand(channelsVerifyCmd())
	return cmd
}

func channelsVerifyCmd() *cobra.Command {
	var chatID string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the bot can see a Telegram chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.TelegramBotToken == "" {
				return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
			}

			telegram := messenger.NewTelegram("", cfg.TelegramBotToken, logger)
			title, err := telegram.VerifyChannel(ctx, chatID)
			if err != nil {
				return fmt.Errorf("verify channel: %w", err)
			}
			logger.Info("channel verified", "chat_id", chatID, "title", title)
			return nil
		},
	}
	cmd.Flags().StringVar(&chatID, "chat-id", "", "Telegram chat ID or @username")
	_ = cmd.MarkFlagRequired("chat-id")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// buildPoller wires the poller from config and an open pool.
func buildPoller(cfg *config.Config, pool *db.Pool) *poller.Poller {
	football := footballapi.NewClient(cfg.FootballAPIBase, cfg.FootballAPIKey, cfg.FootballAPIPerMin, logger)

	senders := map[string]messenger.Sender{}
	if cfg.TelegramBotToken != "" {
		senders[store.PlatformTelegram] = messenger.NewTelegram("", cfg.TelegramBotToken, logger)
	}
	if cfg.WhatsAppPhoneID != "" && cfg.WhatsAppToken != "" {
		senders[store.PlatformWhatsApp] = messenger.NewWhatsApp("", cfg.WhatsAppPhoneID, cfg.WhatsAppToken, logger)
	}

	return poller.New(
		football,
		store.NewChannels(pool.Pool),
		store.NewLedger(pool.Pool),
		store.NewPosts(pool.Pool),
		senders,
		cfg.TrackedEventMaxAge,
		logger,
	)
}

// runWithDeps handles config loading, DB connection, and context cancellation.
func runWithDeps(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
