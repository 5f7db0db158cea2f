// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/poller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Football data API
	FootballAPIBase    string
	FootballAPIKey     string
	FootballAPIPerMin  int
	PollInterval       time.Duration // 0 disables the in-process poll ticker
	TrackedEventMaxAge time.Duration

	// Messaging platforms
	TelegramBotToken string
	WhatsAppPhoneID  string
	WhatsAppToken    string

	// Poll endpoint protection
	CronSecret string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("POSTGRES_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or POSTGRES_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 4000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		FootballAPIBase:    envOr("FOOTBALL_API_BASE", "https://v3.football.api-sports.io"),
		FootballAPIKey:     envOr("FOOTBALL_API_KEY", ""),
		FootballAPIPerMin:  envInt("FOOTBALL_API_REQUESTS_PER_MINUTE", 30),
		PollInterval:       time.Duration(envInt("POLL_INTERVAL_SECONDS", 0)) * time.Second,
		TrackedEventMaxAge: time.Duration(envInt("TRACKED_EVENT_MAX_AGE_DAYS", 7)) * 24 * time.Hour,

		TelegramBotToken: envOr("TELEGRAM_BOT_TOKEN", ""),
		WhatsAppPhoneID:  envOr("WHATSAPP_PHONE_ID", ""),
		WhatsAppToken:    envOr("WHATSAPP_TOKEN", ""),

		CronSecret: envOr("CRON_SECRET", ""),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
