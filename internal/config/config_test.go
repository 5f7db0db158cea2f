package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/goalfeed")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/goalfeed", cfg.DatabaseURL)
	assert.Equal(t, "0.0.0.0", cfg.APIHost)
	assert.Equal(t, 4000, cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "https://v3.football.api-sports.io", cfg.FootballAPIBase)
	assert.Equal(t, 30, cfg.FootballAPIPerMin)
	assert.Equal(t, time.Duration(0), cfg.PollInterval, "in-process ticker disabled by default")
	assert.Equal(t, 7*24*time.Hour, cfg.TrackedEventMaxAge)
	assert.True(t, cfg.RateLimitEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://db:5432/goalfeed")
	t.Setenv("PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("POLL_INTERVAL_SECONDS", "60")
	t.Setenv("TRACKED_EVENT_MAX_AGE_DAYS", "3")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://db:5432/goalfeed", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.APIPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, 3*24*time.Hour, cfg.TrackedEventMaxAge)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.RateLimitEnabled)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_URL", "")

	_, err := Load()
	require.Error(t, err)
}
