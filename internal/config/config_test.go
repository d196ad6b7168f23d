package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data/portfolio.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "@every 30s", cfg.RefreshSchedule)
	assert.Equal(t, 24*time.Hour, cfg.InsightCooldown)
	assert.Equal(t, 3*time.Second, cfg.QuoteTimeout)
	assert.False(t, cfg.DevMode)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INSIGHT_COOLDOWN", "1h")
	t.Setenv("QUOTE_TIMEOUT", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.InsightCooldown)
	assert.Equal(t, 500*time.Millisecond, cfg.QuoteTimeout)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("INSIGHT_COOLDOWN", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.InsightCooldown)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DatabasePath: "x.db", Port: 70000}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DatabasePath: "", Port: 8080}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DatabasePath: "x.db", Port: 8080}
	assert.NoError(t, cfg.Validate())
}
