package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("API_URL", "http://backend:3000")

	cfg := LoadFromEnv()
	assert.Equal(t, "http://backend:3000", cfg.API.BaseURL)
	assert.Equal(t, "file", cfg.Session.Store)
	assert.Equal(t, 10*time.Second, cfg.Polling.BalanceInterval)
	assert.Equal(t, 3*time.Second, cfg.Polling.SnipeInterval)
	assert.True(t, cfg.Polling.SnipeStopOnTerminal)
	assert.Equal(t, 5*time.Second, cfg.NotifyTTL)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("API_URL", "http://backend:3000")
	t.Setenv("TOKEN_STORE", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SNIPE_POLL_STOP_ON_TERMINAL", "false")
	t.Setenv("QUERY_CACHE_TTL", "1m")

	cfg := LoadFromEnv()
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 2, cfg.Session.Redis.DB)
	assert.False(t, cfg.Polling.SnipeStopOnTerminal)
	assert.Equal(t, time.Minute, cfg.Query.TTL)
}
