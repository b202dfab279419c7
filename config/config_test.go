package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_KEY", "")
	t.Setenv("CSRF_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "./dropshipping.db", cfg.DatabasePath)
	assert.Equal(t, "https://www.dsers.com", cfg.DSersBaseURL)
	assert.Equal(t, 10*time.Second, cfg.BrowserStepTimeout)
	assert.Equal(t, 15*time.Second, cfg.BrowserSearchTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SearchCacheTTL)
	assert.True(t, cfg.SchedulerEnabled)
	assert.Len(t, cfg.SessionKey, 32)
	assert.Len(t, cfg.CSRFKey, 32)
	assert.ElementsMatch(t, []string{"SESSION_KEY", "CSRF_KEY"}, cfg.GeneratedKeys)
}

func TestLoad_FromEnv(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_PATH", "/tmp/shop.db")
	t.Setenv("SESSION_KEY", key)
	t.Setenv("CSRF_KEY", key)
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("BROWSER_STEP_TIMEOUT_SECONDS", "3")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-4")
	t.Setenv("SCHEDULER_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/tmp/shop.db", cfg.DatabasePath)
	assert.Equal(t, int64(12345), cfg.TelegramChatID)
	assert.Equal(t, 3*time.Second, cfg.BrowserStepTimeout)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.False(t, cfg.SchedulerEnabled)
	assert.Empty(t, cfg.GeneratedKeys)
	assert.Equal(t, []byte(strings.Repeat("k", 32)), cfg.SessionKey)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "http")

	_, err := Load()
	assert.Error(t, err)
}
