package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenguard/pkg/errors"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("TWITTER_BEARER_TOKEN", "tw-token")
	t.Setenv("REDDIT_CLIENT_ID", "reddit-id")
	t.Setenv("REDDIT_CLIENT_SECRET", "reddit-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tokenguard", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "https://api.dexscreener.com", cfg.Dexscreener.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Dexscreener.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Session.CleanupInterval)
	assert.Equal(t, ":8080", cfg.Observability.ListenAddr)
	assert.True(t, cfg.Observability.Enabled)
	assert.False(t, cfg.ErrorTracking.Enabled)
}

func TestLoad_ReadsCredentials(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tg-token", cfg.Telegram.BotToken)
	assert.Equal(t, "tw-token", cfg.Twitter.BearerToken)
	assert.Equal(t, "reddit-id", cfg.Reddit.ClientID)
	assert.Equal(t, "reddit-secret", cfg.Reddit.ClientSecret)
}

func TestLoad_MissingCredentialsFailsAtStartup(t *testing.T) {
	// Empty-but-set credentials must fail at startup just like unset
	// ones; envconfig's required tag alone would let these through.
	for _, name := range []string{
		"TELEGRAM_BOT_TOKEN",
		"TWITTER_BEARER_TOKEN",
		"REDDIT_CLIENT_ID",
		"REDDIT_CLIENT_SECRET",
	} {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(name, "")

			_, err := Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrMissingCredentials)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("DEXSCREENER_TIMEOUT", "3s")
	t.Setenv("OBSERVABILITY_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 3*time.Second, cfg.Dexscreener.Timeout)
	assert.False(t, cfg.Observability.Enabled)
}
