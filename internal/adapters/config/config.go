package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"tokenguard/pkg/errors"
)

type Config struct {
	App           AppConfig
	Telegram      TelegramConfig
	Dexscreener   DexscreenerConfig
	Twitter       TwitterConfig
	Reddit        RedditConfig
	Session       SessionConfig
	Observability ObservabilityConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"tokenguard"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
}

// DexscreenerConfig configures the market data client.
// Dexscreener needs no API key; only endpoint and timeout are tunable.
type DexscreenerConfig struct {
	BaseURL string        `envconfig:"DEXSCREENER_BASE_URL" default:"https://api.dexscreener.com"`
	Timeout time.Duration `envconfig:"DEXSCREENER_TIMEOUT" default:"10s"`
}

type TwitterConfig struct {
	BearerToken string        `envconfig:"TWITTER_BEARER_TOKEN" required:"true"`
	Timeout     time.Duration `envconfig:"TWITTER_TIMEOUT" default:"10s"`
}

type RedditConfig struct {
	ClientID     string        `envconfig:"REDDIT_CLIENT_ID" required:"true"`
	ClientSecret string        `envconfig:"REDDIT_CLIENT_SECRET" required:"true"`
	UserAgent    string        `envconfig:"REDDIT_USER_AGENT" default:"tokenguard/1.0"`
	Timeout      time.Duration `envconfig:"REDDIT_TIMEOUT" default:"10s"`
}

// SessionConfig controls eviction of idle conversation sessions.
// The bot keeps sessions in memory only, so idle ones must be dropped.
type SessionConfig struct {
	TTL             time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	CleanupInterval time.Duration `envconfig:"SESSION_CLEANUP_INTERVAL" default:"5m"`
}

type ObservabilityConfig struct {
	Enabled    bool   `envconfig:"OBSERVABILITY_ENABLED" default:"true"`
	ListenAddr string `envconfig:"OBSERVABILITY_LISTEN_ADDR" default:":8080"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects empty credentials. envconfig's required tag only
// catches unset variables; an empty-but-set token must also fail at
// startup rather than on the first request.
func (c *Config) validate() error {
	credentials := []struct {
		name  string
		value string
	}{
		{"TELEGRAM_BOT_TOKEN", c.Telegram.BotToken},
		{"TWITTER_BEARER_TOKEN", c.Twitter.BearerToken},
		{"REDDIT_CLIENT_ID", c.Reddit.ClientID},
		{"REDDIT_CLIENT_SECRET", c.Reddit.ClientSecret},
	}

	for _, cred := range credentials {
		if cred.value == "" {
			return errors.Wrapf(errors.ErrMissingCredentials, "%s is empty", cred.name)
		}
	}

	return nil
}
