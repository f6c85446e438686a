package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tokenguard/internal/adapters/config"
	"tokenguard/internal/adapters/dexscreener"
	"tokenguard/internal/adapters/errors/noop"
	"tokenguard/internal/adapters/errors/sentry"
	"tokenguard/internal/adapters/social"
	tgadapter "tokenguard/internal/adapters/telegram"
	"tokenguard/internal/api"
	"tokenguard/internal/api/health"
	"tokenguard/internal/metrics"
	"tokenguard/internal/services/analysis"
	"tokenguard/pkg/errors"
	"tokenguard/pkg/logger"
	"tokenguard/pkg/telegram/adapters/tgbotapi"
)

// Version is stamped at build time via -ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Register Prometheus collectors
	metrics.Register()

	// Upstream clients
	dexClient := dexscreener.NewClient(dexscreener.Config{
		BaseURL: cfg.Dexscreener.BaseURL,
		Timeout: cfg.Dexscreener.Timeout,
	}, log)

	sources := []social.MentionSource{
		social.NewTwitterSource(social.TwitterConfig{
			BearerToken: cfg.Twitter.BearerToken,
			Timeout:     cfg.Twitter.Timeout,
		}, log),
		social.NewRedditSource(social.RedditConfig{
			ClientID:     cfg.Reddit.ClientID,
			ClientSecret: cfg.Reddit.ClientSecret,
			UserAgent:    cfg.Reddit.UserAgent,
			Timeout:      cfg.Reddit.Timeout,
		}, log),
	}

	// Analysis service
	analyzer := analysis.NewService(dexClient, sources, cfg.Dexscreener.Timeout, log)

	// Telegram bot
	bot, err := tgbotapi.NewBot(tgbotapi.Config{
		Token: cfg.Telegram.BotToken,
		Debug: cfg.App.Debug,
	}, log)
	if err != nil {
		log.Fatalf("Failed to create Telegram bot: %v", err)
	}

	// Conversation state
	sessions := tgadapter.NewSessionStore(cfg.Session.TTL, log)

	handler := tgadapter.NewHandler(bot, sessions, analyzer, log)
	bot.SetHandler(handler.HandleUpdate)

	log.Info("System initialized successfully")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Session eviction loop
	go sessions.StartCleanup(ctx, cfg.Session.CleanupInterval)

	// Observability HTTP server (health probes + metrics)
	var httpServer *api.Server
	if cfg.Observability.Enabled {
		healthHandler := health.New(log, []health.Pinger{dexClient}, cfg.App.Name, Version)
		httpServer = api.NewServer(api.ServerConfig{
			ListenAddr:  cfg.Observability.ListenAddr,
			ServiceName: cfg.App.Name,
			Version:     Version,
		}, healthHandler, log)

		go func() {
			if err := httpServer.Start(); err != nil {
				log.Errorf("HTTP server error: %v", err)
			}
		}()
	}

	// Start long polling
	go func() {
		if err := bot.Start(ctx); err != nil {
			log.Errorf("Telegram bot error: %v", err)
		}
	}()
	log.Info("Telegram bot started")

	// Wait for shutdown signal
	waitForShutdown(ctx, cancel, bot, httpServer, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	bot interface{ Stop() },
	httpServer *api.Server,
	errorTracker errors.Tracker,
	log *logger.Logger,
) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	// Stop accepting new updates first, then cancel everything else.
	bot.Stop()
	cancel()

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorw("HTTP server shutdown failed", "error", err)
		}
	}

	// Flush error tracker
	if errorTracker != nil {
		if err := errorTracker.Flush(ctx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
