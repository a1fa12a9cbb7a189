package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"RSICheck/internal/collector"
	"RSICheck/internal/config"
	"RSICheck/internal/metrics"
	"RSICheck/internal/notifier"
	"RSICheck/internal/scheduler"
	"RSICheck/internal/store"
	"RSICheck/internal/strategy"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("RSICheck starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Logger = log.Logger.Level(cfg.Level())

	m := metrics.New()

	// Init fetcher
	client := collector.NewClient(collector.ClientOptions{
		Timeout:        cfg.RequestTimeout(),
		RequestsPerSec: cfg.DataSource.RequestsPerSec,
		Proxy:          cfg.Proxy,
	})
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "rest":
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, client)
	case "mock":
		fetcher = &collector.MockFetcher{Price: 100}
	default:
		fetcher = collector.NewYahooFetcher(client)
	}
	log.Info().Str("source", fetcher.Name()).Str("range", cfg.DataSource.Range).Msg("data source ready")

	// Init bar cache
	var st store.BarStore = store.NewNoopStore()
	if cfg.CacheTTL() > 0 && cfg.Cache.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.SQLitePath), 0o755); err != nil {
			log.Warn().Err(err).Msg("create cache directory failed")
		}
		ss, err := store.NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite cache failed, using noop")
		} else {
			st = ss
		}
	}
	defer st.Close()

	col := collector.NewCollector(fetcher, st, m, collector.Options{
		Range:       cfg.DataSource.Range,
		CacheTTL:    cfg.CacheTTL(),
		Concurrency: cfg.DataSource.Concurrency,
	})
	engine := strategy.NewEngine(cfg.Params())

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, m)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, engine, tn, m, cfg.Watchlist)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	// Metrics endpoint
	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics server started")
	}

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Info().Int("symbols", len(cfg.Watchlist)).Str("cron", cfg.Schedule.ScanCron).
		Msg("RSICheck is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("metrics server shutdown")
		}
	}
	log.Info().Msg("RSICheck stopped")
}
