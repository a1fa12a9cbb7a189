package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"RSICheck/internal/collector"
	"RSICheck/internal/model"
	"RSICheck/internal/strategy"
)

// DefaultWatchlist is monitored when no watchlist is configured.
var DefaultWatchlist = []model.WatchItem{
	{Name: "Tesla", Ticker: "TSLA"},
	{Name: "Nvidia", Ticker: "NVDA"},
	{Name: "KORU", Ticker: "069500.KS"},
	{Name: "SOXL", Ticker: "SOXL"},
	{Name: "TQQQ", Ticker: "TQQQ"},
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider       string  `yaml:"provider"` // yahoo, rest or mock
		BaseURL        string  `yaml:"base_url"`
		APIKey         string  `yaml:"api_key"`
		Range          string  `yaml:"range"`
		TimeoutSec     int     `yaml:"timeout_sec"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
		Concurrency    int     `yaml:"concurrency"`
	} `yaml:"data_source"`
	Watchlist []model.WatchItem `yaml:"watchlist"`
	Engine    strategy.Params   `yaml:"engine"`
	Schedule  struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
		TTLSec     int    `yaml:"ttl_sec"`
	} `yaml:"cache"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// Load reads .env, the YAML file at path, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{Engine: strategy.DefaultParams()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	setString(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&cfg.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setString(&cfg.DataSource.Provider, "DATA_PROVIDER")
	setString(&cfg.DataSource.BaseURL, "DATA_BASE_URL")
	setString(&cfg.DataSource.APIKey, "DATA_API_KEY")
	setString(&cfg.DataSource.Range, "DATA_RANGE")
	setString(&cfg.Proxy, "HTTPS_PROXY")
	setString(&cfg.Schedule.ScanCron, "CRON_SCAN")
	setString(&cfg.Cache.SQLitePath, "SQLITE_PATH")
	setString(&cfg.Metrics.Addr, "METRICS_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("CACHE_TTL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLSec = n
		}
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist = ParseWatchlist(v)
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
		if cfg.DataSource.BaseURL != "" {
			cfg.DataSource.Provider = "rest"
		}
	}
	if cfg.DataSource.Range == "" {
		cfg.DataSource.Range = "6mo"
	}
	if cfg.DataSource.TimeoutSec == 0 {
		cfg.DataSource.TimeoutSec = 30
	}
	if cfg.DataSource.RequestsPerSec == 0 {
		cfg.DataSource.RequestsPerSec = 2
	}
	if cfg.DataSource.Concurrency == 0 {
		cfg.DataSource.Concurrency = 4
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = append([]model.WatchItem(nil), DefaultWatchlist...)
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 22 * * 1-5"
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = "data/rsicheck.db"
	}
	if cfg.Cache.TTLSec == 0 {
		cfg.Cache.TTLSec = 300
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ParseWatchlist parses "Name:TICKER,TICKER,..." entries. A bare ticker is its own name.
func ParseWatchlist(s string) []model.WatchItem {
	var items []model.WatchItem
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, ticker, ok := strings.Cut(part, ":")
		if !ok {
			ticker = name
		}
		name, ticker = strings.TrimSpace(name), strings.TrimSpace(ticker)
		items = append(items, model.WatchItem{Name: name, Ticker: strings.ToUpper(ticker)})
	}
	return items
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, rest, mock", c.DataSource.Provider)
	}
	if !collector.ValidRange(c.DataSource.Range) {
		return fmt.Errorf("data_source.range %q is not supported", c.DataSource.Range)
	}
	if c.DataSource.RequestsPerSec < 0 || c.DataSource.Concurrency < 0 || c.DataSource.TimeoutSec < 0 {
		return fmt.Errorf("data_source limits must not be negative")
	}

	seen := make(map[string]bool, len(c.Watchlist))
	for i, item := range c.Watchlist {
		if item.Ticker == "" {
			return fmt.Errorf("watchlist[%d]: ticker is required", i)
		}
		if seen[item.Ticker] {
			return fmt.Errorf("watchlist: duplicate ticker %s", item.Ticker)
		}
		seen[item.Ticker] = true
	}

	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).
		Parse(c.Schedule.ScanCron); err != nil {
		return fmt.Errorf("schedule.scan_cron: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Params returns the engine configuration. The engine copies it and never
// mutates it.
func (c *Config) Params() strategy.Params { return c.Engine }

// CacheTTL returns the bar cache lifetime. A negative ttl_sec disables the cache
// and yields zero.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLSec < 0 {
		return 0
	}
	return time.Duration(c.Cache.TTLSec) * time.Second
}

// RequestTimeout returns the per-request timeout of the data source.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSec) * time.Second
}

// Level returns the configured log level, info when unparsable.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
