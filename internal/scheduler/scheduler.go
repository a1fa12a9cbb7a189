package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"RSICheck/internal/collector"
	"RSICheck/internal/metrics"
	"RSICheck/internal/model"
	"RSICheck/internal/notifier"
	"RSICheck/internal/strategy"
)

// Sender delivers a message to the chat.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the periodic watchlist scan and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    *strategy.Engine
	Notifier  Sender
	Metrics   *metrics.Metrics
	Watchlist []model.WatchItem
	Ctx       context.Context
	Now       func() time.Time

	mu  sync.Mutex // one scan at a time
	log zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *strategy.Engine, tn Sender,
	m *metrics.Metrics, watchlist []model.WatchItem) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Engine:    eng,
		Notifier:  tn,
		Metrics:   m,
		Watchlist: watchlist,
		Ctx:       ctx,
		Now:       time.Now,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Register registers the watchlist scan.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunScanNow executes the scan immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	s.log.Info().Int("symbols", len(s.Watchlist)).Msg("running watchlist scan")
	msg, err := s.Scan(s.Ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("scan failed")
		s.trySend(fmt.Sprintf("❌ Watchlist scan failed: %s", html.EscapeString(err.Error())))
		return
	}
	s.trySend(msg)
}

// Scan collects and evaluates the whole watchlist and returns the summary message.
func (s *Scheduler) Scan(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	batch, err := s.Collector.CollectAll(ctx, s.Watchlist)
	if err != nil {
		return "", fmt.Errorf("collect: %w", err)
	}
	evals, err := s.Engine.EvaluateBatch(ctx, batch)
	if err != nil {
		return "", fmt.Errorf("evaluate: %w", err)
	}

	rows := make([]model.SummaryRow, len(evals))
	signals := make([]model.SignalType, len(evals))
	for i, ev := range evals {
		rows[i] = ev.Row(batch[i].Item)
		signals[i] = ev.Signal.Type
		s.log.Debug().Str("symbol", ev.Symbol).Str("signal", string(ev.Signal.Type)).
			Float64("strength", ev.Signal.Strength).Str("trend", string(ev.Trend.Trend)).Msg("evaluated")
	}
	s.Metrics.ObserveScan(time.Since(start), signals)
	s.log.Info().Dur("took", time.Since(start)).Msg("scan complete")
	return notifier.FormatSummary(rows, s.Now()), nil
}

// Signal collects and evaluates one ticker and returns its report.
func (s *Scheduler) Signal(ctx context.Context, ticker string) (string, error) {
	item := s.lookup(ticker)
	entry, err := s.Collector.Collect(ctx, item)
	if err != nil {
		return "", err
	}
	ev, err := s.Engine.Evaluate(entry.Series)
	if err != nil {
		return "", err
	}
	return notifier.FormatSignalReport(entry, ev, s.Collector.Range()), nil
}

func (s *Scheduler) lookup(ticker string) model.WatchItem {
	ticker = strings.ToUpper(ticker)
	for _, item := range s.Watchlist {
		if item.Ticker == ticker {
			return item
		}
	}
	return model.WatchItem{Name: ticker, Ticker: ticker}
}

const helpText = "Available commands:\n" +
	"• /scan - evaluate the whole watchlist\n" +
	"• /signal &lt;ticker&gt; - detailed report for one symbol\n" +
	"• /list - show the watchlist"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// strip the @botname suffix used in group chats
	cmd, _, _ := strings.Cut(fields[0], "@")

	switch cmd {
	case "/scan":
		msg, err := s.Scan(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("scan command failed")
			return fmt.Sprintf("❌ Scan failed: %s", html.EscapeString(err.Error()))
		}
		return msg
	case "/signal":
		if len(fields) < 2 {
			return "Usage: /signal &lt;ticker&gt;"
		}
		msg, err := s.Signal(ctx, fields[1])
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", fields[1]).Msg("signal command failed")
			if errors.Is(err, collector.ErrUnknownSymbol) || errors.Is(err, collector.ErrNoData) {
				return fmt.Sprintf("❓ No data for %s", html.EscapeString(strings.ToUpper(fields[1])))
			}
			return fmt.Sprintf("❌ %s", html.EscapeString(err.Error()))
		}
		return msg
	case "/list":
		var b strings.Builder
		b.WriteString("👀 <b>Watchlist</b>\n")
		for _, item := range s.Watchlist {
			b.WriteString(fmt.Sprintf("• %s (%s)\n", html.EscapeString(item.Name), html.EscapeString(item.Ticker)))
		}
		return b.String()
	default:
		return helpText
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
