package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"RSICheck/internal/metrics"
	"RSICheck/internal/model"
	"RSICheck/internal/store"
)

// Options configures a Collector.
type Options struct {
	Range       string
	CacheTTL    time.Duration
	Concurrency int
}

// Collector loads watchlist series, cache first.
type Collector struct {
	Fetcher Fetcher
	Store   store.BarStore
	Metrics *metrics.Metrics
	opts    Options
	log     zerolog.Logger
}

// NewCollector creates a new Collector. A nil store disables caching.
func NewCollector(fetcher Fetcher, st store.BarStore, m *metrics.Metrics, opts Options) *Collector {
	if st == nil {
		st = store.NewNoopStore()
	}
	if opts.Range == "" {
		opts.Range = "6mo"
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &Collector{
		Fetcher: fetcher,
		Store:   st,
		Metrics: m,
		opts:    opts,
		log:     log.With().Str("component", "collector").Str("source", fetcher.Name()).Logger(),
	}
}

// Range returns the lookback range requested from the source.
func (c *Collector) Range() string { return c.opts.Range }

// Collect loads the series of one watchlist item and derives its quote.
func (c *Collector) Collect(ctx context.Context, item model.WatchItem) (model.SymbolSeries, error) {
	bars, err := c.load(ctx, item.Ticker)
	if err != nil {
		return model.SymbolSeries{Item: item, Series: model.PriceSeries{Symbol: item.Ticker}}, err
	}
	series := model.PriceSeries{Symbol: item.Ticker, Bars: bars}
	return model.SymbolSeries{Item: item, Series: series, Quote: QuoteOf(series)}, nil
}

func (c *Collector) load(ctx context.Context, symbol string) ([]model.PriceBar, error) {
	source := c.Fetcher.Name()
	if c.opts.CacheTTL > 0 {
		bars, ok, err := c.Store.Load(ctx, symbol, c.opts.Range, c.opts.CacheTTL)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("cache load failed")
		} else if ok {
			c.Metrics.ObserveFetch(source, metrics.ResultCache, 0)
			return bars, nil
		}
	}

	start := time.Now()
	bars, err := c.Fetcher.FetchBars(ctx, symbol, c.opts.Range)
	if err != nil {
		c.Metrics.ObserveFetch(source, metrics.ResultError, time.Since(start))
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	c.Metrics.ObserveFetch(source, metrics.ResultOK, time.Since(start))

	if c.opts.CacheTTL > 0 {
		if err := c.Store.Save(ctx, symbol, c.opts.Range, bars); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("cache save failed")
		}
	}
	return bars, nil
}

// CollectAll loads every watchlist item in parallel. The batch keeps watchlist
// order; an item whose fetch fails gets an empty series and is logged. Only a
// cancelled context returns an error.
func (c *Collector) CollectAll(ctx context.Context, watchlist []model.WatchItem) (model.Batch, error) {
	batch := make(model.Batch, len(watchlist))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, item := range watchlist {
		i, item := i, item
		g.Go(func() error {
			entry, err := c.Collect(gctx, item)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.log.Warn().Err(err).Str("symbol", item.Ticker).Msg("collect failed, using empty series")
			}
			batch[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batch, nil
}

// QuoteOf derives the latest price and its change against the previous close.
// A single bar yields zero change; an empty series an invalid quote.
func QuoteOf(series model.PriceSeries) model.Quote {
	last, ok := series.Last()
	if !ok {
		return model.Quote{}
	}
	q := model.Quote{Price: last.Close, Valid: true}
	if n := series.Len(); n > 1 {
		prev := series.Bars[n-2].Close
		q.Change = last.Close - prev
		if prev != 0 {
			q.ChangePercent = q.Change / prev * 100
		}
	}
	return q
}
