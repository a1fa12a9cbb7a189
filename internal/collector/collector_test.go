package collector

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"RSICheck/internal/metrics"
	"RSICheck/internal/model"
	"RSICheck/internal/store"
)

type countingFetcher struct {
	MockFetcher
	calls int32
}

func (c *countingFetcher) FetchBars(ctx context.Context, symbol, rng string) ([]model.PriceBar, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.MockFetcher.FetchBars(ctx, symbol, rng)
}

var watchlist = []model.WatchItem{
	{Name: "Tesla", Ticker: "TSLA"},
	{Name: "Nvidia", Ticker: "NVDA"},
	{Name: "KORU", Ticker: "069500.KS"},
	{Name: "SOXL", Ticker: "SOXL"},
	{Name: "TQQQ", Ticker: "TQQQ"},
}

func TestCollectAll_OrderAndFailures(t *testing.T) {
	f := &MockFetcher{Price: 200, Err: map[string]error{"NVDA": ErrUnknownSymbol}}
	c := NewCollector(f, nil, nil, Options{Range: "6mo", Concurrency: 2})

	batch, err := c.CollectAll(context.Background(), watchlist)
	if err != nil {
		t.Fatal(err)
	}
	if len(batch) != len(watchlist) {
		t.Fatalf("expected %d entries, got %d", len(watchlist), len(batch))
	}
	for i, entry := range batch {
		if entry.Item != watchlist[i] || entry.Series.Symbol != watchlist[i].Ticker {
			t.Errorf("entry %d out of order: %+v", i, entry.Item)
		}
	}
	if !batch[1].Series.Empty() || batch[1].Quote.Valid {
		t.Errorf("failed symbol should carry an empty series, got %d bars", batch[1].Series.Len())
	}
	if batch[0].Series.Len() != 183*5/7 || !batch[0].Quote.Valid {
		t.Errorf("unexpected TSLA entry: %d bars, quote %+v", batch[0].Series.Len(), batch[0].Quote)
	}
}

func TestCollectAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &MockFetcher{Err: map[string]error{"TSLA": context.Canceled}}
	c := NewCollector(f, nil, nil, Options{})
	if _, err := c.CollectAll(ctx, watchlist[:1]); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCollect_UsesCache(t *testing.T) {
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	m := metrics.New()
	f := &countingFetcher{MockFetcher: MockFetcher{Price: 50}}
	c := NewCollector(f, st, m, Options{Range: "3mo", CacheTTL: time.Minute})

	first, err := c.Collect(context.Background(), watchlist[0])
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Collect(context.Background(), watchlist[0])
	if err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&f.calls); n != 1 {
		t.Errorf("expected one upstream fetch, got %d", n)
	}
	if first.Series.Len() != second.Series.Len() || first.Quote.Price != second.Quote.Price {
		t.Errorf("cached series differs: %d/%d bars", first.Series.Len(), second.Series.Len())
	}
	if got := testutil.ToFloat64(m.FetchTotal.WithLabelValues("mock", metrics.ResultCache)); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
}

func TestCollect_NoCacheWithoutTTL(t *testing.T) {
	f := &countingFetcher{}
	c := NewCollector(f, store.NewNoopStore(), nil, Options{Range: "1mo"})
	for i := 0; i < 3; i++ {
		if _, err := c.Collect(context.Background(), watchlist[0]); err != nil {
			t.Fatal(err)
		}
	}
	if n := atomic.LoadInt32(&f.calls); n != 3 {
		t.Errorf("expected 3 fetches, got %d", n)
	}
}

func TestQuoteOf(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		bars []model.PriceBar
		want model.Quote
	}{
		{"empty", nil, model.Quote{}},
		{"single", []model.PriceBar{{Time: day, Close: 10}}, model.Quote{Price: 10, Valid: true}},
		{"two", []model.PriceBar{{Time: day, Close: 10}, {Time: day.AddDate(0, 0, 1), Close: 12}},
			model.Quote{Price: 12, Change: 2, ChangePercent: 20, Valid: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteOf(model.PriceSeries{Bars: tt.bars}); got != tt.want {
				t.Errorf("QuoteOf() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
