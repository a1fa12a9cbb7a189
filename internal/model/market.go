package model

import "time"

// PriceBar represents a single daily candlestick bar.
type PriceBar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the ordered bars of one symbol, oldest first.
type PriceSeries struct {
	Symbol string
	Bars   []PriceBar
}

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Empty reports whether the series has no bars.
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }

// Closes returns the close prices in bar order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Last returns the latest bar. ok is false for an empty series.
func (s PriceSeries) Last() (bar PriceBar, ok bool) {
	if len(s.Bars) == 0 {
		return PriceBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// WatchItem is one entry of the configured watchlist.
type WatchItem struct {
	Name   string `yaml:"name"`
	Ticker string `yaml:"ticker"`
}

// SymbolSeries pairs a watchlist entry with its fetched series.
type SymbolSeries struct {
	Item   WatchItem
	Series PriceSeries
	Quote  Quote
}

// Batch is an ordered symbol -> series mapping. Iteration order is slice order.
type Batch []SymbolSeries

// Lookup returns the entry for ticker.
func (b Batch) Lookup(ticker string) (SymbolSeries, bool) {
	for _, s := range b {
		if s.Item.Ticker == ticker {
			return s, true
		}
	}
	return SymbolSeries{}, false
}

// Quote is the latest price with its change against the previous close.
type Quote struct {
	Price         float64
	Change        float64
	ChangePercent float64
	Valid         bool
}
