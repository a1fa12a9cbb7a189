package collector

import (
	"context"
	"errors"

	"RSICheck/internal/model"
)

var (
	// ErrNoData is returned when the source has no bars for the symbol.
	ErrNoData = errors.New("no data")
	// ErrUnknownSymbol is returned when the source does not know the symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Fetcher defines the interface for fetching daily price bars.
type Fetcher interface {
	// FetchBars returns the daily bars of symbol over rng ("1mo", "3mo", "6mo",
	// "1y", "2y"), oldest first.
	FetchBars(ctx context.Context, symbol, rng string) ([]model.PriceBar, error)
	Name() string
}

// Ranges lists the supported lookback ranges with their length in calendar days.
var Ranges = map[string]int{
	"1mo": 31,
	"3mo": 92,
	"6mo": 183,
	"1y":  366,
	"2y":  731,
}

// ValidRange reports whether rng is supported.
func ValidRange(rng string) bool {
	_, ok := Ranges[rng]
	return ok
}
