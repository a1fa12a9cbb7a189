package store

import (
	"context"
	"time"

	"RSICheck/internal/model"
)

// BarStore caches fetched price bars per symbol and range.
type BarStore interface {
	// Load returns the cached bars when they were saved less than maxAge ago.
	// ok is false on a miss or a stale entry.
	Load(ctx context.Context, symbol, rng string, maxAge time.Duration) (bars []model.PriceBar, ok bool, err error)
	// Save replaces the cached bars of symbol and range.
	Save(ctx context.Context, symbol, rng string, bars []model.PriceBar) error
	Close() error
}
