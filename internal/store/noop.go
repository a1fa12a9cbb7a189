package store

import (
	"context"
	"time"

	"RSICheck/internal/model"
)

// NoopStore is used when no cache is configured. Every load misses.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Load(_ context.Context, _, _ string, _ time.Duration) ([]model.PriceBar, bool, error) {
	return nil, false, nil
}
func (n *NoopStore) Save(_ context.Context, _, _ string, _ []model.PriceBar) error { return nil }
func (n *NoopStore) Close() error                                                  { return nil }
