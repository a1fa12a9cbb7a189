package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"RSICheck/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.PriceBar // per-symbol overrides
	Err   map[string]error            // per-symbol failures
	Now   func() time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, symbol, rng string) ([]model.PriceBar, error) {
	if err, ok := m.Err[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	days, ok := Ranges[rng]
	if !ok {
		return nil, fmt.Errorf("mock: unsupported range %q", rng)
	}
	return m.generate(symbol, days*5/7), nil
}

// generate builds a deterministic oscillating series, phase-shifted per symbol.
func (m *MockFetcher) generate(symbol string, count int) []model.PriceBar {
	base := m.Price
	if base == 0 {
		base = 100
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	end := now().Truncate(24 * time.Hour)

	var phase float64
	for _, r := range symbol {
		phase += float64(r)
	}

	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := base * (1 + 0.08*math.Sin(float64(i)/6+phase) + 0.0005*float64(i))
		bars[i] = model.PriceBar{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
