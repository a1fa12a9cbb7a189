package pattern

import (
	"math"

	"RSICheck/internal/model"
)

// DetectDivergence compares price and RSI over the last lookback+1 bars.
//
// Bullish: price falls overall while RSI rises, and the second half of the window
// makes a lower price low together with a higher RSI low. Bearish mirrors it with
// highs. The window is split at index lookback/2.
func DetectDivergence(closes []float64, rsi []model.NullFloat, lookback int) model.Divergence {
	n := lookback + 1
	if lookback < 2 || len(closes) < n || len(rsi) < n {
		return model.DivergenceNone
	}
	r, ok := tail(rsi, n)
	if !ok {
		return model.DivergenceNone
	}
	p := closes[len(closes)-n:]
	for _, v := range p {
		if math.IsNaN(v) {
			return model.DivergenceNone
		}
	}

	priceChange := p[n-1] - p[0]
	rsiChange := r[n-1] - r[0]
	mid := lookback / 2

	if priceChange < 0 && rsiChange > 0 {
		if minOf(p[mid:]) < minOf(p[:mid]) && minOf(r[mid:]) > minOf(r[:mid]) {
			return model.DivergenceBullish
		}
	}
	if priceChange > 0 && rsiChange < 0 {
		if maxOf(p[mid:]) > maxOf(p[:mid]) && maxOf(r[mid:]) < maxOf(r[:mid]) {
			return model.DivergenceBearish
		}
	}
	return model.DivergenceNone
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
