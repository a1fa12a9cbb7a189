package pattern

import (
	"math"
	"testing"

	"RSICheck/internal/model"
)

func TestDetectDivergence(t *testing.T) {
	// 15 bars, halves [0,7) and [7,15)
	bullPrices := []float64{100, 98, 96, 95, 94, 93, 92, 91, 90, 89, 88, 90, 91, 90, 90.5}
	bullRSI := vals(40, 35, 30, 25, 28, 30, 32, 33, 34, 35, 36, 38, 40, 42, 45)

	bearPrices := []float64{100, 102, 104, 105, 106, 107, 108, 109, 110, 111, 112, 110, 109, 109, 109.5}
	bearRSI := vals(60, 65, 70, 75, 72, 70, 68, 67, 66, 65, 64, 62, 60, 58, 55)

	nanPrices := append([]float64(nil), bullPrices...)
	nanPrices[3] = math.NaN()

	gapRSI := append([]model.NullFloat(nil), bullRSI...)
	gapRSI[5] = model.Null

	tests := []struct {
		name   string
		prices []float64
		rsi    []model.NullFloat
		want   model.Divergence
	}{
		{"bullish", bullPrices, bullRSI, model.DivergenceBullish},
		{"bearish", bearPrices, bearRSI, model.DivergenceBearish},
		{"price and RSI both falling", bullPrices, bearRSI, model.DivergenceNone},
		{"price and RSI both rising", bearPrices, bullRSI, model.DivergenceNone},
		{"nan price", nanPrices, bullRSI, model.DivergenceNone},
		{"undefined RSI", bullPrices, gapRSI, model.DivergenceNone},
		{"too short", bullPrices[:10], bullRSI[:10], model.DivergenceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDivergence(tt.prices, tt.rsi, 14); got != tt.want {
				t.Errorf("DetectDivergence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectDivergence_UsesTrailingWindow(t *testing.T) {
	// leading bars outside the window must not matter
	prices := append([]float64{500, 1, 500}, 100, 98, 96, 95, 94, 93, 92, 91, 90, 89, 88, 90, 91, 90, 90.5)
	rsi := append(vals(99, 1, 99), vals(40, 35, 30, 25, 28, 30, 32, 33, 34, 35, 36, 38, 40, 42, 45)...)
	if got := DetectDivergence(prices, rsi, 14); got != model.DivergenceBullish {
		t.Errorf("expected bullish, got %v", got)
	}
}

func TestDetectDivergence_NoHigherLow(t *testing.T) {
	// price falls and RSI rises overall, but RSI makes a lower low in the second half
	prices := []float64{100, 98, 96, 95, 94, 93, 92, 91, 90, 89, 88, 90, 91, 90, 90.5}
	rsi := vals(40, 35, 30, 25, 28, 30, 32, 33, 20, 35, 36, 38, 40, 42, 45)
	if got := DetectDivergence(prices, rsi, 14); got != model.DivergenceNone {
		t.Errorf("expected none, got %v", got)
	}
}
