package calculator

import (
	"errors"

	"RSICheck/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// ComputeSMA returns the rolling simple moving average for every bar.
// The first period-1 bars are undefined.
func ComputeSMA(closes []float64, period int) []model.NullFloat {
	out := make([]model.NullFloat, len(closes))
	for i := range closes {
		if ma, err := CalculateSMA(closes[:i+1], period); err == nil {
			out[i] = model.Some(ma)
		}
	}
	return out
}
