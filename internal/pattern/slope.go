package pattern

import "RSICheck/internal/model"

// ComputeSlope fits an ordinary least-squares line through the last lookback+1
// values against x = 0..lookback and returns its slope. Positive means rising
// momentum. Undefined input or a short window yields 0.
func ComputeSlope(vals []model.NullFloat, lookback int) float64 {
	if lookback < 1 {
		return 0
	}
	y, ok := tail(vals, lookback+1)
	if !ok {
		return 0
	}

	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / den
}
