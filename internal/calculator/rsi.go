package calculator

import "RSICheck/internal/model"

// ComputeRSI returns the RSI of closes over the given period, one value per bar.
//
// Gains and losses are smoothed with an exponential moving average of span period
// (alpha = 2/(period+1)) seeded by the first raw value, not Wilder's running mean.
// The first bar has no delta and is undefined. When the average loss is zero the
// RSI is 100; when nothing has moved at all yet the value stays undefined.
func ComputeRSI(closes []float64, period int) []model.NullFloat {
	out := make([]model.NullFloat, len(closes))
	if period <= 0 || len(closes) == 0 {
		return out
	}

	alpha := 2.0 / float64(period+1)
	var avgGain, avgLoss float64 // seeded by bar 0: gain = loss = 0

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = alpha*gain + (1-alpha)*avgGain
		avgLoss = alpha*loss + (1-alpha)*avgLoss

		switch {
		case avgLoss == 0 && avgGain == 0:
			// flat so far
		case avgLoss == 0:
			out[i] = model.Some(100.0)
		default:
			rs := avgGain / avgLoss
			out[i] = model.Some(100.0 - 100.0/(1.0+rs))
		}
	}
	return out
}
