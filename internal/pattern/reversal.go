package pattern

import "RSICheck/internal/model"

// DetectReversal inspects the last lookback+1 values. It returns up when the final
// value ticks above the previous one after a non-increasing run, down for the mirror
// case, none otherwise.
func DetectReversal(vals []model.NullFloat, lookback int) model.Reversal {
	if lookback < 1 {
		return model.ReversalNone
	}
	w, ok := tail(vals, lookback+1)
	if !ok {
		return model.ReversalNone
	}
	n := len(w)

	if w[n-1] > w[n-2] {
		up := true
		for i := 0; i < n-2; i++ {
			if w[i] < w[i+1] {
				up = false
				break
			}
		}
		if up {
			return model.ReversalUp
		}
	}
	if w[n-1] < w[n-2] {
		down := true
		for i := 0; i < n-2; i++ {
			if w[i] > w[i+1] {
				down = false
				break
			}
		}
		if down {
			return model.ReversalDown
		}
	}
	return model.ReversalNone
}

// IsRising reports a strictly increasing run over the last lookback+1 values.
func IsRising(vals []model.NullFloat, lookback int) bool {
	w, ok := tail(vals, lookback+1)
	if !ok || lookback < 1 {
		return false
	}
	for i := 0; i < len(w)-1; i++ {
		if w[i] >= w[i+1] {
			return false
		}
	}
	return true
}

// IsFalling reports a strictly decreasing run over the last lookback+1 values.
func IsFalling(vals []model.NullFloat, lookback int) bool {
	w, ok := tail(vals, lookback+1)
	if !ok || lookback < 1 {
		return false
	}
	for i := 0; i < len(w)-1; i++ {
		if w[i] <= w[i+1] {
			return false
		}
	}
	return true
}
