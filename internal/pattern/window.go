package pattern

import "RSICheck/internal/model"

// tail returns the last n values as plain floats. ok is false when fewer than n
// values exist or any of them is undefined.
func tail(vals []model.NullFloat, n int) ([]float64, bool) {
	if n <= 0 || len(vals) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i, v := range vals[len(vals)-n:] {
		if !v.Valid {
			return nil, false
		}
		out[i] = v.Float64
	}
	return out, true
}
