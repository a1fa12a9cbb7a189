package strategy

import "math"

// buyStrength scores oversold conditions (0~100).
// Short RSI contributes up to 50, medium up to 30, a stable long RSI up to 20.
func buyStrength(short, medium, long float64) float64 {
	s := math.Max(0, (30-short)/30*50)
	m := math.Max(0, (40-medium)/40*30)
	var l float64
	if long >= 30 {
		l = math.Min(20, (long-30)/20*20)
	}
	return clampStrength(s + m + l)
}

// sellStrength scores overbought conditions (0~100).
func sellStrength(short, medium, long float64) float64 {
	s := math.Max(0, (short-70)/30*50)
	m := math.Max(0, (medium-60)/40*30)
	l := math.Max(0, (long-70)/30*20)
	return clampStrength(s + m + l)
}

func boost(strength, multiplier float64) float64 {
	return clampStrength(strength * multiplier)
}

func clampStrength(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
