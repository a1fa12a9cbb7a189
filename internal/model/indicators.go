package model

import (
	"fmt"
	"time"
)

// NullFloat is a float64 that may be undefined, e.g. during indicator warm-up.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Some wraps a defined value.
func Some(v float64) NullFloat { return NullFloat{Float64: v, Valid: true} }

// Null is the undefined value.
var Null = NullFloat{}

// Format renders the value with one decimal, or "N/A" when undefined.
func (n NullFloat) Format() string {
	if !n.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", n.Float64)
}

// Periods records the lookbacks an IndicatorSet was computed with.
type Periods struct {
	ShortRSI  int
	MediumRSI int
	LongRSI   int
	ShortMA   int
	LongMA    int
}

// IndicatorSet holds per-bar indicator values aligned to a PriceSeries.
type IndicatorSet struct {
	Times     []time.Time
	ShortRSI  []NullFloat
	MediumRSI []NullFloat
	LongRSI   []NullFloat
	MA20      []NullFloat
	MA50      []NullFloat
	Periods   Periods
}

// Len returns the number of aligned bars.
func (s IndicatorSet) Len() int { return len(s.Times) }

// LatestRSI returns the short, medium and long RSI of the last bar.
func (s IndicatorSet) LatestRSI() (short, medium, long NullFloat) {
	return last(s.ShortRSI), last(s.MediumRSI), last(s.LongRSI)
}

// LatestMA returns MA20 and MA50 of the last bar.
func (s IndicatorSet) LatestMA() (ma20, ma50 NullFloat) {
	return last(s.MA20), last(s.MA50)
}

// Settled reports whether index i lies past the warm-up of an RSI with the given period.
// Earlier values are numerically defined but not authoritative.
func (s IndicatorSet) Settled(i, period int) bool {
	return i >= period && i < s.Len()
}

func last(vals []NullFloat) NullFloat {
	if len(vals) == 0 {
		return Null
	}
	return vals[len(vals)-1]
}
