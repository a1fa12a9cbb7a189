package pattern

import (
	"math"
	"testing"
	"time"

	"RSICheck/internal/model"
)

func TestComputeSlope(t *testing.T) {
	tests := []struct {
		name     string
		values   []model.NullFloat
		lookback int
		want     float64
	}{
		{"linear rise", vals(10, 20, 30, 40), 3, 10},
		{"linear fall", vals(5, 40, 30, 20, 10), 3, -10},
		{"flat", vals(50, 50, 50, 50), 3, 0},
		{"noisy", vals(1, 3, 2, 4), 3, 0.8},
		{"too short", vals(10, 20, 30), 3, 0},
		{"undefined", []model.NullFloat{model.Some(1), model.Null, model.Some(3), model.Some(4)}, 3, 0},
		{"zero lookback", vals(1, 2), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeSlope(tt.values, tt.lookback); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ComputeSlope() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetector_Detect(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 98, 96, 95, 94, 93, 92, 91, 90, 89, 88, 90, 91, 90, 90.5}
	bars := make([]model.PriceBar, len(closes))
	times := make([]time.Time, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{Time: start.AddDate(0, 0, i), Close: c}
		times[i] = bars[i].Time
	}
	series := model.PriceSeries{Symbol: "TEST", Bars: bars}
	ind := model.IndicatorSet{
		Times:     times,
		ShortRSI:  vals(50, 48, 46, 44, 42, 40, 38, 36, 34, 32, 30, 28, 26, 24, 27),
		MediumRSI: vals(40, 35, 30, 25, 28, 30, 32, 33, 34, 35, 36, 38, 40, 42, 45),
	}

	got := NewDetector(DefaultConfig()).Detect(series, ind)
	if got.ShortReversal != model.ReversalUp {
		t.Errorf("ShortReversal = %v, want up", got.ShortReversal)
	}
	if got.ShortRising {
		t.Error("ShortRising should be false")
	}
	if !got.MediumRising || got.MediumFalling {
		t.Errorf("medium rising/falling = %v/%v, want true/false", got.MediumRising, got.MediumFalling)
	}
	if got.Divergence != model.DivergenceBullish {
		t.Errorf("Divergence = %v, want bullish", got.Divergence)
	}
	// last 4 short values 28, 26, 24, 27
	if math.Abs(got.Slope-(-0.5)) > 1e-9 {
		t.Errorf("Slope = %v, want -0.5", got.Slope)
	}

	if empty := NewDetector(DefaultConfig()).Detect(model.PriceSeries{}, model.IndicatorSet{}); empty != model.NeutralPatterns {
		t.Errorf("empty input: expected neutral patterns, got %+v", empty)
	}
}
