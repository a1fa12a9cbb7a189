package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"RSICheck/internal/model"
)

func TestComputeAll_Alignment(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%5)
	}
	series := makeSeries(closes...)

	set, err := NewEngine(DefaultConfig()).ComputeAll(series)
	if err != nil {
		t.Fatal(err)
	}
	for name, col := range map[string]int{
		"short": len(set.ShortRSI), "medium": len(set.MediumRSI), "long": len(set.LongRSI),
		"ma20": len(set.MA20), "ma50": len(set.MA50), "times": len(set.Times),
	} {
		if col != len(closes) {
			t.Errorf("%s: expected %d values, got %d", name, len(closes), col)
		}
	}
	if set.MA20[18].Valid || !set.MA20[19].Valid {
		t.Error("MA20 should become defined at bar 19")
	}
	if set.MA50[48].Valid || !set.MA50[49].Valid {
		t.Error("MA50 should become defined at bar 49")
	}
	if !set.Times[0].Equal(series.Bars[0].Time) {
		t.Error("times not aligned with series")
	}
	if set.Periods.ShortRSI != 9 || set.Periods.LongMA != 50 {
		t.Errorf("unexpected periods %+v", set.Periods)
	}
}

func TestComputeAll_Deterministic(t *testing.T) {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 50 + 5*math.Cos(float64(i)/4)
	}
	series := makeSeries(closes...)
	e := NewEngine(DefaultConfig())

	a, err := e.ComputeAll(series)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.ComputeAll(series)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated ComputeAll produced different results")
	}
}

func TestComputeAll_ShortAndEmpty(t *testing.T) {
	e := NewEngine(DefaultConfig())

	set, err := e.ComputeAll(makeSeries())
	if err != nil {
		t.Fatalf("empty series should not fail: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("expected empty set, got %d", set.Len())
	}

	set, err = e.ComputeAll(makeSeries(10, 11))
	if err != nil {
		t.Fatalf("short series should not fail: %v", err)
	}
	if set.MA20[1].Valid {
		t.Error("MA20 should be undefined on a 2-bar series")
	}
}

func TestComputeAll_ContractViolations(t *testing.T) {
	e := NewEngine(DefaultConfig())

	noClose := makeSeries(10, 11, 12)
	noClose.Bars[1].Close = 0

	nanClose := makeSeries(10, 11, 12)
	nanClose.Bars[2].Close = math.NaN()

	negClose := makeSeries(10, 11, 12)
	negClose.Bars[0].Close = -1

	dupTime := makeSeries(10, 11, 12)
	dupTime.Bars[2].Time = dupTime.Bars[1].Time

	tests := []struct {
		name   string
		series model.PriceSeries
	}{
		{"no close", noClose},
		{"nan close", nanClose},
		{"negative close", negClose},
		{"duplicate timestamp", dupTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.ComputeAll(tt.series); !errors.Is(err, ErrInvalidSeries) {
				t.Errorf("expected ErrInvalidSeries, got %v", err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg := DefaultConfig()
	cfg.ShortRSIPeriod = 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for period 1")
	}
	cfg = DefaultConfig()
	cfg.ShortMAPeriod = 60
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when short MA exceeds long MA")
	}
}
