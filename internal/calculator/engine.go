package calculator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"RSICheck/internal/model"
)

// ErrInvalidSeries is returned when the input violates the series contract.
var ErrInvalidSeries = errors.New("invalid price series")

// Config holds the indicator lookbacks.
type Config struct {
	ShortRSIPeriod  int `yaml:"short_rsi_period"`
	MediumRSIPeriod int `yaml:"medium_rsi_period"`
	LongRSIPeriod   int `yaml:"long_rsi_period"`
	ShortMAPeriod   int `yaml:"short_ma_period"`
	LongMAPeriod    int `yaml:"long_ma_period"`
}

// DefaultConfig returns RSI 9/14/26 and MA 20/50.
func DefaultConfig() Config {
	return Config{
		ShortRSIPeriod:  9,
		MediumRSIPeriod: 14,
		LongRSIPeriod:   26,
		ShortMAPeriod:   20,
		LongMAPeriod:    50,
	}
}

// Validate checks that every period is usable.
func (c Config) Validate() error {
	periods := []struct {
		name  string
		value int
	}{
		{"short_rsi_period", c.ShortRSIPeriod},
		{"medium_rsi_period", c.MediumRSIPeriod},
		{"long_rsi_period", c.LongRSIPeriod},
		{"short_ma_period", c.ShortMAPeriod},
		{"long_ma_period", c.LongMAPeriod},
	}
	for _, p := range periods {
		if p.value < 2 {
			return fmt.Errorf("%s must be >= 2, got %d", p.name, p.value)
		}
	}
	if c.ShortMAPeriod >= c.LongMAPeriod {
		return fmt.Errorf("short_ma_period (%d) must be below long_ma_period (%d)", c.ShortMAPeriod, c.LongMAPeriod)
	}
	return nil
}

// Engine computes the full indicator set. It holds only its configuration and is
// safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// ComputeAll attaches RSI at the three configured periods and both moving averages.
// Short and empty series are not an error; their leading values are undefined.
func (e *Engine) ComputeAll(series model.PriceSeries) (model.IndicatorSet, error) {
	if err := ValidateSeries(series); err != nil {
		return model.IndicatorSet{}, err
	}

	closes := series.Closes()
	times := make([]time.Time, len(series.Bars))
	for i, b := range series.Bars {
		times[i] = b.Time
	}

	set := model.IndicatorSet{
		Times:     times,
		ShortRSI:  ComputeRSI(closes, e.cfg.ShortRSIPeriod),
		MediumRSI: ComputeRSI(closes, e.cfg.MediumRSIPeriod),
		LongRSI:   ComputeRSI(closes, e.cfg.LongRSIPeriod),
		MA20:      ComputeSMA(closes, e.cfg.ShortMAPeriod),
		MA50:      ComputeSMA(closes, e.cfg.LongMAPeriod),
		Periods: model.Periods{
			ShortRSI:  e.cfg.ShortRSIPeriod,
			MediumRSI: e.cfg.MediumRSIPeriod,
			LongRSI:   e.cfg.LongRSIPeriod,
			ShortMA:   e.cfg.ShortMAPeriod,
			LongMA:    e.cfg.LongMAPeriod,
		},
	}
	return set, nil
}

// ValidateSeries checks the series contract: every bar carries a positive, finite
// close and timestamps strictly increase.
func ValidateSeries(series model.PriceSeries) error {
	for i, b := range series.Bars {
		if b.Close == 0 {
			return fmt.Errorf("%w: %s bar %d has no close price", ErrInvalidSeries, series.Symbol, i)
		}
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) || b.Close < 0 {
			return fmt.Errorf("%w: %s bar %d close %v", ErrInvalidSeries, series.Symbol, i, b.Close)
		}
		if i > 0 && !b.Time.After(series.Bars[i-1].Time) {
			return fmt.Errorf("%w: %s bar %d timestamp %s not after %s", ErrInvalidSeries,
				series.Symbol, i, b.Time.Format(time.RFC3339), series.Bars[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}
