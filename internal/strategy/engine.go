package strategy

import (
	"fmt"

	"RSICheck/internal/calculator"
	"RSICheck/internal/model"
	"RSICheck/internal/pattern"
	"RSICheck/internal/trend"
)

// Params is the complete, read-only engine configuration.
type Params struct {
	Indicators calculator.Config `yaml:"indicators"`
	Trend      trend.Config      `yaml:"trend"`
	Patterns   pattern.Config    `yaml:"patterns"`
	Signal     SignalConfig      `yaml:"signal"`
}

// DefaultParams returns the default configuration of every stage.
func DefaultParams() Params {
	return Params{
		Indicators: calculator.DefaultConfig(),
		Trend:      trend.DefaultConfig(),
		Patterns:   pattern.DefaultConfig(),
		Signal:     DefaultSignalConfig(),
	}
}

// Validate checks every stage.
func (p Params) Validate() error {
	if err := p.Indicators.Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if p.Trend.MinBars < p.Indicators.LongMAPeriod {
		return fmt.Errorf("trend.min_bars (%d) must cover long_ma_period (%d)", p.Trend.MinBars, p.Indicators.LongMAPeriod)
	}
	if p.Patterns.ReversalLookback < 1 || p.Patterns.SlopeLookback < 1 || p.Patterns.DivergenceLookback < 2 {
		return fmt.Errorf("patterns: lookbacks too small: %+v", p.Patterns)
	}
	if err := p.Signal.Validate(); err != nil {
		return err
	}
	return nil
}

// Evaluation is the full result for one series.
type Evaluation struct {
	Symbol     string
	Bars       int
	Indicators model.IndicatorSet
	Trend      model.TrendState
	Patterns   model.PatternSignals
	Signal     model.Signal
}

// Engine runs the pipeline series -> indicators -> features -> signal.
// It holds no mutable state and may be shared between goroutines.
type Engine struct {
	params     Params
	indicators *calculator.Engine
	trend      *trend.Analyzer
	patterns   *pattern.Detector
}

// NewEngine creates an Engine from params.
func NewEngine(params Params) *Engine {
	return &Engine{
		params:     params,
		indicators: calculator.NewEngine(params.Indicators),
		trend:      trend.NewAnalyzer(params.Trend),
		patterns:   pattern.NewDetector(params.Patterns),
	}
}

// Params returns the engine configuration.
func (e *Engine) Params() Params { return e.params }

// Evaluate computes indicators, trend and patterns, then classifies the latest bar.
// Only contract violations return an error; short or empty series yield Hold.
func (e *Engine) Evaluate(series model.PriceSeries) (Evaluation, error) {
	ind, err := e.indicators.ComputeAll(series)
	if err != nil {
		return Evaluation{}, fmt.Errorf("compute indicators: %w", err)
	}

	ts := e.trend.Analyze(series, ind)
	patterns := e.patterns.Detect(series, ind)
	short, medium, long := ind.LatestRSI()

	sig := Classify(e.params.Signal, Input{
		Bars:     series.Len(),
		Short:    short,
		Medium:   medium,
		Long:     long,
		Trend:    ts,
		Patterns: patterns,
	})

	return Evaluation{
		Symbol:     series.Symbol,
		Bars:       series.Len(),
		Indicators: ind,
		Trend:      ts,
		Patterns:   patterns,
		Signal:     sig,
	}, nil
}
