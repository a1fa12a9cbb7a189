package pattern

import "RSICheck/internal/model"

// Config holds the pattern lookbacks.
type Config struct {
	ReversalLookback   int `yaml:"reversal_lookback"`
	DivergenceLookback int `yaml:"divergence_lookback"`
	SlopeLookback      int `yaml:"slope_lookback"`
}

// DefaultConfig returns lookbacks 2, 14 and 3.
func DefaultConfig() Config {
	return Config{
		ReversalLookback:   2,
		DivergenceLookback: 14,
		SlopeLookback:      3,
	}
}

// Detector runs every pattern check over the trailing window of an indicator set.
type Detector struct {
	cfg Config
}

// NewDetector creates a Detector.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect derives the pattern features used by the classifier. Reversal, rise and
// slope read the short RSI; rise/fall and divergence read the medium RSI.
func (d *Detector) Detect(series model.PriceSeries, ind model.IndicatorSet) model.PatternSignals {
	if series.Empty() || ind.Len() != series.Len() {
		return model.NeutralPatterns
	}
	return model.PatternSignals{
		ShortReversal: DetectReversal(ind.ShortRSI, d.cfg.ReversalLookback),
		ShortRising:   IsRising(ind.ShortRSI, d.cfg.ReversalLookback),
		MediumRising:  IsRising(ind.MediumRSI, d.cfg.ReversalLookback),
		MediumFalling: IsFalling(ind.MediumRSI, d.cfg.ReversalLookback),
		Divergence:    DetectDivergence(series.Closes(), ind.MediumRSI, d.cfg.DivergenceLookback),
		Slope:         ComputeSlope(ind.ShortRSI, d.cfg.SlopeLookback),
	}
}
