package trend

import "RSICheck/internal/model"

// Config holds the trend strength thresholds, in percent.
type Config struct {
	MinBars       int     `yaml:"min_bars"`
	PriceMAGapPct float64 `yaml:"price_ma_gap_pct"` // close vs MA20
	MASpreadPct   float64 `yaml:"ma_spread_pct"`    // MA20 vs MA50
}

// DefaultConfig returns 50 bars, 5% and 3%.
func DefaultConfig() Config {
	return Config{
		MinBars:       50,
		PriceMAGapPct: 5.0,
		MASpreadPct:   3.0,
	}
}

// Analyzer classifies the moving-average alignment of the latest bar.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze returns the trend and whether it is strong.
func (a *Analyzer) Analyze(series model.PriceSeries, ind model.IndicatorSet) model.TrendState {
	t := a.Detect(series, ind)
	return model.TrendState{Trend: t, Strong: a.IsStrong(series, ind, t)}
}

// Detect returns uptrend when close > MA20 > MA50, downtrend when close < MA20 < MA50,
// neutral otherwise or when fewer than MinBars bars exist.
func (a *Analyzer) Detect(series model.PriceSeries, ind model.IndicatorSet) model.Trend {
	price, ma20, ma50, ok := a.latest(series, ind)
	if !ok {
		return model.TrendNeutral
	}
	switch {
	case price > ma20 && ma20 > ma50:
		return model.TrendUp
	case price < ma20 && ma20 < ma50:
		return model.TrendDown
	default:
		return model.TrendNeutral
	}
}

// IsStrong reports whether price and MA20 are far enough from their reference averages.
// Neutral is never strong.
func (a *Analyzer) IsStrong(series model.PriceSeries, ind model.IndicatorSet, t model.Trend) bool {
	price, ma20, ma50, ok := a.latest(series, ind)
	if !ok {
		return false
	}
	switch t {
	case model.TrendUp:
		return (price-ma20)/ma20*100 > a.cfg.PriceMAGapPct &&
			(ma20-ma50)/ma50*100 > a.cfg.MASpreadPct
	case model.TrendDown:
		return (ma20-price)/ma20*100 > a.cfg.PriceMAGapPct &&
			(ma50-ma20)/ma50*100 > a.cfg.MASpreadPct
	default:
		return false
	}
}

func (a *Analyzer) latest(series model.PriceSeries, ind model.IndicatorSet) (price, ma20, ma50 float64, ok bool) {
	if series.Len() < a.cfg.MinBars || ind.Len() != series.Len() {
		return 0, 0, 0, false
	}
	bar, _ := series.Last()
	m20, m50 := ind.LatestMA()
	if !m20.Valid || !m50.Valid {
		return 0, 0, 0, false
	}
	return bar.Close, m20.Float64, m50.Float64, true
}
