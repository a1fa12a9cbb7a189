package model

// Trend is the moving-average alignment of the latest bar.
type Trend string

const (
	TrendUp      Trend = "uptrend"
	TrendDown    Trend = "downtrend"
	TrendNeutral Trend = "neutral"
)

// TrendState is a trend plus its strength qualifier.
type TrendState struct {
	Trend  Trend
	Strong bool
}

// Label is the human-readable trend tag used in signal descriptions.
// Neutral has no label.
func (t TrendState) Label() string {
	switch {
	case t.Trend == TrendUp && t.Strong:
		return "strong uptrend"
	case t.Trend == TrendUp:
		return "uptrend"
	case t.Trend == TrendDown && t.Strong:
		return "strong downtrend"
	case t.Trend == TrendDown:
		return "downtrend"
	default:
		return ""
	}
}

// Reversal is a short-horizon change of direction of an indicator.
type Reversal string

const (
	ReversalUp   Reversal = "up"
	ReversalDown Reversal = "down"
	ReversalNone Reversal = "none"
)

// Divergence is a disagreement between price and RSI direction.
type Divergence string

const (
	DivergenceBullish Divergence = "bullish"
	DivergenceBearish Divergence = "bearish"
	DivergenceNone    Divergence = "none"
)

// PatternSignals holds the pattern features derived from the trailing window.
type PatternSignals struct {
	ShortReversal Reversal
	ShortRising   bool
	MediumRising  bool
	MediumFalling bool
	Divergence    Divergence
	Slope         float64 // short RSI momentum, RSI points per bar
}

// NeutralPatterns is the value returned when nothing can be detected.
var NeutralPatterns = PatternSignals{
	ShortReversal: ReversalNone,
	Divergence:    DivergenceNone,
}

// SignalType is the discrete recommendation.
type SignalType string

const (
	StrongBuy  SignalType = "STRONG_BUY"
	Buy        SignalType = "BUY"
	Hold       SignalType = "HOLD"
	Sell       SignalType = "SELL"
	StrongSell SignalType = "STRONG_SELL"
)

// Signal is the output of the classifier.
type Signal struct {
	Type        SignalType
	Strength    float64 // 0 ~ 100
	Description string
}

// SummaryRow is one line of the multi-symbol overview.
type SummaryRow struct {
	Symbol      string
	Name        string
	Signal      SignalType
	ShortRSI    string
	MediumRSI   string
	LongRSI     string
	Strength    string
	Description string
}
