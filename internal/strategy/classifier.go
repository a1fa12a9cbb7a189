package strategy

import (
	"fmt"

	"RSICheck/internal/model"
)

// Input is the latest feature snapshot of one series.
type Input struct {
	Bars     int
	Short    model.NullFloat
	Medium   model.NullFloat
	Long     model.NullFloat
	Trend    model.TrendState
	Patterns model.PatternSignals
}

const (
	descInsufficientData = "insufficient data"
	descRSIUnavailable   = "RSI unavailable"
)

// Classify maps a feature snapshot to a signal. Rules are checked in order and the
// first match wins: StrongBuy, Buy, the strong-uptrend guard, StrongSell, Sell, Hold.
// Each call is independent; no history is carried between calls.
func Classify(cfg SignalConfig, in Input) model.Signal {
	if in.Bars < cfg.MinBars {
		return hold(descInsufficientData)
	}
	if !in.Short.Valid || !in.Medium.Valid || !in.Long.Valid {
		return hold(descRSIUnavailable)
	}

	short, medium, long := in.Short.Float64, in.Medium.Float64, in.Long.Float64
	th := ThresholdsFor(cfg, in.Trend)
	p := in.Patterns

	// buy side
	if short <= th.StrongBuy && p.ShortReversal == model.ReversalUp &&
		medium >= th.StrongBuy && medium <= cfg.StrongBuyMediumCeiling && p.MediumRising &&
		long >= cfg.StrongBuyLongFloor {
		strength := buyStrength(short, medium, long)
		desc := fmt.Sprintf("short RSI turning up (%.1f), medium RSI rising (%.1f), long RSI stable (%.1f)",
			short, medium, long)
		if p.Divergence == model.DivergenceBullish {
			strength = boost(strength, cfg.StrongDivergenceMultiplier)
			desc = "bullish divergence! " + desc
		}
		return model.Signal{Type: model.StrongBuy, Strength: strength, Description: capitalize(desc)}
	}

	if short <= th.Buy && medium <= cfg.BuyMediumCeiling {
		strength := buyStrength(short, medium, long) * cfg.PlainSignalFactor
		desc := fmt.Sprintf("short RSI oversold (%.1f), medium RSI low (%.1f)", short, medium)
		if p.Divergence == model.DivergenceBullish {
			strength = boost(strength, cfg.BuyDivergenceMultiplier)
			desc = "bullish divergence + " + desc
		}
		return model.Signal{Type: model.Buy, Strength: clampStrength(strength), Description: capitalize(desc)}
	}

	// strong rallies can stay overbought; only exit on a clear downturn
	if in.Trend.Trend == model.TrendUp && in.Trend.Strong {
		if short >= cfg.GuardExitRSI && p.ShortReversal == model.ReversalDown {
			return model.Signal{
				Type:        model.Sell,
				Strength:    clampStrength(sellStrength(short, medium, long) * cfg.GuardSellFactor),
				Description: fmt.Sprintf("Short RSI turning down in a strong uptrend (%.1f), caution", short),
			}
		}
		if short >= th.Sell {
			return model.Signal{
				Type:        model.Hold,
				Description: fmt.Sprintf("Short RSI overbought (%.1f) but trend strong, hold", short),
			}
		}
	}

	// sell side
	if short >= th.StrongSell && p.ShortReversal == model.ReversalDown &&
		medium >= th.Sell && p.MediumFalling &&
		long >= th.Sell {
		strength := sellStrength(short, medium, long)
		desc := fmt.Sprintf("short RSI turning down (%.1f), medium RSI falling (%.1f), long RSI overheated (%.1f)",
			short, medium, long)
		if p.Divergence == model.DivergenceBearish {
			strength = boost(strength, cfg.StrongDivergenceMultiplier)
			desc = "bearish divergence! " + desc
		}
		return model.Signal{Type: model.StrongSell, Strength: strength, Description: capitalize(desc)}
	}

	if short >= th.Sell && medium >= cfg.SellMediumFloor {
		strength := sellStrength(short, medium, long) * cfg.PlainSignalFactor
		desc := fmt.Sprintf("short RSI overbought (%.1f), medium RSI high (%.1f)", short, medium)
		if p.Divergence == model.DivergenceBearish {
			strength = boost(strength, cfg.SellDivergenceMultiplier)
			desc = "bearish divergence + " + desc
		}
		return model.Signal{Type: model.Sell, Strength: clampStrength(strength), Description: capitalize(desc)}
	}

	desc := fmt.Sprintf("Short RSI: %.1f, Medium RSI: %.1f, Long RSI: %.1f", short, medium, long)
	if label := in.Trend.Label(); label != "" {
		desc += " [" + label + "]"
	}
	return hold(desc)
}

func hold(desc string) model.Signal {
	return model.Signal{Type: model.Hold, Strength: 0, Description: desc}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
