package strategy

import (
	"fmt"

	"RSICheck/internal/model"
)

// SignalConfig holds every RSI level and multiplier used by the classifier.
type SignalConfig struct {
	MinBars int `yaml:"min_bars"`

	DefaultBuy              float64 `yaml:"default_buy"`
	DefaultSell             float64 `yaml:"default_sell"`
	UptrendSell             float64 `yaml:"uptrend_sell"`
	StrongUptrendSell       float64 `yaml:"strong_uptrend_sell"`
	StrongUptrendSellOffset float64 `yaml:"strong_uptrend_sell_offset"`
	DowntrendBuy            float64 `yaml:"downtrend_buy"`
	StrongDowntrendBuy      float64 `yaml:"strong_downtrend_buy"`

	StrongBuyMediumCeiling float64 `yaml:"strong_buy_medium_ceiling"` // medium RSI upper bound for StrongBuy
	StrongBuyLongFloor     float64 `yaml:"strong_buy_long_floor"`
	BuyMediumCeiling       float64 `yaml:"buy_medium_ceiling"`
	SellMediumFloor        float64 `yaml:"sell_medium_floor"`
	GuardExitRSI           float64 `yaml:"guard_exit_rsi"` // short RSI needed to exit a strong uptrend

	StrongDivergenceMultiplier float64 `yaml:"strong_divergence_multiplier"`
	BuyDivergenceMultiplier    float64 `yaml:"buy_divergence_multiplier"`
	SellDivergenceMultiplier   float64 `yaml:"sell_divergence_multiplier"`
	PlainSignalFactor          float64 `yaml:"plain_signal_factor"`
	GuardSellFactor            float64 `yaml:"guard_sell_factor"`
}

// DefaultSignalConfig returns the trend-adaptive defaults.
func DefaultSignalConfig() SignalConfig {
	return SignalConfig{
		MinBars: 3,

		DefaultBuy:              30,
		DefaultSell:             70,
		UptrendSell:             75,
		StrongUptrendSell:       80,
		StrongUptrendSellOffset: 5,
		DowntrendBuy:            27,
		StrongDowntrendBuy:      25,

		StrongBuyMediumCeiling: 50,
		StrongBuyLongFloor:     50,
		BuyMediumCeiling:       40,
		SellMediumFloor:        60,
		GuardExitRSI:           85,

		StrongDivergenceMultiplier: 1.2,
		BuyDivergenceMultiplier:    1.3,
		SellDivergenceMultiplier:   1.3,
		PlainSignalFactor:          0.7,
		GuardSellFactor:            0.8,
	}
}

// Validate checks that levels are within the RSI range and ordered.
func (c SignalConfig) Validate() error {
	levels := []struct {
		name  string
		value float64
	}{
		{"default_buy", c.DefaultBuy},
		{"default_sell", c.DefaultSell},
		{"uptrend_sell", c.UptrendSell},
		{"strong_uptrend_sell", c.StrongUptrendSell},
		{"downtrend_buy", c.DowntrendBuy},
		{"strong_downtrend_buy", c.StrongDowntrendBuy},
		{"guard_exit_rsi", c.GuardExitRSI},
	}
	for _, l := range levels {
		if l.value <= 0 || l.value >= 100 {
			return fmt.Errorf("signal.%s must be within (0,100), got %.1f", l.name, l.value)
		}
	}
	if c.DefaultBuy >= c.DefaultSell {
		return fmt.Errorf("signal.default_buy (%.1f) must be below default_sell (%.1f)", c.DefaultBuy, c.DefaultSell)
	}
	if c.MinBars < 1 {
		return fmt.Errorf("signal.min_bars must be positive")
	}
	return nil
}

// Thresholds are the RSI levels in effect for one trend context.
type Thresholds struct {
	Sell       float64
	StrongSell float64
	Buy        float64
	StrongBuy  float64
}

// ThresholdsFor derives the levels for the given trend. Uptrends raise the sell
// side, downtrends lower the buy side.
func ThresholdsFor(cfg SignalConfig, ts model.TrendState) Thresholds {
	th := Thresholds{
		Sell:       cfg.DefaultSell,
		StrongSell: cfg.DefaultSell,
		Buy:        cfg.DefaultBuy,
		StrongBuy:  cfg.DefaultBuy,
	}
	switch {
	case ts.Trend == model.TrendUp && ts.Strong:
		th.Sell = cfg.StrongUptrendSell
		th.StrongSell = cfg.StrongUptrendSell + cfg.StrongUptrendSellOffset
	case ts.Trend == model.TrendUp:
		th.Sell = cfg.UptrendSell
		th.StrongSell = cfg.StrongUptrendSell
	case ts.Trend == model.TrendDown && ts.Strong:
		th.Buy = cfg.DowntrendBuy
		th.StrongBuy = cfg.StrongDowntrendBuy
	case ts.Trend == model.TrendDown:
		th.Buy = cfg.DowntrendBuy
		th.StrongBuy = cfg.DowntrendBuy
	}
	return th
}
