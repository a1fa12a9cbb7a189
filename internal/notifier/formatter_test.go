package notifier

import (
	"strings"
	"testing"
	"time"

	"RSICheck/internal/model"
	"RSICheck/internal/strategy"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		ticker string
		price  float64
		want   string
	}{
		{"TSLA", 251.456, "$251.46"},
		{"069500.KS", 35210.4, "₩35,210"},
		{"035720.KQ", 1234567, "₩1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.ticker, tt.price); got != tt.want {
			t.Errorf("FormatPrice(%s, %v) = %q, want %q", tt.ticker, tt.price, got, tt.want)
		}
	}
}

func TestSignalEmoji(t *testing.T) {
	want := map[model.SignalType]string{
		model.StrongBuy:  "🟦",
		model.Buy:        "🟢",
		model.Hold:       "⚪",
		model.Sell:       "🟠",
		model.StrongSell: "🔴",
	}
	for s, e := range want {
		if got := SignalEmoji(s); got != e {
			t.Errorf("SignalEmoji(%s) = %s, want %s", s, got, e)
		}
	}
}

func TestFormatSummary(t *testing.T) {
	rows := []model.SummaryRow{
		{Symbol: "TSLA", Name: "Tesla", Signal: model.Buy, ShortRSI: "28.1", MediumRSI: "35.0", LongRSI: "45.0", Strength: "13.9", Description: "Short RSI oversold (28.1), medium RSI low (35.0)"},
		{Symbol: "NVDA", Name: "Nvidia", Signal: model.Hold, ShortRSI: "N/A", MediumRSI: "N/A", LongRSI: "N/A", Strength: "0.0", Description: "insufficient data"},
	}
	msg := FormatSummary(rows, time.Date(2024, 5, 6, 22, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"2024-05-06 22:00",
		"<pre>",
		"TSLA       BUY          28.1  35.0  45.0  13.9",
		"NVDA       HOLD          N/A   N/A   N/A   0.0",
		"🟢 <b>Tesla</b> (TSLA): Short RSI oversold",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("summary missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "insufficient data") {
		t.Error("hold rows should not be listed below the table")
	}
	if strings.Index(msg, "TSLA") > strings.Index(msg, "NVDA") {
		t.Error("rows out of order")
	}
}

func TestFormatSummary_Empty(t *testing.T) {
	if msg := FormatSummary(nil, time.Now()); !strings.Contains(msg, "Watchlist is empty") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestFormatSignalReport(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := model.PriceSeries{Symbol: "SOXL"}
	price := 100.0
	for i := 0; i < 80; i++ {
		series.Bars = append(series.Bars, model.PriceBar{
			Time: start.AddDate(0, 0, i), Close: price, High: price * 1.01, Low: price * 0.99,
		})
		price *= 0.98
	}
	entry := model.SymbolSeries{
		Item:   model.WatchItem{Name: "SOXL <3x>", Ticker: "SOXL"},
		Series: series,
		Quote:  model.Quote{Price: series.Bars[79].Close, Change: -0.5, ChangePercent: -2, Valid: true},
	}
	ev, err := strategy.NewEngine(strategy.DefaultParams()).Evaluate(series)
	if err != nil {
		t.Fatal(err)
	}

	msg := FormatSignalReport(entry, ev, "6mo")
	for _, want := range []string{
		"🟢 <b>SOXL &lt;3x&gt; (SOXL)</b> | BUY",
		"Strength: 56.0/100",
		"9-day: 0.0 (oversold)",
		"26-day: 0.0 (oversold)",
		"Trend: strong downtrend",
		"Range (6mo):",
		"at 0%",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatSignalReport_NoData(t *testing.T) {
	entry := model.SymbolSeries{Item: model.WatchItem{Name: "Tesla", Ticker: "TSLA"}}
	ev, err := strategy.NewEngine(strategy.DefaultParams()).Evaluate(entry.Series)
	if err != nil {
		t.Fatal(err)
	}
	msg := FormatSignalReport(entry, ev, "6mo")
	if !strings.Contains(msg, "insufficient data") || strings.Contains(msg, "RSI</b>") {
		t.Errorf("unexpected report for empty series:\n%s", msg)
	}
}
