package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"RSICheck/internal/calculator"
	"RSICheck/internal/model"
	"RSICheck/internal/strategy"
)

const disclaimer = "⚠️ <i>RSI-based reference only, not investment advice.</i>"

var signalEmoji = map[model.SignalType]string{
	model.StrongBuy:  "🟦",
	model.Buy:        "🟢",
	model.Hold:       "⚪",
	model.Sell:       "🟠",
	model.StrongSell: "🔴",
}

// SignalEmoji returns the marker shown next to a signal.
func SignalEmoji(s model.SignalType) string {
	if e, ok := signalEmoji[s]; ok {
		return e
	}
	return "⚪"
}

// FormatPrice renders a price in the listing currency. Korean listings are
// shown in whole won, everything else in dollars.
func FormatPrice(ticker string, price float64) string {
	if isKRW(ticker) {
		return "₩" + humanize.Comma(int64(math.Round(price)))
	}
	return fmt.Sprintf("$%.2f", price)
}

func formatChange(ticker string, q model.Quote) string {
	if isKRW(ticker) {
		sign := "+"
		if q.Change < 0 {
			sign = "-"
		}
		return fmt.Sprintf("%s%s, %+.2f%%", sign, humanize.Comma(int64(math.Abs(math.Round(q.Change)))), q.ChangePercent)
	}
	return fmt.Sprintf("%+.2f, %+.2f%%", q.Change, q.ChangePercent)
}

func isKRW(ticker string) bool {
	return strings.HasSuffix(ticker, ".KS") || strings.HasSuffix(ticker, ".KQ")
}

func rsiZone(v model.NullFloat) string {
	switch {
	case !v.Valid:
		return ""
	case v.Float64 < 30:
		return " (oversold)"
	case v.Float64 > 70:
		return " (overbought)"
	default:
		return " (neutral)"
	}
}

// FormatSignalReport formats the full evaluation of one symbol into a Telegram message.
func FormatSignalReport(entry model.SymbolSeries, ev strategy.Evaluation, rng string) string {
	var b strings.Builder
	item := entry.Item
	sig := ev.Signal

	b.WriteString(fmt.Sprintf("%s <b>%s (%s)</b> | %s\n", SignalEmoji(sig.Type),
		html.EscapeString(item.Name), html.EscapeString(item.Ticker), sig.Type))
	if entry.Quote.Valid {
		b.WriteString(fmt.Sprintf("Price: %s (%s)\n", FormatPrice(item.Ticker, entry.Quote.Price), formatChange(item.Ticker, entry.Quote)))
	}
	if sig.Strength > 0 {
		b.WriteString(fmt.Sprintf("Strength: %.1f/100\n", sig.Strength))
	}
	b.WriteString(fmt.Sprintf("<i>%s</i>\n\n", html.EscapeString(sig.Description)))

	if ev.Bars == 0 {
		b.WriteString(disclaimer)
		return b.String()
	}

	p := ev.Indicators.Periods
	short, medium, long := ev.Indicators.LatestRSI()
	b.WriteString("📈 <b>RSI</b>\n")
	b.WriteString(fmt.Sprintf("  %d-day: %s%s\n", p.ShortRSI, short.Format(), rsiZone(short)))
	b.WriteString(fmt.Sprintf("  %d-day: %s%s\n", p.MediumRSI, medium.Format(), rsiZone(medium)))
	b.WriteString(fmt.Sprintf("  %d-day: %s%s\n", p.LongRSI, long.Format(), rsiZone(long)))

	ma20, ma50 := ev.Indicators.LatestMA()
	b.WriteString(fmt.Sprintf("MA%d: %s | MA%d: %s\n", p.ShortMA, formatMA(item.Ticker, ma20), p.LongMA, formatMA(item.Ticker, ma50)))
	if label := ev.Trend.Label(); label != "" {
		b.WriteString(fmt.Sprintf("Trend: %s\n", label))
	} else {
		b.WriteString("Trend: neutral\n")
	}
	if patterns := describePatterns(ev.Patterns); patterns != "" {
		b.WriteString(fmt.Sprintf("Patterns: %s\n", patterns))
	}

	if high, low, err := calculator.PeriodRange(entry.Series.Bars, 0); err == nil && entry.Quote.Valid {
		if pos, err := calculator.RangePosition(entry.Quote.Price, high, low); err == nil {
			b.WriteString(fmt.Sprintf("Range (%s): %s ~ %s, at %.0f%%\n", rng,
				FormatPrice(item.Ticker, low), FormatPrice(item.Ticker, high), pos*100))
		}
	}

	b.WriteString("\n" + disclaimer)
	return b.String()
}

func formatMA(ticker string, v model.NullFloat) string {
	if !v.Valid {
		return "N/A"
	}
	return FormatPrice(ticker, v.Float64)
}

func describePatterns(p model.PatternSignals) string {
	var parts []string
	switch p.ShortReversal {
	case model.ReversalUp:
		parts = append(parts, "short RSI turning up")
	case model.ReversalDown:
		parts = append(parts, "short RSI turning down")
	}
	switch {
	case p.MediumRising:
		parts = append(parts, "medium RSI rising")
	case p.MediumFalling:
		parts = append(parts, "medium RSI falling")
	}
	switch p.Divergence {
	case model.DivergenceBullish:
		parts = append(parts, "bullish divergence")
	case model.DivergenceBearish:
		parts = append(parts, "bearish divergence")
	}
	if p.Slope != 0 {
		parts = append(parts, fmt.Sprintf("slope %+.2f/bar", p.Slope))
	}
	return strings.Join(parts, ", ")
}

// FormatSummary formats the overview table of a watchlist scan.
func FormatSummary(rows []model.SummaryRow, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>RSI watchlist</b> | %s\n\n", at.Format("2006-01-02 15:04")))
	if len(rows) == 0 {
		b.WriteString("Watchlist is empty.\n")
		return b.String()
	}

	b.WriteString("<pre>\n")
	b.WriteString(fmt.Sprintf("%-10s %-11s %5s %5s %5s %5s\n", "SYMBOL", "SIGNAL", "S", "M", "L", "STR"))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-10s %-11s %5s %5s %5s %5s\n",
			html.EscapeString(r.Symbol), r.Signal, r.ShortRSI, r.MediumRSI, r.LongRSI, r.Strength))
	}
	b.WriteString("</pre>\n")

	for _, r := range rows {
		if r.Signal == model.Hold {
			continue
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b> (%s): %s\n", SignalEmoji(r.Signal),
			html.EscapeString(r.Name), html.EscapeString(r.Symbol), html.EscapeString(r.Description)))
	}
	b.WriteString("\n" + disclaimer)
	return b.String()
}
