package strategy

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"RSICheck/internal/model"
)

// EvaluateBatch evaluates every entry of batch concurrently. Results keep the
// batch order.
func (e *Engine) EvaluateBatch(ctx context.Context, batch model.Batch) ([]Evaluation, error) {
	evals := make([]Evaluation, len(batch))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, entry := range batch {
		i, entry := i, entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ev, err := e.Evaluate(entry.Series)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.Item.Ticker, err)
			}
			ev.Symbol = entry.Item.Ticker
			evals[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return evals, nil
}

// Summarize returns one overview row per batch entry, in batch order.
func (e *Engine) Summarize(ctx context.Context, batch model.Batch) ([]model.SummaryRow, error) {
	evals, err := e.EvaluateBatch(ctx, batch)
	if err != nil {
		return nil, err
	}
	rows := make([]model.SummaryRow, len(batch))
	for i, ev := range evals {
		rows[i] = ev.Row(batch[i].Item)
	}
	return rows, nil
}

// Row formats the evaluation for the overview table.
func (ev Evaluation) Row(item model.WatchItem) model.SummaryRow {
	short, medium, long := ev.Indicators.LatestRSI()
	return model.SummaryRow{
		Symbol:      item.Ticker,
		Name:        item.Name,
		Signal:      ev.Signal.Type,
		ShortRSI:    short.Format(),
		MediumRSI:   medium.Format(),
		LongRSI:     long.Format(),
		Strength:    fmt.Sprintf("%.1f", ev.Signal.Strength),
		Description: ev.Signal.Description,
	}
}
