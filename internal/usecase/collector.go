package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
)

const fetchLimit = 8

// Collector fetches the same calendar day across a span of past years.
type Collector struct {
	source ports.ArticleSource
	logger ports.Logger
}

// NewCollector constructs a Collector.
func NewCollector(source ports.ArticleSource, logger ports.Logger) *Collector {
	return &Collector{source: source, logger: logger}
}

// Collect fetches offsets 1..years concurrently. The result always has
// one slot per offset, strictly descending by year regardless of
// completion order; a failed year keeps its error in place instead of
// aborting the siblings.
func (c *Collector) Collect(ctx context.Context, date time.Time, years int) model.Collection {
	if years < 0 {
		years = 0
	}
	results := make([]model.YearResult, years)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i := 0; i < years; i++ {
		offset := i + 1
		g.Go(func() error {
			year := date.AddDate(-offset, 0, 0).Year()
			article, err := c.source.FetchYear(gctx, date, offset)
			switch {
			case err == nil:
				results[offset-1] = model.YearResult{Year: year, Article: article}
			case errors.Is(err, model.ErrEntryNotFound):
				c.logger.Debug(gctx, "no entry published", "year", year)
				results[offset-1] = model.YearResult{Year: year, Err: err}
			default:
				c.logger.Error(gctx, "entry fetch failed", "year", year, "error", err)
				results[offset-1] = model.YearResult{Year: year, Err: err}
			}
			return nil
		})
	}
	_ = g.Wait()

	return model.Collection{TargetDate: date, Results: results}
}
