package ports

import (
	"context"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
)

// Publisher delivers a finished summary to one destination.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, post model.SummaryPost) error
}
