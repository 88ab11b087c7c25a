package ports

import (
	"context"
	"time"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
)

// ArticleSource fetches the diary entry published offset years before
// the given date. It returns model.ErrEntryNotFound when no entry
// exists for that day.
type ArticleSource interface {
	FetchYear(ctx context.Context, date time.Time, offset int) (*model.Article, error)
}
