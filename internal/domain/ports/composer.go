package ports

import (
	"context"
	"image"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
)

// ImageComposer arranges the articles' cover images into one collage.
// It returns model.ErrNoImages when nothing could be downloaded.
type ImageComposer interface {
	Compose(ctx context.Context, articles []model.Article) (image.Image, error)
}
