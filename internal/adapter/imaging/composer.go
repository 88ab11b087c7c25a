package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
)

const (
	tileSize      = 300
	downloadLimit = 4
)

var labelColor = color.RGBA{R: 255, G: 128, B: 0, A: 255}

// Composer downloads cover images and arranges them into one collage.
type Composer struct {
	client *resty.Client
	logger ports.Logger
}

var _ ports.ImageComposer = (*Composer)(nil)

// New creates a Composer with the supplied download timeout.
func New(timeout time.Duration, logger ports.Logger) *Composer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Composer{
		client: resty.New().
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(time.Second),
		logger: logger,
	}
}

// Compose downloads each article's cover image and lays the results out
// as uniform tiles on a near-square grid, each labeled with its entry
// date. Tile order follows the input article order. Individual download
// or decode failures are skipped; zero usable images yields
// model.ErrNoImages.
func (c *Composer) Compose(ctx context.Context, articles []model.Article) (image.Image, error) {
	candidates := withImages(articles)
	if len(candidates) == 0 {
		return nil, model.ErrNoImages
	}

	tiles := make([]image.Image, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadLimit)
	for i, article := range candidates {
		g.Go(func() error {
			data, err := c.download(gctx, article.ImageURL)
			if err != nil {
				c.logger.Error(gctx, "cover image download failed", "url", article.ImageURL, "error", err)
				return nil
			}

			img, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				c.logger.Error(gctx, "cover image decode failed", "url", article.ImageURL, "error", err)
				return nil
			}

			tiles[i] = renderTile(img, article.DateLabel())
			return nil
		})
	}
	_ = g.Wait()

	usable := make([]image.Image, 0, len(tiles))
	for _, tile := range tiles {
		if tile != nil {
			usable = append(usable, tile)
		}
	}
	if len(usable) == 0 {
		return nil, model.ErrNoImages
	}

	return layoutGrid(usable), nil
}

func (c *Composer) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}

// withImages keeps articles carrying a cover image, de-duplicated by
// URL, preserving input order.
func withImages(articles []model.Article) []model.Article {
	seen := make(map[string]struct{})
	out := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if a.ImageURL == "" {
			continue
		}
		if _, exists := seen[a.ImageURL]; exists {
			continue
		}
		seen[a.ImageURL] = struct{}{}
		out = append(out, a)
	}
	return out
}

// renderTile scales img aspect-fit onto a white tile and draws the date
// label in the bottom-right corner.
func renderTile(img image.Image, label string) image.Image {
	tile := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	xdraw.Draw(tile, tile.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > 0 && h > 0 {
		scale := math.Min(float64(tileSize)/float64(w), float64(tileSize)/float64(h))
		fitW := int(math.Round(float64(w) * scale))
		fitH := int(math.Round(float64(h) * scale))
		x0 := (tileSize - fitW) / 2
		y0 := (tileSize - fitH) / 2
		dst := image.Rect(x0, y0, x0+fitW, y0+fitH)
		xdraw.CatmullRom.Scale(tile, dst, img, bounds, xdraw.Over, nil)
	}

	drawLabel(tile, label)
	return tile
}

func drawLabel(dst *image.RGBA, label string) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
	}
	width := drawer.MeasureString(label).Ceil()
	drawer.Dot = fixed.P(dst.Bounds().Dx()-width-8, dst.Bounds().Dy()-6)
	drawer.DrawString(label)
}

// layoutGrid places the tiles on a ceil(sqrt(n))-column grid.
func layoutGrid(tiles []image.Image) image.Image {
	cols := int(math.Ceil(math.Sqrt(float64(len(tiles)))))
	rows := (len(tiles) + cols - 1) / cols

	canvas := image.NewRGBA(image.Rect(0, 0, cols*tileSize, rows*tileSize))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	for i, tile := range tiles {
		x := (i % cols) * tileSize
		y := (i / cols) * tileSize
		rect := image.Rect(x, y, x+tileSize, y+tileSize)
		xdraw.Draw(canvas, rect, tile, tile.Bounds().Min, xdraw.Over)
	}
	return canvas
}
