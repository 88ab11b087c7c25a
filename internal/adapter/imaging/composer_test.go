package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageServer(t *testing.T, images map[string][]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := images[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
}

func TestCompose_TwoImagesGrid(t *testing.T) {
	server := imageServer(t, map[string][]byte{
		"/a.png": pngBytes(t, 120, 80, color.RGBA{R: 200, A: 255}),
		"/b.png": pngBytes(t, 80, 120, color.RGBA{B: 200, A: 255}),
	})
	defer server.Close()

	composer := New(5*time.Second, nopLogger{})
	articles := []model.Article{
		{ImageURL: server.URL + "/a.png", Year: 2023, Month: 1, Day: 27},
		{ImageURL: server.URL + "/b.png", Year: 2022, Month: 1, Day: 27},
	}

	img, err := composer.Compose(context.Background(), articles)
	require.NoError(t, err)

	// Two tiles on a 2-column grid.
	assert.Equal(t, 2*tileSize, img.Bounds().Dx())
	assert.Equal(t, tileSize, img.Bounds().Dy())
}

func TestCompose_FiveImagesGrid(t *testing.T) {
	images := make(map[string][]byte)
	var articles []model.Article
	paths := []string{"/1.png", "/2.png", "/3.png", "/4.png", "/5.png"}
	for i, p := range paths {
		images[p] = pngBytes(t, 50, 50, color.RGBA{G: uint8(40 * (i + 1)), A: 255})
	}
	server := imageServer(t, images)
	defer server.Close()
	for i, p := range paths {
		articles = append(articles, model.Article{ImageURL: server.URL + p, Year: 2023 - i, Month: 1, Day: 27})
	}

	composer := New(5*time.Second, nopLogger{})
	img, err := composer.Compose(context.Background(), articles)
	require.NoError(t, err)

	// Five tiles need a 3-column, 2-row grid.
	assert.Equal(t, 3*tileSize, img.Bounds().Dx())
	assert.Equal(t, 2*tileSize, img.Bounds().Dy())
}

func TestCompose_NoImageURLs(t *testing.T) {
	composer := New(5*time.Second, nopLogger{})
	articles := []model.Article{{Year: 2023}, {Year: 2022}}

	_, err := composer.Compose(context.Background(), articles)
	assert.ErrorIs(t, err, model.ErrNoImages)
}

func TestCompose_AllDownloadsFail(t *testing.T) {
	server := imageServer(t, nil)
	defer server.Close()

	composer := New(5*time.Second, nopLogger{})
	articles := []model.Article{{ImageURL: server.URL + "/missing.png", Year: 2023}}

	_, err := composer.Compose(context.Background(), articles)
	assert.ErrorIs(t, err, model.ErrNoImages)
}

func TestCompose_FailedDownloadSkipped(t *testing.T) {
	server := imageServer(t, map[string][]byte{
		"/ok.png": pngBytes(t, 60, 60, color.RGBA{R: 10, G: 20, B: 30, A: 255}),
	})
	defer server.Close()

	composer := New(5*time.Second, nopLogger{})
	articles := []model.Article{
		{ImageURL: server.URL + "/ok.png", Year: 2023, Month: 1, Day: 27},
		{ImageURL: server.URL + "/gone.png", Year: 2022, Month: 1, Day: 27},
	}

	img, err := composer.Compose(context.Background(), articles)
	require.NoError(t, err)
	assert.Equal(t, tileSize, img.Bounds().Dx())
	assert.Equal(t, tileSize, img.Bounds().Dy())
}

func TestCompose_DuplicateURLsCollapsed(t *testing.T) {
	server := imageServer(t, map[string][]byte{
		"/same.png": pngBytes(t, 60, 60, color.RGBA{R: 99, A: 255}),
	})
	defer server.Close()

	composer := New(5*time.Second, nopLogger{})
	articles := []model.Article{
		{ImageURL: server.URL + "/same.png", Year: 2023, Month: 1, Day: 27},
		{ImageURL: server.URL + "/same.png", Year: 2022, Month: 1, Day: 27},
	}

	img, err := composer.Compose(context.Background(), articles)
	require.NoError(t, err)
	assert.Equal(t, tileSize, img.Bounds().Dx())
}

func TestWithImages(t *testing.T) {
	articles := []model.Article{
		{ImageURL: "https://example.com/a.png"},
		{ImageURL: ""},
		{ImageURL: "https://example.com/a.png"},
		{ImageURL: "https://example.com/b.png"},
	}

	got := withImages(articles)
	require.Len(t, got, 2)
	assert.Equal(t, "https://example.com/a.png", got[0].ImageURL)
	assert.Equal(t, "https://example.com/b.png", got[1].ImageURL)
}
