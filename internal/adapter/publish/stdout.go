package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
)

// Stdout writes the summary to standard output.
type Stdout struct {
	out io.Writer
}

var _ ports.Publisher = (*Stdout)(nil)

// NewStdout creates a stdout publisher. A nil writer defaults to
// os.Stdout.
func NewStdout(out io.Writer) *Stdout {
	if out == nil {
		out = os.Stdout
	}
	return &Stdout{out: out}
}

// Name identifies this destination.
func (s *Stdout) Name() string { return "stdout" }

// Publish prints the summary, the per-year source links, and the saved
// collage path when present.
func (s *Stdout) Publish(_ context.Context, post model.SummaryPost) error {
	divider := strings.Repeat("=", 50)

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, divider)
	fmt.Fprintln(s.out, "📝 生成されたサマリー:")
	fmt.Fprintln(s.out, divider)
	fmt.Fprintln(s.out, post.Text)
	fmt.Fprintln(s.out, divider)
	fmt.Fprintln(s.out)

	fmt.Fprintln(s.out, "🔗 元記事リンク:")
	for _, article := range post.Articles {
		fmt.Fprintf(s.out, "✦ %d年: %s / %s\n", article.Year, article.Title, article.DateStr())
		fmt.Fprintln(s.out, article.URL)
	}
	fmt.Fprintln(s.out)

	if post.ImagePath != "" {
		fmt.Fprintf(s.out, "🖼️ サマリー画像が保存されました: %s\n", post.ImagePath)
	}
	return nil
}
