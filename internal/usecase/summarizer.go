package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
)

// maxPromptContent caps how much body text goes into a prompt.
const maxPromptContent = 1000

// Summarizer generates one summary block per collected article.
type Summarizer struct {
	completer ports.Completer
	logger    ports.Logger
	retries   int
}

// NewSummarizer constructs a Summarizer. retries is the number of
// additional attempts after a failed completion call.
func NewSummarizer(completer ports.Completer, logger ports.Logger, retries int) *Summarizer {
	if retries < 0 {
		retries = 0
	}
	return &Summarizer{completer: completer, logger: logger, retries: retries}
}

// Summarize produces one entry per collected article, preserving the
// collection's descending year order. A year whose completion call
// still fails after the retries is dropped and reported, never fatal.
func (s *Summarizer) Summarize(ctx context.Context, collection model.Collection) []model.SummaryEntry {
	articles := collection.Articles()
	entries := make([]model.SummaryEntry, 0, len(articles))

	for _, article := range articles {
		text, err := s.completeWithRetry(ctx, buildSummaryPrompt(article))
		if err != nil {
			s.logger.Error(ctx, "summary generation failed", "year", article.Year, "error", err)
			continue
		}
		entries = append(entries, model.SummaryEntry{
			Year: article.Year,
			Text: text,
			URL:  article.URL,
		})
	}

	return entries
}

func (s *Summarizer) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		text, err := s.completer.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// buildSummaryPrompt asks for a short evocative summary in the diary's
// own language, headed by the entry date and one emoji.
func buildSummaryPrompt(article model.Article) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%d月%d日の以下の日記記事を50〜100文字程度でまとめてください。\n", article.Month, article.Day))
	builder.WriteString("その日の出来事や感情を要約し、見出しに絵文字を1つ添えてください。日記と同じ言語で書いてください。\n\n")
	builder.WriteString(fmt.Sprintf("タイトル: %s\n", article.Title))
	builder.WriteString(fmt.Sprintf("内容: %s\n\n", clipRunes(article.Content, maxPromptContent)))
	builder.WriteString("以下のフォーマットで出力してください：\n")
	builder.WriteString(fmt.Sprintf("## %d年%02d月%02d日 [絵文字]\n\n[50〜100文字程度の要約]\n", article.Year, article.Month, article.Day))
	return builder.String()
}

func clipRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "..."
}
