package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
)

type fakeCompleter struct {
	// failures is how many calls fail before success.
	failures int
	calls    int
	prompts  []string
	reply    string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.calls <= f.failures {
		return "", errors.New("rate limited")
	}
	return f.reply, nil
}

func collectionOf(articles ...*model.Article) model.Collection {
	results := make([]model.YearResult, 0, len(articles))
	for _, a := range articles {
		results = append(results, model.YearResult{Year: a.Year, Article: a})
	}
	return model.Collection{
		TargetDate: time.Date(2024, 1, 27, 0, 0, 0, 0, time.UTC),
		Results:    results,
	}
}

func TestSummarize_OneEntryPerArticle(t *testing.T) {
	completer := &fakeCompleter{reply: "## 2023年01月27日 ☀️\n\n散歩した。"}
	summarizer := NewSummarizer(completer, nopLogger{}, 0)

	collection := collectionOf(entryForYear(2023), entryForYear(2022))
	entries := summarizer.Summarize(context.Background(), collection)

	require.Len(t, entries, 2)
	assert.Equal(t, 2023, entries[0].Year)
	assert.Equal(t, "https://secon.dev/entry/2023/01/27/210000/", entries[0].URL)
	assert.Equal(t, 2022, entries[1].Year)
	assert.Equal(t, 2, completer.calls)
}

func TestSummarize_RetriesThenSucceeds(t *testing.T) {
	completer := &fakeCompleter{failures: 2, reply: "## 2023年01月27日 🌧\n\n雨の日。"}
	summarizer := NewSummarizer(completer, nopLogger{}, 2)

	entries := summarizer.Summarize(context.Background(), collectionOf(entryForYear(2023)))

	require.Len(t, entries, 1)
	assert.Equal(t, 3, completer.calls)
}

func TestSummarize_DropsYearAfterRetriesExhausted(t *testing.T) {
	completer := &fakeCompleter{failures: 100}
	summarizer := NewSummarizer(completer, nopLogger{}, 1)

	entries := summarizer.Summarize(context.Background(), collectionOf(entryForYear(2023), entryForYear(2022)))

	assert.Empty(t, entries)
	// Two attempts per article: the first call plus one retry.
	assert.Equal(t, 4, completer.calls)
}

func TestBuildSummaryPrompt(t *testing.T) {
	article := model.Article{
		Title:   "長い散歩",
		Content: "朝から晩まで歩いた。",
		Year:    2023,
		Month:   1,
		Day:     7,
	}

	prompt := buildSummaryPrompt(article)

	assert.Contains(t, prompt, "1月7日")
	assert.Contains(t, prompt, "50〜100文字")
	assert.Contains(t, prompt, "タイトル: 長い散歩")
	assert.Contains(t, prompt, "朝から晩まで歩いた。")
	assert.Contains(t, prompt, "## 2023年01月07日 [絵文字]")
}

func TestBuildSummaryPrompt_ClipsLongContent(t *testing.T) {
	article := model.Article{
		Title:   "長文",
		Content: strings.Repeat("あ", maxPromptContent+500),
		Year:    2023, Month: 1, Day: 7,
	}

	prompt := buildSummaryPrompt(article)

	assert.Contains(t, prompt, strings.Repeat("あ", maxPromptContent)+"...")
	assert.NotContains(t, prompt, strings.Repeat("あ", maxPromptContent+1))
}
