package model

import (
	"errors"
	"strings"
	"time"
)

// ErrNoImages signals that zero cover images could be retrieved. The
// collage step is skipped in that case; it is not a run failure.
var ErrNoImages = errors.New("no images available")

// SummaryEntry is one year's generated summary block.
type SummaryEntry struct {
	Year int
	Text string
	URL  string
}

// RenderSummaryText joins the per-year entries into a single document,
// each block followed by its source link.
func RenderSummaryText(entries []SummaryEntry) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, strings.TrimSpace(e.Text)+"\n"+e.URL)
	}
	return strings.Join(blocks, "\n\n")
}

// SummaryPost is the material handed to publishers: the rendered
// summary, the source articles for link metadata, and the saved collage
// path when one exists.
type SummaryPost struct {
	Text      string
	Articles  []Article
	ImagePath string
}

// PostResult is the outcome of delivering to one destination.
type PostResult struct {
	Destination string
	Err         error
}

// RunReport aggregates the outcome of one pipeline run.
type RunReport struct {
	TargetDate     time.Time
	YearsRequested int
	YearsCollected int
	MissingYears   []int
	SummaryCount   int
	TextPath       string
	ImagePath      string
	Posts          []PostResult
}

// Delivered counts destinations that accepted the post.
func (r RunReport) Delivered() int {
	n := 0
	for _, p := range r.Posts {
		if p.Err == nil {
			n++
		}
	}
	return n
}
