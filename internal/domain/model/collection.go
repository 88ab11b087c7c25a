package model

import "time"

// YearResult is one slot of a Collection: the article published that
// year, or the reason it is absent.
type YearResult struct {
	Year    int
	Article *Article
	Err     error
}

// Found reports whether this year produced an article.
func (r YearResult) Found() bool { return r.Article != nil }

// Collection holds one YearResult per requested year offset, ordered
// descending by year. Its length always equals the requested span.
type Collection struct {
	TargetDate time.Time
	Results    []YearResult
}

// Articles returns the successfully collected articles, preserving the
// descending year order.
func (c Collection) Articles() []Article {
	out := make([]Article, 0, len(c.Results))
	for _, r := range c.Results {
		if r.Found() {
			out = append(out, *r.Article)
		}
	}
	return out
}

// Missing returns the slots that did not produce an article.
func (c Collection) Missing() []YearResult {
	out := make([]YearResult, 0, len(c.Results))
	for _, r := range c.Results {
		if !r.Found() {
			out = append(out, r)
		}
	}
	return out
}
