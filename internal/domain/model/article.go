package model

import (
	"errors"
	"fmt"
)

// ErrEntryNotFound reports that no diary entry exists for the requested
// date. It is an expected outcome, distinct from transport failures.
var ErrEntryNotFound = errors.New("entry not found")

// Article represents one diary entry for one calendar year.
type Article struct {
	URL      string
	Title    string
	Content  string
	ImageURL string
	Year     int
	Month    int
	Day      int
	// SameDayLinks are related-entry links on the page that point at the
	// same month/day in earlier years. They cross-check the directly
	// constructed per-year URLs.
	SameDayLinks []string
}

// DateStr returns the entry date as YYYY年M月D日.
func (a Article) DateStr() string {
	return fmt.Sprintf("%d年%d月%d日", a.Year, a.Month, a.Day)
}

// DateLabel returns the compact YYYY.MM.DD form used on collage tiles.
func (a Article) DateLabel() string {
	return fmt.Sprintf("%d.%02d.%02d", a.Year, a.Month, a.Day)
}
