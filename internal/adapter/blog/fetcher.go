package blog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
)

// entryTimeSuffix is the fixed time segment every diary entry URL ends with.
const entryTimeSuffix = "210000"

var entryPathPattern = regexp.MustCompile(`/entry/(\d{4})/(\d{2})/(\d{2})/\d{6}/?$`)

// Fetcher retrieves diary entries from the blog.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.ArticleSource = (*Fetcher)(nil)

// New creates a Fetcher against the given blog base URL.
func New(baseURL string, timeout time.Duration, logger ports.Logger) *Fetcher {
	return &Fetcher{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// TargetDate returns the calendar date offset years before date. Go's
// AddDate normalization applies, so Feb 29 minus a year lands on Mar 1
// of the non-leap target year.
func TargetDate(date time.Time, offset int) time.Time {
	return date.AddDate(-offset, 0, 0)
}

// EntryURL returns the canonical entry URL for the given date.
func (f *Fetcher) EntryURL(date time.Time) string {
	return fmt.Sprintf("%s/entry/%04d/%02d/%02d/%s/",
		f.baseURL, date.Year(), int(date.Month()), date.Day(), entryTimeSuffix)
}

// FetchYear retrieves the entry published offset years before date. A
// missing entry yields model.ErrEntryNotFound; transport and server
// failures yield ordinary errors.
func (f *Fetcher) FetchYear(ctx context.Context, date time.Time, offset int) (*model.Article, error) {
	target := TargetDate(date, offset)
	pageURL := f.EntryURL(target)

	f.logger.Debug(ctx, "fetching entry", "url", pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SeconSummaryBot/1.0)")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, model.ErrEntryNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	return parseEntry(resp.Body, pageURL, target)
}

// parseEntry builds an Article from an entry page. Pages missing a
// title or a body region are treated as nonexistent entries so markup
// drift fails soft.
func parseEntry(r io.Reader, pageURL string, date time.Time) (*model.Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		return nil, model.ErrEntryNotFound
	}
	// Entry titles carry the site name as a " - " suffix.
	if idx := strings.Index(title, " - "); idx > 0 {
		title = title[:idx]
	}

	body := doc.Find(".entry-content").First()
	if body.Length() == 0 {
		body = doc.Find("article").First()
	}
	if body.Length() == 0 {
		return nil, model.ErrEntryNotFound
	}
	body.Find("script, style").Remove()

	content := blockText(body)
	if content == "" {
		return nil, model.ErrEntryNotFound
	}

	imageURL, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")

	related := relatedLinks(doc, pageURL)

	return &model.Article{
		URL:          pageURL,
		Title:        title,
		Content:      content,
		ImageURL:     strings.TrimSpace(imageURL),
		Year:         date.Year(),
		Month:        int(date.Month()),
		Day:          date.Day(),
		SameDayLinks: sameDayLinks(related, date),
	}, nil
}

// relatedLinks collects absolute URLs from the page's similar-entries
// region.
func relatedLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find(".similar-entries a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})
	return links
}

// sameDayLinks keeps related links that point at the same month/day in
// an earlier year than date.
func sameDayLinks(links []string, date time.Time) []string {
	var out []string
	for _, link := range links {
		match := entryPathPattern.FindStringSubmatch(link)
		if match == nil {
			continue
		}
		year, _ := strconv.Atoi(match[1])
		month, _ := strconv.Atoi(match[2])
		day, _ := strconv.Atoi(match[3])
		if year < date.Year() && month == int(date.Month()) && day == date.Day() {
			out = append(out, link)
		}
	}
	return out
}

// blockText renders the selection as plain text, keeping line breaks at
// block-level elements.
func blockText(sel *goquery.Selection) string {
	var builder strings.Builder
	for _, node := range sel.Nodes {
		writeNodeText(node, &builder)
	}
	return strings.TrimSpace(builder.String())
}

func writeNodeText(node *html.Node, builder *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		builder.WriteString(node.Data)
	case html.ElementNode:
		if node.Data == "br" || node.Data == "p" || node.Data == "li" {
			builder.WriteRune('\n')
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeNodeText(child, builder)
	}

	if node.Type == html.ElementNode && (node.Data == "p" || node.Data == "li") {
		builder.WriteRune('\n')
	}
}
