// Package feeds loads the configured feed list and fetches the latest
// entries of each RSS/Atom feed.
package feeds

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaxEntriesPerFeed caps how many entries are taken from each feed.
const MaxEntriesPerFeed = 5

// Article is one feed entry.
type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published,omitempty"`
	Source    string `json:"source"`
}

// Result is the outcome of fetching a single feed: either its articles or
// the error that prevented reading it.
type Result struct {
	URL      string
	Articles []Article
	Err      error
}

// Item is one element of the rendered article list. It serialises as an
// article, or as {"error": "..."} when the feed failed.
type Item struct {
	*Article
	Error string `json:"error,omitempty"`
}

// Flatten turns per-feed results into a single ordered list, replacing
// each failed feed by one error marker.
func Flatten(results []Result) []Item {
	var items []Item
	for _, r := range results {
		if r.Err != nil {
			items = append(items, Item{Error: fmt.Sprintf("Failed to fetch %s: %v", r.URL, r.Err)})
			continue
		}
		for i := range r.Articles {
			items = append(items, Item{Article: &r.Articles[i]})
		}
	}
	return items
}

// Options configures a Fetcher.
type Options struct {
	HTTPClient *http.Client
	UserAgent  string
	// Concurrency is the number of feeds fetched at once. 1 fetches
	// sequentially.
	Concurrency int
	Logger      *zap.Logger
}

// Fetcher downloads and parses feeds.
type Fetcher struct {
	httpClient  *http.Client
	userAgent   string
	concurrency int
	sanitizer   *bluemonday.Policy
	logger      *zap.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts Options) *Fetcher {
	f := &Fetcher{
		httpClient:  opts.HTTPClient,
		userAgent:   opts.UserAgent,
		concurrency: opts.Concurrency,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      opts.Logger,
	}
	if f.httpClient == nil {
		f.httpClient = &http.Client{}
	}
	if f.concurrency < 1 {
		f.concurrency = 1
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// FetchArticles fetches every URL and returns one Result per URL in the
// same order. A failing feed never stops the others.
func (f *Fetcher) FetchArticles(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = f.fetchOne(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// fetchOne fetches a single feed. A fresh parser is used per call since
// gofeed parsers keep per-parse state.
func (f *Fetcher) fetchOne(ctx context.Context, feedURL string) Result {
	parser := gofeed.NewParser()
	parser.Client = f.httpClient
	if f.userAgent != "" {
		parser.UserAgent = f.userAgent
	}

	start := time.Now()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		f.logger.Warn("feed fetch failed", zap.String("url", feedURL), zap.Error(err))
		return Result{URL: feedURL, Err: err}
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = feedURL
	}

	n := min(len(feed.Items), MaxEntriesPerFeed)
	articles := make([]Article, 0, n)
	for _, item := range feed.Items[:n] {
		articles = append(articles, Article{
			Title:     f.cleanTitle(item.Title),
			Link:      itemLink(item),
			Published: published(item),
			Source:    source,
		})
	}

	f.logger.Debug("feed fetched",
		zap.String("url", feedURL),
		zap.Int("entries", len(feed.Items)),
		zap.Int("kept", len(articles)),
		zap.Duration("took", time.Since(start)),
	)
	return Result{URL: feedURL, Articles: articles}
}

// cleanTitle strips markup some feeds embed in titles.
func (f *Fetcher) cleanTitle(s string) string {
	return strings.TrimSpace(html.UnescapeString(f.sanitizer.Sanitize(s)))
}

func itemLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	for _, l := range item.Links {
		if l != "" {
			return l
		}
	}
	return ""
}

// published prefers the parsed timestamp in RFC 3339 and falls back to
// the raw string the feed carried.
func published(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	return strings.TrimSpace(item.Published)
}
