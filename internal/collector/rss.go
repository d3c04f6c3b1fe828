package collector

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	feedClientTimeout = 10 * time.Second

	reutersFeedURL   = "https://www.reutersagency.com/feed/?best-topics=business-finance&post_type=best"
	flipboardFeedURL = "https://flipboard.com/@news.rss"
)

// feedTop fetches an RSS/Atom feed and maps its first limit entries, in
// document order, into TrendItems. Missing entry fields become "".
func feedTop(feedURL string, limit int) ([]TrendItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), feedClientTimeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.Client = &http.Client{Timeout: feedClientTimeout}

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]TrendItem, 0, limit)
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		items = append(items, TrendItem{
			Title:     entry.Title,
			Link:      entry.Link,
			Published: entry.Published,
		})
	}
	return items, nil
}

// GoogleNewsFetcher reads the locale-parameterized Google News RSS feed.
type GoogleNewsFetcher struct {
	Country  string
	Language string

	// FeedURL overrides the computed Google News URL, for tests.
	FeedURL string
}

func (g *GoogleNewsFetcher) Name() string { return "google_news" }

func (g *GoogleNewsFetcher) feedURL() string {
	if g.FeedURL != "" {
		return g.FeedURL
	}
	return fmt.Sprintf(
		"https://news.google.com/rss?hl=%s-%s&gl=%s&ceid=%s:%s",
		g.Language, g.Country, g.Country, g.Country, g.Language,
	)
}

func (g *GoogleNewsFetcher) Fetch(limit int) (FetchResult, error) {
	log.Printf("fetch Google News (%s-%s)...", g.Language, g.Country)

	items, err := feedTop(g.feedURL(), limit)
	if err != nil {
		return FetchResult{}, fmt.Errorf("google_news: %w", err)
	}
	return FetchResult{Items: items}, nil
}

// ReutersFetcher reads the fixed Reuters business/finance wire feed.
type ReutersFetcher struct {
	// FeedURL overrides the Reuters feed URL, for tests.
	FeedURL string
}

func (r *ReutersFetcher) Name() string { return "reuters" }

func (r *ReutersFetcher) Fetch(limit int) (FetchResult, error) {
	log.Println("fetch Reuters feed...")

	feedURL := r.FeedURL
	if feedURL == "" {
		feedURL = reutersFeedURL
	}

	items, err := feedTop(feedURL, limit)
	if err != nil {
		return FetchResult{}, fmt.Errorf("reuters: %w", err)
	}
	return FetchResult{Items: items}, nil
}

// FlipboardFetcher reads the fixed Flipboard news feed.
type FlipboardFetcher struct {
	// FeedURL overrides the Flipboard feed URL, for tests.
	FeedURL string
}

func (f *FlipboardFetcher) Name() string { return "flipboard" }

func (f *FlipboardFetcher) Fetch(limit int) (FetchResult, error) {
	log.Println("fetch Flipboard feed...")

	feedURL := f.FeedURL
	if feedURL == "" {
		feedURL = flipboardFeedURL
	}

	items, err := feedTop(feedURL, limit)
	if err != nil {
		return FetchResult{}, fmt.Errorf("flipboard: %w", err)
	}
	return FetchResult{Items: items}, nil
}
