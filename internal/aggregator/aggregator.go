package aggregator

import (
	"log"
	"sync"

	"github.com/nsahni/trendwire/internal/collector"
	"github.com/nsahni/trendwire/internal/config"
)

// Params are the per-request locale knobs forwarded to the adapters.
type Params struct {
	Country   string
	Language  string
	Subreddit string
}

// SourceResult is one source's successful contribution to a response.
// Items keeps the upstream's own ordering.
type SourceResult struct {
	Source  string                `json:"source"`
	Items   []collector.TrendItem `json:"items"`
	Warning string                `json:"warning,omitempty"`
}

// SourceError records one source's failure without affecting the others.
type SourceError struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Response is the combined fan-out result. Every selected source lands in
// exactly one of Data and Errors. Success stays true even when all sources
// fail; only request validation produces an HTTP-level error.
type Response struct {
	Success         bool           `json:"success"`
	RequestedSource string         `json:"requested_source"`
	Limit           int            `json:"limit"`
	Data            []SourceResult `json:"data"`
	Errors          []SourceError  `json:"errors"`
}

// FetcherFactory builds the full adapter list for one request. Slice order
// is the invocation order and therefore the order of Data/Errors entries.
type FetcherFactory func(p Params) []collector.Fetcher

type Aggregator struct {
	factory FetcherFactory
}

func New(cfg *config.Config) *Aggregator {
	return &Aggregator{factory: defaultFactory(cfg)}
}

// NewWithFactory wires an explicit adapter-list builder; tests use it to
// substitute fakes.
func NewWithFactory(f FetcherFactory) *Aggregator {
	return &Aggregator{factory: f}
}

func defaultFactory(cfg *config.Config) FetcherFactory {
	return func(p Params) []collector.Fetcher {
		return []collector.Fetcher{
			&collector.GoogleTrendsFetcher{Country: p.Country},
			&collector.GoogleNewsFetcher{Country: p.Country, Language: p.Language},
			&collector.RedditFetcher{
				ClientID:     cfg.RedditClientID,
				ClientSecret: cfg.RedditClientSecret,
				UserAgent:    cfg.RedditUserAgent,
				Subreddit:    p.Subreddit,
			},
			&collector.ReutersFetcher{},
			&collector.FlipboardFetcher{},
		}
	}
}

// Trending fans out to every adapter selected by source and assembles the
// combined response. Adapters run concurrently but results are written into
// per-adapter slots, so output follows invocation order, not completion
// order. One adapter failing never aborts its siblings.
func (a *Aggregator) Trending(source string, limit int, p Params) Response {
	var selected []collector.Fetcher
	for _, f := range a.factory(p) {
		if source == "all" || source == f.Name() {
			selected = append(selected, f)
		}
	}

	type slot struct {
		res *SourceResult
		err *SourceError
	}
	slots := make([]slot, len(selected))

	var wg sync.WaitGroup
	for i, f := range selected {
		wg.Add(1)
		go func(i int, f collector.Fetcher) {
			defer wg.Done()
			name := f.Name()
			out, err := f.Fetch(limit)
			if err != nil {
				log.Printf("fetch %s error: %v", name, err)
				slots[i].err = &SourceError{Source: name, Error: err.Error()}
				return
			}
			items := out.Items
			if items == nil {
				items = []collector.TrendItem{}
			}
			slots[i].res = &SourceResult{Source: name, Items: items, Warning: out.Warning}
		}(i, f)
	}
	wg.Wait()

	data := make([]SourceResult, 0, len(selected))
	errs := make([]SourceError, 0, len(selected))
	for _, s := range slots {
		switch {
		case s.res != nil:
			data = append(data, *s.res)
		case s.err != nil:
			errs = append(errs, *s.err)
		}
	}

	return Response{
		Success:         true,
		RequestedSource: source,
		Limit:           limit,
		Data:            data,
		Errors:          errs,
	}
}
