package aggregator

import (
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/nsahni/trendwire/internal/collector"
	"github.com/nsahni/trendwire/internal/config"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{RedditUserAgent: "scripts-bot"}
}

type fakeFetcher struct {
	name   string
	result collector.FetchResult
	err    error

	calls    atomic.Int32
	gotLimit atomic.Int32
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) Fetch(limit int) (collector.FetchResult, error) {
	f.calls.Add(1)
	f.gotLimit.Store(int32(limit))
	return f.result, f.err
}

func items(titles ...string) []collector.TrendItem {
	out := make([]collector.TrendItem, 0, len(titles))
	for _, title := range titles {
		out = append(out, collector.TrendItem{Title: title})
	}
	return out
}

func fiveFakes() []*fakeFetcher {
	return []*fakeFetcher{
		{name: "google_trends", result: collector.FetchResult{Items: items("t1", "t2")}},
		{name: "google_news", result: collector.FetchResult{Items: items("n1")}},
		{name: "reddit", result: collector.FetchResult{Items: []collector.TrendItem{}, Warning: "Reddit keys missing"}},
		{name: "reuters", result: collector.FetchResult{Items: items("r1")}},
		{name: "flipboard", result: collector.FetchResult{Items: items("f1")}},
	}
}

func aggWith(fakes []*fakeFetcher) *Aggregator {
	return NewWithFactory(func(p Params) []collector.Fetcher {
		fetchers := make([]collector.Fetcher, 0, len(fakes))
		for _, f := range fakes {
			fetchers = append(fetchers, f)
		}
		return fetchers
	})
}

func TestTrendingAllSourcesPartition(t *testing.T) {
	fakes := fiveFakes()
	fakes[3].result = collector.FetchResult{}
	fakes[3].err = errors.New("reuters: unexpected status 502")

	resp := aggWith(fakes).Trending("all", 5, Params{})

	require.True(t, resp.Success)
	require.Equal(t, "all", resp.RequestedSource)
	require.Equal(t, 5, resp.Limit)

	// Every selected source lands in exactly one of data/errors.
	require.Len(t, resp.Data, 4)
	require.Len(t, resp.Errors, 1)

	// Output follows the fixed invocation order, not completion order.
	gotOrder := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		gotOrder = append(gotOrder, d.Source)
	}
	require.Equal(t, []string{"google_trends", "google_news", "reddit", "flipboard"}, gotOrder)

	require.Equal(t, "reuters", resp.Errors[0].Source)
	require.Equal(t, "reuters: unexpected status 502", resp.Errors[0].Error)

	seen := map[string]bool{}
	for _, d := range resp.Data {
		seen[d.Source] = true
	}
	for _, e := range resp.Errors {
		require.False(t, seen[e.Source], "source %q in both data and errors", e.Source)
		seen[e.Source] = true
	}
	require.Len(t, seen, 5)
}

func TestTrendingSingleSourceSelection(t *testing.T) {
	fakes := fiveFakes()

	resp := aggWith(fakes).Trending("reuters", 7, Params{})

	require.Len(t, resp.Data, 1)
	require.Equal(t, "reuters", resp.Data[0].Source)
	require.Empty(t, resp.Errors)

	for _, f := range fakes {
		if f.name == "reuters" {
			require.EqualValues(t, 1, f.calls.Load())
			require.EqualValues(t, 7, f.gotLimit.Load())
		} else {
			require.EqualValues(t, 0, f.calls.Load(), "%s must not run", f.name)
		}
	}
}

func TestTrendingWarningStaysInData(t *testing.T) {
	resp := aggWith(fiveFakes()).Trending("reddit", 5, Params{})

	require.Len(t, resp.Data, 1)
	require.Empty(t, resp.Errors)
	require.Equal(t, "reddit", resp.Data[0].Source)
	require.Empty(t, resp.Data[0].Items)
	require.Equal(t, "Reddit keys missing", resp.Data[0].Warning)
}

func TestTrendingAllSourcesFailingKeepsSuccess(t *testing.T) {
	fakes := fiveFakes()
	for _, f := range fakes {
		f.result = collector.FetchResult{}
		f.err = errors.New(f.name + ": boom")
	}

	resp := aggWith(fakes).Trending("all", 5, Params{})

	require.True(t, resp.Success)
	require.Empty(t, resp.Data)
	require.Len(t, resp.Errors, 5)

	// Empty collections marshal as [], never null.
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"data":[]`)
}

func TestTrendingNilItemsNormalized(t *testing.T) {
	fakes := []*fakeFetcher{{name: "google_trends", result: collector.FetchResult{Items: nil}}}

	resp := aggWith(fakes).Trending("google_trends", 5, Params{})
	require.Len(t, resp.Data, 1)

	raw, err := json.Marshal(resp.Data[0])
	require.NoError(t, err)
	require.Contains(t, string(raw), `"items":[]`)
}

func TestDefaultFactoryOrderAndNames(t *testing.T) {
	factory := defaultFactory(testConfig())

	fetchers := factory(Params{Country: "IN", Language: "en", Subreddit: "all"})

	names := make([]string, 0, len(fetchers))
	for _, f := range fetchers {
		names = append(names, f.Name())
	}
	require.Equal(t,
		[]string{"google_trends", "google_news", "reddit", "reuters", "flipboard"},
		names)
}
