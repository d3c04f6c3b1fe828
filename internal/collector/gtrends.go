package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	trendsDataURL          = "https://trends.google.com/trends/hottrends/visualize/internal/data"
	trendsClientTimeout    = 10 * time.Second
	trendsMaxResponseBytes = 1 << 20 // 1MB
)

// trendsRegions maps two-letter country codes to the region keys the trends
// endpoint uses. Unknown codes fall back to "india" instead of failing;
// callers that want strict validation must do it upstream.
var trendsRegions = map[string]string{
	"IN": "india",
	"US": "united_states",
	"GB": "united_kingdom",
	"CA": "canada",
	"AU": "australia",
}

const trendsDefaultRegion = "india"

func regionForCountry(country string) string {
	if region, ok := trendsRegions[strings.ToUpper(country)]; ok {
		return region
	}
	return trendsDefaultRegion
}

// GoogleTrendsFetcher pulls the ranked daily trending searches for one
// region. The endpoint returns terms only, so Link and Published stay empty.
type GoogleTrendsFetcher struct {
	Country string

	// DataURL overrides the trends endpoint, for tests.
	DataURL string
}

func (t *GoogleTrendsFetcher) Name() string { return "google_trends" }

func (t *GoogleTrendsFetcher) Fetch(limit int) (FetchResult, error) {
	region := regionForCountry(t.Country)
	log.Printf("fetch Google Trends (%s)...", region)

	dataURL := t.DataURL
	if dataURL == "" {
		dataURL = trendsDataURL
	}

	client := &http.Client{Timeout: trendsClientTimeout}
	resp, err := client.Get(dataURL)
	if err != nil {
		return FetchResult{}, fmt.Errorf("google_trends: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FetchResult{}, fmt.Errorf("google_trends: unexpected status %d", resp.StatusCode)
	}

	var byRegion map[string][]string
	if err := json.NewDecoder(io.LimitReader(resp.Body, trendsMaxResponseBytes)).Decode(&byRegion); err != nil {
		return FetchResult{}, fmt.Errorf("google_trends: decode: %w", err)
	}

	terms, ok := byRegion[region]
	if !ok {
		return FetchResult{}, fmt.Errorf("google_trends: no data for region %q", region)
	}

	if len(terms) > limit {
		terms = terms[:limit]
	}

	items := make([]TrendItem, 0, len(terms))
	for _, term := range terms {
		items = append(items, TrendItem{Title: term})
	}
	return FetchResult{Items: items}, nil
}
