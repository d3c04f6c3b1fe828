package collector

// TrendItem is the normalized shape every source maps into.
// Link and Published stay empty strings when an upstream has no such field,
// so the JSON shape is uniform across sources.
type TrendItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
}

// FetchResult carries one source's items plus an optional advisory warning,
// used when a source degrades to an empty result instead of failing.
type FetchResult struct {
	Items   []TrendItem
	Warning string
}

// Fetcher abstracts one upstream source. Fetch is all-or-nothing: on error
// no partial items are returned.
type Fetcher interface {
	Name() string
	Fetch(limit int) (FetchResult, error)
}
