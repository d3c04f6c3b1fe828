package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	redditAuthBaseURL      = "https://www.reddit.com"
	redditAPIBaseURL       = "https://oauth.reddit.com"
	redditClientTimeout    = 10 * time.Second
	redditMaxResponseBytes = 1 << 20 // 1MB

	redditMissingKeysWarning = "Reddit keys missing"
)

// RedditFetcher pulls the hot listing of one subreddit via the OAuth API
// (client-credentials grant). Without credentials it degrades to an empty
// result carrying a warning instead of failing the whole source.
type RedditFetcher struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Subreddit    string

	// AuthBaseURL / APIBaseURL override the reddit endpoints, for tests.
	AuthBaseURL string
	APIBaseURL  string
}

func (r *RedditFetcher) Name() string { return "reddit" }

func (r *RedditFetcher) Fetch(limit int) (FetchResult, error) {
	if r.ClientID == "" || r.ClientSecret == "" {
		return FetchResult{Items: []TrendItem{}, Warning: redditMissingKeysWarning}, nil
	}

	log.Printf("fetch Reddit r/%s hot...", r.Subreddit)

	client := &http.Client{Timeout: redditClientTimeout}

	token, err := r.accessToken(client)
	if err != nil {
		return FetchResult{}, fmt.Errorf("reddit: auth: %w", err)
	}

	listing, err := r.hotListing(client, token, limit)
	if err != nil {
		return FetchResult{}, fmt.Errorf("reddit: %w", err)
	}

	items := make([]TrendItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		// The hot listing carries no usable publish string, so Published
		// stays empty.
		items = append(items, TrendItem{
			Title: child.Data.Title,
			Link:  child.Data.URL,
		})
	}
	return FetchResult{Items: items}, nil
}

func (r *RedditFetcher) accessToken(client *http.Client) (string, error) {
	base := r.AuthBaseURL
	if base == "" {
		base = redditAuthBaseURL
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequest(http.MethodPost, base+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(r.ClientID, r.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", r.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token status %d", resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, redditMaxResponseBytes)).Decode(&tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", errors.New("empty access token")
	}
	return tok.AccessToken, nil
}

func (r *RedditFetcher) hotListing(client *http.Client, token string, limit int) (redditListing, error) {
	base := r.APIBaseURL
	if base == "" {
		base = redditAPIBaseURL
	}

	listURL := fmt.Sprintf("%s/r/%s/hot?limit=%d", base, url.PathEscape(r.Subreddit), limit)
	req, err := http.NewRequest(http.MethodGet, listURL, nil)
	if err != nil {
		return redditListing{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", r.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return redditListing{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return redditListing{}, fmt.Errorf("r/%s: status %d", r.Subreddit, resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(io.LimitReader(resp.Body, redditMaxResponseBytes)).Decode(&listing); err != nil {
		return redditListing{}, fmt.Errorf("decode r/%s: %w", r.Subreddit, err)
	}
	return listing, nil
}

type redditListing struct {
	Data struct {
		Children []redditChild `json:"children"`
	} `json:"data"`
}

type redditChild struct {
	Data redditPost `json:"data"`
}

type redditPost struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
