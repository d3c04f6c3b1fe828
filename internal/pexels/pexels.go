package pexels

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.pexels.com/v1"
	clientTimeout    = 10 * time.Second
	maxResponseBytes = 1 << 20 // 1MB
)

// ErrNoPhotos means the search succeeded but matched nothing.
var ErrNoPhotos = errors.New("pexels: no photos found")

type Photo struct {
	Photographer string `json:"photographer"`
	Src          struct {
		Large string `json:"large"`
	} `json:"src"`
}

// Client is a minimal Pexels search client holding the process-wide API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL points the client at an alternate endpoint, for tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: clientTimeout},
	}
}

// Search returns the first photo matching the query in the requested
// orientation, or ErrNoPhotos when nothing matches.
func (c *Client) Search(query, orientation string) (*Photo, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")
	q.Set("orientation", orientation)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pexels: search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("pexels: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Photos []Photo `json:"photos"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("pexels: decode: %w", err)
	}
	if len(out.Photos) == 0 {
		return nil, ErrNoPhotos
	}
	return &out.Photos[0], nil
}
