package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nsahni/trendwire/internal/aggregator"
	"github.com/nsahni/trendwire/internal/pexels"
)

const (
	defaultLimit = 5
	minLimit     = 1
	maxLimit     = 10

	defaultCountry   = "IN"
	defaultLanguage  = "en"
	defaultSubreddit = "all"
)

// allowedSources is the closed set of values /trending accepts.
var allowedSources = map[string]bool{
	"all":           true,
	"google_trends": true,
	"google_news":   true,
	"reddit":        true,
	"reuters":       true,
	"flipboard":     true,
}

type Server struct {
	agg    *aggregator.Aggregator
	images *pexels.Client // nil when PEXELS_API_KEY is not configured
}

func NewServer(agg *aggregator.Aggregator, images *pexels.Client) *Server {
	return &Server{agg: agg, images: images}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.home)
	r.POST("/generate-image", s.generateImage)
	r.POST("/trending", s.trending)
}

func (s *Server) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "Backend running",
		"endpoints": []string{"/generate-image", "/trending"},
	})
}

type imageRequest struct {
	Prompt      string `json:"prompt"`
	Orientation string `json:"orientation"`
}

func (s *Server) generateImage(c *gin.Context) {
	if s.images == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "PEXELS_API_KEY missing"})
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Prompt is required"})
		return
	}
	if req.Orientation == "" {
		req.Orientation = "landscape"
	}

	photo, err := s.images.Search(req.Prompt, req.Orientation)
	if err != nil {
		if errors.Is(err, pexels.ErrNoPhotos) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "No images found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"image_url":    photo.Src.Large,
		"photographer": photo.Photographer,
		"source":       "pexels",
	})
}

// Pointer fields distinguish absent from explicitly empty: only absent
// fields take defaults, so an explicit 0 limit clamps to 1, an explicit ""
// source is invalid, and explicit "" locale values reach the adapters as-is.
type trendingRequest struct {
	Source    *string `json:"source"`
	Limit     *int    `json:"limit"`
	Country   *string `json:"country"`
	Language  *string `json:"language"`
	Subreddit *string `json:"subreddit"`
}

// clampLimit forces the per-source item count into [minLimit, maxLimit]
// without rejecting out-of-range requests.
func clampLimit(n int) int {
	if n < minLimit {
		return minLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

func (s *Server) trending(c *gin.Context) {
	var req trendingRequest
	// An empty body means "all defaults"; anything else malformed is a 400.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	source := "all"
	if req.Source != nil {
		source = strings.ToLower(*req.Source)
	}
	if !allowedSources[source] {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid source"})
		return
	}

	limit := defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	limit = clampLimit(limit)

	p := aggregator.Params{
		Country:   defaultCountry,
		Language:  defaultLanguage,
		Subreddit: defaultSubreddit,
	}
	if req.Country != nil {
		p.Country = *req.Country
	}
	if req.Language != nil {
		p.Language = *req.Language
	}
	if req.Subreddit != nil {
		p.Subreddit = *req.Subreddit
	}

	c.JSON(http.StatusOK, s.agg.Trending(source, limit, p))
}
