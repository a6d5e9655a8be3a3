package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trendpulse/internal/logger"
)

// SearchItem is a raw search-trend record before normalization.
type SearchItem struct {
	Title        string  `json:"title"`
	Type         string  `json:"type"`
	Region       string  `json:"region"`
	Category     string  `json:"category"`
	TrafficScore float64 `json:"traffic_score"`
	Change       float64 `json:"change"`
}

// categoryCodes maps category hints to the provider's category parameters.
var categoryCodes = map[string]string{
	"Entertainment": "g_ent",
	"Shopping":      "g_shop",
	"Pop Culture":   "g_pc",
}

// GoogleTrendsConfig configures the search-trend source.
type GoogleTrendsConfig struct {
	BaseURL    string
	Geo        string
	Categories []string
	CallDelay  time.Duration
}

// GoogleTrends fetches daily trending searches per category hint. Fetch
// never fails outward: per-category failures fall back to a fixed topic set,
// and total failure falls back to a minimal dataset.
type GoogleTrends struct {
	client  *http.Client
	cfg     GoogleTrendsConfig
	limiter *rate.Limiter
	log     logger.Logger
}

// NewGoogleTrends creates a new search-trend source.
func NewGoogleTrends(cfg GoogleTrendsConfig, log logger.Logger) *GoogleTrends {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://trends.google.com"
	}
	if cfg.Geo == "" {
		cfg.Geo = "US"
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = []string{"Entertainment", "Shopping", "Pop Culture"}
	}
	if cfg.CallDelay <= 0 {
		cfg.CallDelay = 2 * time.Second
	}

	return &GoogleTrends{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.CallDelay), 1),
		log:     log,
	}
}

// Fetch returns the current search trends across all configured categories.
func (g *GoogleTrends) Fetch(ctx context.Context) []SearchItem {
	var all []SearchItem

	for _, category := range g.cfg.Categories {
		if err := g.limiter.Wait(ctx); err != nil {
			break
		}

		items, err := g.dailyTrends(ctx, category)
		if err != nil {
			g.log.Warn("search trends fetch failed, using fallback topics",
				logger.String("category", category),
				logger.Error(err))
			all = append(all, fallbackSearchTopics(category)...)
			continue
		}
		all = append(all, items...)
	}

	if len(all) == 0 {
		g.log.Warn("all search trend calls failed, using minimal fallback dataset")
		return minimalSearchFallback()
	}

	return all
}

// dailyTrendsResponse mirrors the provider's daily trends payload.
type dailyTrendsResponse struct {
	Default struct {
		TrendingSearchesDays []struct {
			TrendingSearches []struct {
				Title struct {
					Query string `json:"query"`
				} `json:"title"`
				FormattedTraffic string `json:"formattedTraffic"`
			} `json:"trendingSearches"`
		} `json:"trendingSearchesDays"`
	} `json:"default"`
}

func (g *GoogleTrends) dailyTrends(ctx context.Context, category string) ([]SearchItem, error) {
	params := url.Values{}
	params.Set("hl", "en-US")
	params.Set("tz", "360")
	params.Set("geo", g.cfg.Geo)
	if code, ok := categoryCodes[category]; ok {
		params.Set("cat", code)
	}

	endpoint := fmt.Sprintf("%s/trends/api/dailytrends?%s", g.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to trends API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends API returned status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trends API response: %w", err)
	}

	// The endpoint prefixes its JSON with an anti-hijacking marker.
	payload := strings.TrimPrefix(strings.TrimSpace(string(body)), ")]}',")

	var parsed dailyTrendsResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode trends API response: %w", err)
	}

	var items []SearchItem
	for _, day := range parsed.Default.TrendingSearchesDays {
		for _, ts := range day.TrendingSearches {
			if ts.Title.Query == "" {
				continue
			}
			items = append(items, SearchItem{
				Title:        ts.Title.Query,
				Type:         "daily",
				Region:       g.cfg.Geo,
				Category:     category,
				TrafficScore: trafficScore(ts.FormattedTraffic),
				Change:       0,
			})
		}
		// One day of trending searches per category is enough.
		break
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("trends API returned no searches")
	}

	return items, nil
}

// trafficScore converts a formatted traffic figure like "200K+" into an
// approximate 0-100 score comparable within the search source.
func trafficScore(formatted string) float64 {
	s := strings.TrimSuffix(strings.TrimSpace(formatted), "+")
	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "M"):
		multiplier = 1_000_000
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "K"):
		multiplier = 1_000
		s = strings.TrimSuffix(s, "K")
	}

	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || n <= 0 {
		return 50
	}

	score := math.Log10(n*multiplier) * 20
	return math.Max(0, math.Min(100, score))
}
