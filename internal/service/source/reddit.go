package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trendpulse/internal/logger"
)

// RedditPost is a raw discussion record before normalization.
type RedditPost struct {
	Title      string  `json:"title"`
	Subreddit  string  `json:"subreddit"`
	Score      float64 `json:"score"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

// RedditConfig configures the social-discussion source.
type RedditConfig struct {
	BaseURL        string
	TokenURL       string
	ClientID       string
	ClientSecret   string
	UserAgent      string
	Subreddits     []string
	PostLimit      int
	MinPostsPerSub int
	CallDelay      time.Duration
}

// Reddit fetches top posts from the configured subreddits. Fetch never
// fails outward: missing credentials or API failures fall back to a fixed
// dataset.
type Reddit struct {
	client  *http.Client
	cfg     RedditConfig
	limiter *rate.Limiter
	log     logger.Logger
}

// NewReddit creates a new social-discussion source.
func NewReddit(cfg RedditConfig, log logger.Logger) *Reddit {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://oauth.reddit.com"
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = "https://www.reddit.com/api/v1/access_token"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "trendpulse/1.0"
	}
	if len(cfg.Subreddits) == 0 {
		cfg.Subreddits = []string{"popculturechat", "AskTikTok", "femalefashionadvice", "internetisbeautiful"}
	}
	if cfg.PostLimit <= 0 {
		cfg.PostLimit = 5
	}
	if cfg.MinPostsPerSub <= 0 {
		cfg.MinPostsPerSub = 3
	}
	if cfg.CallDelay <= 0 {
		cfg.CallDelay = time.Second
	}

	return &Reddit{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.CallDelay), 1),
		log:     log,
	}
}

// Fetch returns the current top discussion posts across all configured
// subreddits, sorted by score descending.
func (r *Reddit) Fetch(ctx context.Context) []RedditPost {
	if r.cfg.ClientID == "" || r.cfg.ClientSecret == "" {
		r.log.Warn("reddit credentials not set, using fallback dataset")
		return fallbackRedditPosts()
	}

	token, err := r.accessToken(ctx)
	if err != nil {
		r.log.Error("reddit authentication failed, using fallback dataset", logger.Error(err))
		return fallbackRedditPosts()
	}

	var all []RedditPost
	fetched := false

	for _, subreddit := range r.cfg.Subreddits {
		if err := r.limiter.Wait(ctx); err != nil {
			break
		}

		posts, err := r.topPosts(ctx, token, subreddit, "day")
		if err != nil {
			r.log.Error("failed to fetch subreddit posts",
				logger.String("subreddit", subreddit),
				logger.Error(err))
			continue
		}
		all = append(all, posts...)
		if len(posts) > 0 {
			fetched = true
		}

		// Supplement from the weekly window when the daily window is thin,
		// deduplicating by permalink.
		if countForSubreddit(all, subreddit) < r.cfg.MinPostsPerSub {
			r.log.Info("not enough daily posts, supplementing with weekly top",
				logger.String("subreddit", subreddit))

			weekly, err := r.topPosts(ctx, token, subreddit, "week")
			if err != nil {
				r.log.Error("failed to fetch weekly posts",
					logger.String("subreddit", subreddit),
					logger.Error(err))
				continue
			}
			for _, post := range weekly {
				if hasPermalink(all, post.Permalink) {
					continue
				}
				all = append(all, post)
				fetched = true
			}
		}
	}

	if !fetched {
		r.log.Warn("could not fetch any posts from reddit, using fallback dataset")
		return fallbackRedditPosts()
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})

	return all
}

// accessToken performs the client-credentials flow for read-only API access.
func (r *Reddit) accessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(r.cfg.ClientID, r.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to connect to token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status code %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}

	return payload.AccessToken, nil
}

// redditListing mirrors the structure of the Reddit API listing response.
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title      string  `json:"title"`
				Subreddit  string  `json:"subreddit"`
				Score      float64 `json:"score"`
				URL        string  `json:"url"`
				Permalink  string  `json:"permalink"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// topPosts fetches top posts for one subreddit.
// window can be: hour, day, week, month, year, all
func (r *Reddit) topPosts(ctx context.Context, token, subreddit, window string) ([]RedditPost, error) {
	endpoint := fmt.Sprintf("%s/r/%s/top?limit=%d&t=%s", r.cfg.BaseURL, subreddit, r.cfg.PostLimit, window)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Reddit API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Reddit API returned status code %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit API response: %w", err)
	}

	var posts []RedditPost
	for _, child := range listing.Data.Children {
		subredditName := child.Data.Subreddit
		if subredditName == "" {
			subredditName = subreddit
		}
		posts = append(posts, RedditPost{
			Title:      child.Data.Title,
			Subreddit:  subredditName,
			Score:      child.Data.Score,
			URL:        child.Data.URL,
			Permalink:  "https://www.reddit.com" + child.Data.Permalink,
			CreatedUTC: child.Data.CreatedUTC,
		})
	}

	return posts, nil
}

func countForSubreddit(posts []RedditPost, subreddit string) int {
	n := 0
	for _, p := range posts {
		if p.Subreddit == subreddit {
			n++
		}
	}
	return n
}

func hasPermalink(posts []RedditPost, permalink string) bool {
	for _, p := range posts {
		if p.Permalink == permalink {
			return true
		}
	}
	return false
}
