package aggregator

import (
	"fmt"

	"trendpulse/internal/domain/trend"
	"trendpulse/internal/service/source"
)

// Source labels stamped onto normalized trends.
const (
	SourceGoogleTrends = "Google Trends"

	// Social trends carry their subreddit in the source label.
	socialSourceFormat = "Reddit - r/%s"
	socialCategory     = "Social Media"

	defaultCategory = "Uncategorized"
)

// NormalizeSearch maps raw search-trend items into unified trends.
func NormalizeSearch(items []source.SearchItem) []trend.Trend {
	trends := make([]trend.Trend, 0, len(items))
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = defaultCategory
		}
		trends = append(trends, trend.Trend{
			Name:            item.Title,
			Source:          SourceGoogleTrends,
			Category:        category,
			PopularityScore: item.TrafficScore,
			LifecycleStage:  "Unknown",
			PopPotential:    trend.PotentialUnknown,
			Details: map[string]interface{}{
				"title":         item.Title,
				"type":          item.Type,
				"region":        item.Region,
				"category":      category,
				"traffic_score": item.TrafficScore,
				"change":        item.Change,
			},
		})
	}
	return trends
}

// NormalizeSocial maps raw discussion posts into unified trends.
func NormalizeSocial(posts []source.RedditPost) []trend.Trend {
	trends := make([]trend.Trend, 0, len(posts))
	for _, post := range posts {
		trends = append(trends, trend.Trend{
			Name:            post.Title,
			Source:          fmt.Sprintf(socialSourceFormat, post.Subreddit),
			Category:        socialCategory,
			PopularityScore: post.Score,
			LifecycleStage:  "Unknown",
			PopPotential:    trend.PotentialUnknown,
			Details: map[string]interface{}{
				"title":       post.Title,
				"subreddit":   post.Subreddit,
				"score":       post.Score,
				"url":         post.URL,
				"permalink":   post.Permalink,
				"created_utc": post.CreatedUTC,
			},
		})
	}
	return trends
}

// NormalizeManual maps curated entries into unified trends. Manual entries
// have no measurable popularity, so their score is always zero.
func NormalizeManual(entries []trend.ManualEntry) []trend.Trend {
	trends := make([]trend.Trend, 0, len(entries))
	for _, entry := range entries {
		category := entry.Category
		if category == "" {
			category = defaultCategory
		}
		potential := trend.PotentialNo
		if entry.PopPotential {
			potential = trend.PotentialYes
		}
		trends = append(trends, trend.Trend{
			Name:            entry.Name,
			Source:          entry.Source,
			Category:        category,
			PopularityScore: 0,
			LifecycleStage:  entry.LifecycleStage,
			PopPotential:    potential,
			Details: map[string]interface{}{
				"id":              entry.ID,
				"trend_name":      entry.Name,
				"source":          entry.Source,
				"category":        category,
				"lifecycle_stage": entry.LifecycleStage,
				"pop_potential":   entry.PopPotential,
				"notes":           entry.Notes,
				"timestamp":       entry.Timestamp,
			},
		})
	}
	return trends
}
