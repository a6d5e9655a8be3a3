package aggregator

import (
	"testing"

	"trendpulse/internal/domain/trend"
	"trendpulse/internal/service/source"
)

func TestNormalizeSearch(t *testing.T) {
	items := []source.SearchItem{
		{Title: "Sourdough", Type: "daily", Region: "US", Category: "Entertainment", TrafficScore: 88},
		{Title: "Mystery topic", Type: "daily", Region: "US", TrafficScore: 40},
	}

	trends := NormalizeSearch(items)

	if len(trends) != 2 {
		t.Fatalf("got %d trends, want 2", len(trends))
	}

	first := trends[0]
	if first.Source != "Google Trends" {
		t.Errorf("Source = %q, want %q", first.Source, "Google Trends")
	}
	if first.PopularityScore != 88 {
		t.Errorf("PopularityScore = %v, want 88", first.PopularityScore)
	}
	if first.PopPotential != trend.PotentialUnknown {
		t.Errorf("PopPotential = %q, want %q", first.PopPotential, trend.PotentialUnknown)
	}
	if first.Details["traffic_score"] != 88.0 {
		t.Errorf("Details[traffic_score] = %v, want 88", first.Details["traffic_score"])
	}

	if trends[1].Category != "Uncategorized" {
		t.Errorf("Category = %q, want Uncategorized for a missing category", trends[1].Category)
	}
}

func TestNormalizeSocial(t *testing.T) {
	posts := []source.RedditPost{
		{Title: "What is everyone wearing", Subreddit: "femalefashionadvice", Score: 1200, Permalink: "https://www.reddit.com/x"},
	}

	trends := NormalizeSocial(posts)

	if len(trends) != 1 {
		t.Fatalf("got %d trends, want 1", len(trends))
	}
	if trends[0].Source != "Reddit - r/femalefashionadvice" {
		t.Errorf("Source = %q, want the subreddit-qualified label", trends[0].Source)
	}
	if trends[0].Category != "Social Media" {
		t.Errorf("Category = %q, want %q", trends[0].Category, "Social Media")
	}
	if trends[0].PopularityScore != 1200 {
		t.Errorf("PopularityScore = %v, want 1200", trends[0].PopularityScore)
	}
}

func TestNormalizeManual(t *testing.T) {
	entries := []trend.ManualEntry{
		{ID: "a", Name: "Quiet luxury", Source: "Manual", Category: "Fashion", LifecycleStage: "Emerging", PopPotential: true},
		{ID: "b", Name: "Unlabeled", Source: "Manual", LifecycleStage: "Peaking", PopPotential: false},
	}

	trends := NormalizeManual(entries)

	if len(trends) != 2 {
		t.Fatalf("got %d trends, want 2", len(trends))
	}
	if trends[0].PopularityScore != 0 {
		t.Errorf("manual trends carry no score, got %v", trends[0].PopularityScore)
	}
	if trends[0].PopPotential != trend.PotentialYes {
		t.Errorf("PopPotential = %q, want %q", trends[0].PopPotential, trend.PotentialYes)
	}
	if trends[1].PopPotential != trend.PotentialNo {
		t.Errorf("PopPotential = %q, want %q", trends[1].PopPotential, trend.PotentialNo)
	}
	if trends[1].Category != "Uncategorized" {
		t.Errorf("Category = %q, want Uncategorized", trends[1].Category)
	}
}
