package trend

import (
	"time"
)

// PopPotential values for a trend's "pop" classification.
const (
	PotentialYes     = "Yes"
	PotentialNo      = "No"
	PotentialUnknown = "Unknown"
)

// Trend is the unified record describing a topic of interest regardless of
// which source it came from. Name and Source together form the lookup key;
// uniqueness is not enforced and duplicates are permitted.
//
// PopularityScore units are source-specific (search traffic score, discussion
// score, 0 for manual entries) so cross-source ranking is approximate.
type Trend struct {
	Name            string                 `json:"trend_name"`
	Source          string                 `json:"source"`
	Category        string                 `json:"category"`
	PopularityScore float64                `json:"popularity_score"`
	LifecycleStage  string                 `json:"lifecycle_stage"`
	PopPotential    string                 `json:"pop_potential"`
	Details         map[string]interface{} `json:"details,omitempty"`
}

// CacheStatus describes the current state of the trend cache.
type CacheStatus struct {
	Exists     bool   `json:"exists"`
	Count      int    `json:"count"`
	AgeMinutes *int   `json:"age_minutes"`
	Timestamp  string `json:"timestamp,omitempty"`
}

// HistoryPoint is one observation of a trend's popularity over time.
type HistoryPoint struct {
	Date            time.Time `json:"date"`
	PopularityScore float64   `json:"popularity_score"`
}

// ManualEntry is a user-curated trend persisted to the manual entry store.
type ManualEntry struct {
	ID             string    `json:"id"`
	Name           string    `json:"trend_name"`
	Source         string    `json:"source"`
	Category       string    `json:"category"`
	LifecycleStage string    `json:"lifecycle_stage"`
	PopPotential   bool      `json:"pop_potential"`
	Notes          string    `json:"notes,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
