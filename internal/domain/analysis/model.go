package analysis

import (
	"context"
	"encoding/json"
	"time"
)

// Request describes one trend to analyze.
type Request struct {
	TrendName string
	Source    string
	Category  string
	Details   map[string]interface{}
}

// Result is the full structured analysis returned to callers. Every section
// is populated even in degraded cases.
type Result struct {
	Context              Field `json:"context"`
	SocialSentiment      Field `json:"social_sentiment"`
	BehavioralDrivers    Field `json:"behavioral_drivers"`
	MarketOpportunities  Field `json:"market_opportunities"`
	EngagementStrategies Field `json:"engagement_strategies"`
	RiskAnalysis         Field `json:"risk_analysis"`
	ContentIdeas         Field `json:"content_ideas"`
}

// Record is the persisted four-field shape of an analysis. Insights holds
// the social sentiment section; Implications merges the four strategy
// sections into one document.
type Record struct {
	TrendName    string
	Source       string
	Context      Field
	Insights     Field
	Implications Field
	ContentIdeas Field
	AnalyzedAt   time.Time
}

// implicationsDoc is the merged strategy document stored in a Record.
type implicationsDoc struct {
	BehavioralDrivers    Field `json:"behavioral_drivers"`
	MarketOpportunities  Field `json:"market_opportunities"`
	EngagementStrategies Field `json:"engagement_strategies"`
	RiskAnalysis         Field `json:"risk_analysis"`
}

// ToRecord reshapes a result into the persisted form.
func (r Result) ToRecord(trendName, source string, analyzedAt time.Time) Record {
	return Record{
		TrendName: trendName,
		Source:    source,
		Context:   r.Context,
		Insights:  r.SocialSentiment,
		Implications: Structured(implicationsDoc{
			BehavioralDrivers:    r.BehavioralDrivers,
			MarketOpportunities:  r.MarketOpportunities,
			EngagementStrategies: r.EngagementStrategies,
			RiskAnalysis:         r.RiskAnalysis,
		}),
		ContentIdeas: r.ContentIdeas,
		AnalyzedAt:   analyzedAt,
	}
}

// ToResult expands a persisted record back into the full section layout.
// A plain-text implications field is mirrored into each strategy section.
func (rec Record) ToResult() Result {
	result := Result{
		Context:         rec.Context,
		SocialSentiment: rec.Insights,
		ContentIdeas:    rec.ContentIdeas,
	}

	if rec.Implications.IsStructured() {
		var doc implicationsDoc
		if err := json.Unmarshal(rec.Implications.Doc, &doc); err == nil {
			result.BehavioralDrivers = doc.BehavioralDrivers
			result.MarketOpportunities = doc.MarketOpportunities
			result.EngagementStrategies = doc.EngagementStrategies
			result.RiskAnalysis = doc.RiskAnalysis
			return result
		}
	}

	result.BehavioralDrivers = rec.Implications
	result.MarketOpportunities = rec.Implications
	result.EngagementStrategies = rec.Implications
	result.RiskAnalysis = rec.Implications
	return result
}

// Generator produces a structured analysis for a trend. Implementations may
// be slow or fail; the engine bounds them with its own timeout.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
