package analysis

import (
	"fmt"

	"trendpulse/internal/domain/analysis"
)

// Degraded placeholder results. Every section stays populated so callers can
// render a structurally complete analysis; the wording distinguishes a slow
// generation from a failed one.

func timeoutResult() analysis.Result {
	return analysis.Result{
		Context: analysis.Plain("Comprehensive analysis is taking longer than expected. Please check back in a moment."),
		SocialSentiment: analysis.Structured(map[string]string{
			"positive_reactions":     "Social listening analysis is still processing...",
			"negative_reactions":     "Social listening analysis is still processing...",
			"demographic_variations": "Demographic analysis is still processing...",
			"intensity_metrics":      "Sentiment intensity analysis is still processing...",
		}),
		BehavioralDrivers: analysis.Structured(map[string]string{
			"core_psychological_motivations": "Behavioral economics analysis is still processing...",
			"underlying_needs":               "Needs assessment is still processing...",
			"cognitive_biases":               "Cognitive bias analysis is still processing...",
			"decision_making_factors":        "Decision factors analysis is still processing...",
		}),
		MarketOpportunities: analysis.Structured(map[string]string{
			"product_gaps":           "Product gap analysis is still processing...",
			"service_innovations":    "Service innovation analysis is still processing...",
			"competitive_advantage":  "Competitive advantage analysis is still processing...",
			"timing_recommendations": "Market timing analysis is still processing...",
		}),
		EngagementStrategies: analysis.Structured(map[string]string{
			"marketing": "Marketing strategy analysis is still processing...",
			"product":   "Product strategy analysis is still processing...",
			"community": "Community building strategy is still processing...",
			"metrics":   "Performance metrics analysis is still processing...",
		}),
		RiskAnalysis: analysis.Structured(map[string]string{
			"potential_backlash":        "Risk assessment is still processing...",
			"regulatory_considerations": "Regulatory analysis is still processing...",
			"competitive_threats":       "Competitive threat analysis is still processing...",
			"trend_sustainability":      "Sustainability forecast is still processing...",
		}),
		ContentIdeas: analysis.Structured([]string{
			"Strategic content recommendations will be available soon.",
		}),
	}
}

func errorResult(err error) analysis.Result {
	return analysis.Result{
		Context: analysis.Plain(fmt.Sprintf("Could not generate comprehensive analysis: %v", err)),
		SocialSentiment: analysis.Structured(map[string]string{
			"positive_reactions":     "Social listening analysis temporarily unavailable.",
			"negative_reactions":     "Social listening analysis temporarily unavailable.",
			"demographic_variations": "Demographic analysis temporarily unavailable.",
			"intensity_metrics":      "Sentiment intensity analysis temporarily unavailable.",
		}),
		BehavioralDrivers: analysis.Structured(map[string]string{
			"core_psychological_motivations": "Behavioral economics analysis temporarily unavailable.",
			"underlying_needs":               "Needs assessment temporarily unavailable.",
			"cognitive_biases":               "Cognitive bias analysis temporarily unavailable.",
			"decision_making_factors":        "Decision factors analysis temporarily unavailable.",
		}),
		MarketOpportunities: analysis.Structured(map[string]string{
			"product_gaps":           "Product gap analysis temporarily unavailable.",
			"service_innovations":    "Service innovation analysis temporarily unavailable.",
			"competitive_advantage":  "Competitive advantage analysis temporarily unavailable.",
			"timing_recommendations": "Market timing analysis temporarily unavailable.",
		}),
		EngagementStrategies: analysis.Structured(map[string]string{
			"marketing": "Marketing strategy analysis temporarily unavailable.",
			"product":   "Product strategy analysis temporarily unavailable.",
			"community": "Community building strategy temporarily unavailable.",
			"metrics":   "Performance metrics analysis temporarily unavailable.",
		}),
		RiskAnalysis: analysis.Structured(map[string]string{
			"potential_backlash":        "Risk assessment temporarily unavailable.",
			"regulatory_considerations": "Regulatory analysis temporarily unavailable.",
			"competitive_threats":       "Competitive threat analysis temporarily unavailable.",
			"trend_sustainability":      "Sustainability forecast temporarily unavailable.",
		}),
		ContentIdeas: analysis.Structured([]string{
			"Please try refreshing the page or checking back later.",
		}),
	}
}
