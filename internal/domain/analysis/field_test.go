package analysis

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFieldUnmarshalString(t *testing.T) {
	var f Field
	if err := json.Unmarshal([]byte(`"plain text"`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if f.IsStructured() {
		t.Error("string should decode as plain text")
	}
	if f.Text != "plain text" {
		t.Errorf("Text = %q, want %q", f.Text, "plain text")
	}
}

func TestFieldUnmarshalObject(t *testing.T) {
	var f Field
	if err := json.Unmarshal([]byte(`{"key": "value"}`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !f.IsStructured() {
		t.Error("object should decode as structured")
	}
	if f.Text != "" {
		t.Errorf("Text = %q, want empty", f.Text)
	}
}

func TestFieldUnmarshalArray(t *testing.T) {
	var f Field
	if err := json.Unmarshal([]byte(`["one", "two"]`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !f.IsStructured() {
		t.Error("array should decode as structured")
	}
}

func TestFieldUnmarshalNull(t *testing.T) {
	f := Plain("stale")
	if err := json.Unmarshal([]byte(`null`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !f.IsZero() {
		t.Errorf("null should decode to the zero field, got %+v", f)
	}
}

func TestFieldMarshalRoundtrip(t *testing.T) {
	original := Structured(map[string]string{"marketing": "do things"})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Field
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !decoded.IsStructured() {
		t.Error("structured field should survive a roundtrip")
	}
}

func TestFieldMarshalPlain(t *testing.T) {
	data, err := json.Marshal(Plain("hello"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"hello"` {
		t.Errorf("marshal = %s, want %q", data, `"hello"`)
	}
}

func TestResultRecordRoundtrip(t *testing.T) {
	result := Result{
		Context:              Plain("origin story"),
		SocialSentiment:      Structured(map[string]string{"positive_reactions": "people love it"}),
		BehavioralDrivers:    Structured(map[string]string{"underlying_needs": "belonging"}),
		MarketOpportunities:  Structured(map[string]string{"product_gaps": "none yet"}),
		EngagementStrategies: Structured(map[string]string{"marketing": "short video"}),
		RiskAnalysis:         Structured(map[string]string{"potential_backlash": "low"}),
		ContentIdeas:         Structured([]string{"idea one", "idea two"}),
	}

	rec := result.ToRecord("Sourdough", "Google Trends", time.Now().UTC())

	if rec.TrendName != "Sourdough" {
		t.Errorf("TrendName = %q", rec.TrendName)
	}
	if !rec.Insights.IsStructured() {
		t.Error("Insights should carry the social sentiment document")
	}
	if !rec.Implications.IsStructured() {
		t.Error("Implications should be a merged document")
	}

	back := rec.ToResult()

	if back.Context.Text != "origin story" {
		t.Errorf("Context = %q", back.Context.Text)
	}
	for name, f := range map[string]Field{
		"social_sentiment":      back.SocialSentiment,
		"behavioral_drivers":    back.BehavioralDrivers,
		"market_opportunities":  back.MarketOpportunities,
		"engagement_strategies": back.EngagementStrategies,
		"risk_analysis":         back.RiskAnalysis,
		"content_ideas":         back.ContentIdeas,
	} {
		if !f.IsStructured() {
			t.Errorf("%s should be structured after a roundtrip", name)
		}
	}
}

func TestRecordToResultPlainImplications(t *testing.T) {
	rec := Record{
		Context:      Plain("context"),
		Insights:     Plain("insights"),
		Implications: Plain("legacy free-form implications"),
		ContentIdeas: Plain("ideas"),
	}

	result := rec.ToResult()

	for name, f := range map[string]Field{
		"behavioral_drivers":    result.BehavioralDrivers,
		"market_opportunities":  result.MarketOpportunities,
		"engagement_strategies": result.EngagementStrategies,
		"risk_analysis":         result.RiskAnalysis,
	} {
		if f.Text != "legacy free-form implications" {
			t.Errorf("%s = %q, want the plain implications text mirrored", name, f.Text)
		}
	}
}
