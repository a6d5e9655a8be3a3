package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trendpulse/internal/domain/analysis"
	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logger"
	"trendpulse/internal/service/aggregator"
	analysissvc "trendpulse/internal/service/analysis"
	"trendpulse/internal/service/source"
)

type stubSearch struct{ items []source.SearchItem }

func (s *stubSearch) Fetch(ctx context.Context) []source.SearchItem { return s.items }

type stubDiscussion struct{ posts []source.RedditPost }

func (s *stubDiscussion) Fetch(ctx context.Context) []source.RedditPost { return s.posts }

type stubManual struct {
	entries []trend.ManualEntry
	addErr  error
}

func (s *stubManual) List() ([]trend.ManualEntry, error) { return s.entries, nil }

func (s *stubManual) Add(entry trend.ManualEntry) (trend.ManualEntry, error) {
	if s.addErr != nil {
		return trend.ManualEntry{}, s.addErr
	}
	entry.ID = "generated"
	entry.Timestamp = time.Now().UTC()
	s.entries = append(s.entries, entry)
	return entry, nil
}

type stubCache struct {
	trends []trend.Trend
	fresh  bool
}

func (s *stubCache) Read() ([]trend.Trend, bool) {
	if !s.fresh {
		return nil, false
	}
	return s.trends, true
}

func (s *stubCache) Write(trends []trend.Trend) {
	s.trends = trends
	s.fresh = true
}

func (s *stubCache) Status() trend.CacheStatus {
	return trend.CacheStatus{Exists: s.fresh, Count: len(s.trends)}
}

type stubRecorder struct{}

func (s *stubRecorder) Record(ctx context.Context, trends []trend.Trend) error { return nil }

type stubAnalysisStore struct{}

func (s *stubAnalysisStore) Latest(ctx context.Context, name, source string, maxAge time.Duration) (*analysis.Record, error) {
	return nil, nil
}

func (s *stubAnalysisStore) Save(ctx context.Context, rec analysis.Record) error { return nil }

type stubGenerator struct{}

func (s *stubGenerator) Generate(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	return &analysis.Result{
		Context:         analysis.Plain("generated for " + req.TrendName),
		SocialSentiment: analysis.Structured(map[string]string{"positive_reactions": "good"}),
		ContentIdeas:    analysis.Structured([]string{"idea"}),
	}, nil
}

type stubHistory struct {
	points []trend.HistoryPoint
	period trend.Period
}

func (s *stubHistory) History(ctx context.Context, name, source string, period trend.Period) ([]trend.HistoryPoint, error) {
	s.period = period
	return s.points, nil
}

func newTestAggregator() *aggregator.Aggregator {
	search := &stubSearch{items: []source.SearchItem{
		{Title: "Sourdough", Category: "Entertainment", TrafficScore: 90},
	}}
	social := &stubDiscussion{}
	manual := &stubManual{}
	return aggregator.New(search, social, manual, &stubCache{}, &stubRecorder{}, nil, aggregator.Config{}, logger.NewNop())
}

func newTestEngine() *analysissvc.Engine {
	return analysissvc.NewEngine(&stubAnalysisStore{}, &stubGenerator{}, nil, analysissvc.Config{Timeout: time.Second}, logger.NewNop())
}

func TestGetTrends(t *testing.T) {
	handler := NewTrendHandler(newTestAggregator(), logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends", nil)
	rec := httptest.NewRecorder()

	handler.GetTrends(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload struct {
		Count  int           `json:"count"`
		Trends []trend.Trend `json:"trends"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if payload.Count != 1 || payload.Trends[0].Name != "Sourdough" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestGetAnalysisRequiresIdentity(t *testing.T) {
	handler := NewAnalysisHandler(newTestAggregator(), newTestEngine(), &stubHistory{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends/analysis", nil)
	rec := httptest.NewRecorder()

	handler.GetAnalysis(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without name and source", rec.Code)
	}
}

func TestGetAnalysisUnknownTrend(t *testing.T) {
	handler := NewAnalysisHandler(newTestAggregator(), newTestEngine(), &stubHistory{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends/analysis?name=Nope&source=Google+Trends", nil)
	rec := httptest.NewRecorder()

	handler.GetAnalysis(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for an unknown trend", rec.Code)
	}
}

func TestGetAnalysisKnownTrend(t *testing.T) {
	handler := NewAnalysisHandler(newTestAggregator(), newTestEngine(), &stubHistory{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends/analysis?name=Sourdough&source=Google+Trends", nil)
	rec := httptest.NewRecorder()

	handler.GetAnalysis(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "generated for Sourdough") {
		t.Errorf("analysis missing from body: %s", rec.Body.String())
	}
}

func TestGetAnalysisByOrdinal(t *testing.T) {
	handler := NewAnalysisHandler(newTestAggregator(), newTestEngine(), &stubHistory{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends/analysis?ordinal=1", nil)
	rec := httptest.NewRecorder()

	handler.GetAnalysis(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sourdough") {
		t.Errorf("ordinal 1 should resolve to the first trend, body: %s", rec.Body.String())
	}
}

func TestGetHistoryDefaultsPeriodToWeek(t *testing.T) {
	history := &stubHistory{points: []trend.HistoryPoint{
		{Date: time.Now().UTC(), PopularityScore: 42},
	}}
	handler := NewAnalysisHandler(newTestAggregator(), newTestEngine(), history, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends/history?name=Sourdough&source=Google+Trends&period=decade", nil)
	rec := httptest.NewRecorder()

	handler.GetHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if history.period != trend.PeriodWeek {
		t.Errorf("period = %q, want week for an unknown period", history.period)
	}
}

func TestGetHistoryRequiresIdentity(t *testing.T) {
	handler := NewAnalysisHandler(newTestAggregator(), newTestEngine(), &stubHistory{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends/history?name=Sourdough", nil)
	rec := httptest.NewRecorder()

	handler.GetHistory(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without a source", rec.Code)
	}
}

func TestAddManualEntry(t *testing.T) {
	store := &stubManual{}
	handler := NewManualHandler(store, logger.NewNop())

	body := `{"trend_name":"Quiet luxury","source":"Manual","category":"Fashion","lifecycle_stage":"Emerging"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trends/manual", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "generated") {
		t.Errorf("response should carry the assigned ID, body: %s", rec.Body.String())
	}
}

func TestAddManualEntryValidationError(t *testing.T) {
	store := &stubManual{addErr: &trend.ValidationError{Field: "category"}}
	handler := NewManualHandler(store, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trends/manual", strings.NewReader(`{"trend_name":"x"}`))
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "category") {
		t.Errorf("error should name the missing field, body: %s", rec.Body.String())
	}
}

func TestAddManualEntryBadJSON(t *testing.T) {
	handler := NewManualHandler(&stubManual{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trends/manual", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCacheStatusEndpoint(t *testing.T) {
	handler := NewTrendHandler(newTestAggregator(), logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/status", nil)
	rec := httptest.NewRecorder()

	handler.CacheStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var status trend.CacheStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if status.Exists {
		t.Error("status should report absence before any refresh")
	}
}
