package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"trendpulse/internal/domain/analysis"
	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logger"
	"trendpulse/internal/service/aggregator"
	analysissvc "trendpulse/internal/service/analysis"
)

// HistoryReader serves recorded popularity points for one trend identity.
// *storage.HistoryStore satisfies it.
type HistoryReader interface {
	History(ctx context.Context, name, source string, period trend.Period) ([]trend.HistoryPoint, error)
}

// AnalysisHandler handles per-trend analysis and history requests.
type AnalysisHandler struct {
	agg     *aggregator.Aggregator
	engine  *analysissvc.Engine
	history HistoryReader
	log     logger.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(agg *aggregator.Aggregator, engine *analysissvc.Engine, history HistoryReader, log logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		agg:     agg,
		engine:  engine,
		history: history,
		log:     log,
	}
}

// GetAnalysis resolves a trend by name and source, or by its 1-indexed
// ordinal in the merged set, and returns its analysis alongside related
// trends. Viewing a trend also records a history snapshot for it.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	t, err := h.resolveTrend(r)
	if err != nil {
		if errors.Is(err, trend.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Trend not found")
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.agg.RecordView(r.Context(), t)

	result := h.engine.Analyze(r.Context(), analysis.Request{
		TrendName: t.Name,
		Source:    t.Source,
		Category:  t.Category,
		Details:   t.Details,
	})

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trend":    t,
		"analysis": result,
		"related":  h.agg.Related(r.Context(), t),
	})
}

// GetHistory returns the recorded popularity points for one trend identity
// within the requested period window.
func (h *AnalysisHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	source := r.URL.Query().Get("source")
	if name == "" || source == "" {
		respondWithError(w, http.StatusBadRequest, "name and source are required")
		return
	}

	period := trend.ParsePeriod(r.URL.Query().Get("period"))

	points, err := h.history.History(r.Context(), name, source, period)
	if err != nil {
		h.log.Error("failed to read trend history",
			logger.String("trend", name),
			logger.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to read trend history")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trend_name": name,
		"source":     source,
		"period":     string(period),
		"history":    points,
	})
}

func (h *AnalysisHandler) resolveTrend(r *http.Request) (trend.Trend, error) {
	q := r.URL.Query()

	if ordinalStr := q.Get("ordinal"); ordinalStr != "" {
		ordinal, err := strconv.Atoi(ordinalStr)
		if err != nil {
			return trend.Trend{}, errors.New("ordinal must be an integer")
		}
		return h.agg.FindByOrdinal(r.Context(), ordinal)
	}

	name := q.Get("name")
	source := q.Get("source")
	if name == "" || source == "" {
		return trend.Trend{}, errors.New("name and source are required")
	}

	return h.agg.Find(r.Context(), name, source)
}
