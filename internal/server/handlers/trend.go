package handlers

import (
	"net/http"

	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logger"
	"trendpulse/internal/service/aggregator"
)

// TrendHandler handles trend listing and refresh requests.
type TrendHandler struct {
	agg *aggregator.Aggregator
	log logger.Logger
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(agg *aggregator.Aggregator, log logger.Logger) *TrendHandler {
	return &TrendHandler{
		agg: agg,
		log: log,
	}
}

// GetTrends returns the current merged trend set, reading through the cache.
// Passing refresh=1 bypasses the cache and rebuilds the set.
func (h *TrendHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	var trends []trend.Trend
	if r.URL.Query().Get("refresh") == "1" {
		trends = h.agg.Refresh(r.Context())
	} else {
		trends = h.agg.Read(r.Context(), true)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": trends,
		"count":  len(trends),
	})
}

// Refresh forces a full rebuild of the trend set.
func (h *TrendHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	trends := h.agg.Refresh(r.Context())

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": trends,
		"count":  len(trends),
	})
}

// GetTopOpportunities returns the highest-potential trends, ranked.
func (h *TrendHandler) GetTopOpportunities(w http.ResponseWriter, r *http.Request) {
	trends := h.agg.Read(r.Context(), true)
	top := aggregator.TopOpportunities(trends)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": top,
		"count":  len(top),
	})
}

// CacheStatus reports the state of the trend cache.
func (h *TrendHandler) CacheStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.agg.CacheStatus())
}
