package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logger"
)

// ManualEntryStore is the durable list of curated trend entries.
// *storage.ManualStore satisfies it.
type ManualEntryStore interface {
	List() ([]trend.ManualEntry, error)
	Add(entry trend.ManualEntry) (trend.ManualEntry, error)
}

// ManualHandler handles curated manual trend entries.
type ManualHandler struct {
	store ManualEntryStore
	log   logger.Logger
}

// NewManualHandler creates a new manual entry handler.
func NewManualHandler(store ManualEntryStore, log logger.Logger) *ManualHandler {
	return &ManualHandler{
		store: store,
		log:   log,
	}
}

// List returns all manual entries in insertion order.
func (h *ManualHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.List()
	if err != nil {
		h.log.Error("failed to list manual trends", logger.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to read manual trends")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": entries,
		"count":  len(entries),
	})
}

// Add validates and appends one manual entry. A missing required field is a
// 400 naming the field.
func (h *ManualHandler) Add(w http.ResponseWriter, r *http.Request) {
	var entry trend.ManualEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	added, err := h.store.Add(entry)
	if err != nil {
		var verr *trend.ValidationError
		if errors.As(err, &verr) {
			respondWithError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.log.Error("failed to add manual trend", logger.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to save manual trend")
		return
	}

	respondWithJSON(w, http.StatusCreated, added)
}
