package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logger"
)

// ManualStore is the durable ordered list of user-curated trend entries,
// persisted as a JSON array. Entries are append-only from the application's
// perspective.
type ManualStore struct {
	path string
	mu   sync.Mutex
	log  logger.Logger
}

// NewManualStore creates a manual entry store persisted at path.
func NewManualStore(path string, log logger.Logger) *ManualStore {
	return &ManualStore{
		path: path,
		log:  log,
	}
}

// List returns all manual entries in insertion order. A missing file is an
// empty list; a read failure degrades to an empty list and is reported.
func (s *ManualStore) List() ([]trend.ManualEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Add validates and appends one entry, assigning its ID and timestamp.
// A missing required field is rejected with a ValidationError naming it.
func (s *ManualStore) Add(entry trend.ManualEntry) (trend.ManualEntry, error) {
	if err := validateEntry(entry); err != nil {
		return trend.ManualEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return trend.ManualEntry{}, err
	}

	entry.ID = uuid.New().String()
	entry.Timestamp = time.Now().UTC()
	entries = append(entries, entry)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return trend.ManualEntry{}, fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return trend.ManualEntry{}, fmt.Errorf("failed to encode manual trends: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return trend.ManualEntry{}, fmt.Errorf("failed to write manual trends: %w", err)
	}

	s.log.Info("added manual trend",
		logger.String("trend", entry.Name),
		logger.String("source", entry.Source))

	return entry, nil
}

func (s *ManualStore) load() ([]trend.ManualEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []trend.ManualEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read manual trends: %w", err)
	}

	var entries []trend.ManualEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode manual trends: %w", err)
	}

	return entries, nil
}

func validateEntry(entry trend.ManualEntry) error {
	required := []struct {
		field string
		value string
	}{
		{"trend_name", entry.Name},
		{"source", entry.Source},
		{"category", entry.Category},
		{"lifecycle_stage", entry.LifecycleStage},
	}

	for _, r := range required {
		if r.value == "" {
			return &trend.ValidationError{Field: r.field}
		}
	}

	return nil
}
