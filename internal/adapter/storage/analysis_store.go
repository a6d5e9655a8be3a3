package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trendpulse/internal/domain/analysis"
)

// AnalysisStore persists generated trend analyses. Each regeneration adds a
// new row; lookups take the newest row within the freshness window.
type AnalysisStore struct {
	db *pgxpool.Pool
}

// NewAnalysisStore creates a new analysis store.
func NewAnalysisStore(db *pgxpool.Pool) *AnalysisStore {
	return &AnalysisStore{
		db: db,
	}
}

// EnsureSchema creates the analysis table if it does not exist.
func (s *AnalysisStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS trend_analysis (
			id BIGSERIAL PRIMARY KEY,
			trend_name VARCHAR(255) NOT NULL,
			source VARCHAR(100) NOT NULL,
			context JSONB,
			insights JSONB,
			implications JSONB,
			content_ideas JSONB,
			analyzed_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_trend_analysis_lookup
			ON trend_analysis (trend_name, source, analyzed_at DESC);
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("error creating analysis schema: %w", err)
	}

	return nil
}

// Latest returns the newest analysis for the trend identity recorded within
// maxAge, or nil when none qualifies.
func (s *AnalysisStore) Latest(ctx context.Context, name, source string, maxAge time.Duration) (*analysis.Record, error) {
	query := `
		SELECT context, insights, implications, content_ideas, analyzed_at
		FROM trend_analysis
		WHERE trend_name = $1 AND source = $2 AND analyzed_at > $3
		ORDER BY analyzed_at DESC
		LIMIT 1
	`

	since := time.Now().UTC().Add(-maxAge)

	var contextJSON, insightsJSON, implicationsJSON, contentIdeasJSON []byte
	rec := analysis.Record{
		TrendName: name,
		Source:    source,
	}

	err := s.db.QueryRow(ctx, query, name, source, since).Scan(
		&contextJSON,
		&insightsJSON,
		&implicationsJSON,
		&contentIdeasJSON,
		&rec.AnalyzedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying trend analysis: %w", err)
	}

	fields := []struct {
		data []byte
		dst  *analysis.Field
	}{
		{contextJSON, &rec.Context},
		{insightsJSON, &rec.Insights},
		{implicationsJSON, &rec.Implications},
		{contentIdeasJSON, &rec.ContentIdeas},
	}
	for _, f := range fields {
		if len(f.data) == 0 {
			continue
		}
		if err := json.Unmarshal(f.data, f.dst); err != nil {
			return nil, fmt.Errorf("error decoding analysis field: %w", err)
		}
	}

	return &rec, nil
}

// Save appends a new analysis record.
func (s *AnalysisStore) Save(ctx context.Context, rec analysis.Record) error {
	query := `
		INSERT INTO trend_analysis (trend_name, source, context, insights, implications, content_ideas, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	contextJSON, err := json.Marshal(rec.Context)
	if err != nil {
		return fmt.Errorf("error encoding context field: %w", err)
	}
	insightsJSON, err := json.Marshal(rec.Insights)
	if err != nil {
		return fmt.Errorf("error encoding insights field: %w", err)
	}
	implicationsJSON, err := json.Marshal(rec.Implications)
	if err != nil {
		return fmt.Errorf("error encoding implications field: %w", err)
	}
	contentIdeasJSON, err := json.Marshal(rec.ContentIdeas)
	if err != nil {
		return fmt.Errorf("error encoding content ideas field: %w", err)
	}

	_, err = s.db.Exec(ctx, query,
		rec.TrendName,
		rec.Source,
		contextJSON,
		insightsJSON,
		implicationsJSON,
		contentIdeasJSON,
		rec.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting analysis row: %w", err)
	}

	return nil
}
