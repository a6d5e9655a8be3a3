package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"trendpulse/internal/domain/trend"
)

// HistoryStore implements the append-only trend history log.
type HistoryStore struct {
	db *pgxpool.Pool
}

// NewHistoryStore creates a new history store.
func NewHistoryStore(db *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{
		db: db,
	}
}

// EnsureSchema creates the history table if it does not exist.
func (s *HistoryStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS trend_history (
			id BIGSERIAL PRIMARY KEY,
			trend_name VARCHAR(255) NOT NULL,
			source VARCHAR(100) NOT NULL,
			category VARCHAR(100),
			popularity_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			recorded_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_trend_history_lookup
			ON trend_history (trend_name, source, recorded_at);
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("error creating history schema: %w", err)
	}

	return nil
}

// Record appends one history row per trend in a single transaction. Any
// failure rolls back the whole batch.
func (s *HistoryStore) Record(ctx context.Context, trends []trend.Trend) error {
	if len(trends) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting history transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO trend_history (trend_name, source, category, popularity_score, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	recordedAt := time.Now().UTC()
	for _, t := range trends {
		if _, err := tx.Exec(ctx, query, t.Name, t.Source, t.Category, t.PopularityScore, recordedAt); err != nil {
			return fmt.Errorf("error inserting history row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing history batch: %w", err)
	}

	return nil
}

// History returns the recorded popularity points for one trend identity
// within the period window, ascending by recorded time.
func (s *HistoryStore) History(ctx context.Context, name, source string, period trend.Period) ([]trend.HistoryPoint, error) {
	query := `
		SELECT recorded_at, popularity_score
		FROM trend_history
		WHERE trend_name = $1 AND source = $2 AND recorded_at >= $3
		ORDER BY recorded_at ASC
	`

	since := time.Now().UTC().Add(-period.Window())

	rows, err := s.db.Query(ctx, query, name, source, since)
	if err != nil {
		return nil, fmt.Errorf("error querying trend history: %w", err)
	}
	defer rows.Close()

	var points []trend.HistoryPoint
	for rows.Next() {
		var p trend.HistoryPoint
		if err := rows.Scan(&p.Date, &p.PopularityScore); err != nil {
			return nil, fmt.Errorf("error scanning history row: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return points, nil
}
