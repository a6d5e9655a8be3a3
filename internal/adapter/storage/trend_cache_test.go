package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logger"
)

func newTestCache(t *testing.T, ttl time.Duration) (*TrendCache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trend_cache.json")
	return NewTrendCache(path, ttl, logger.NewNop()), path
}

func sampleTrends() []trend.Trend {
	return []trend.Trend{
		{Name: "Sourdough", Source: "Google Trends", Category: "Entertainment", PopularityScore: 90},
		{Name: "Vintage denim", Source: "Reddit - r/femalefashionadvice", Category: "Social Media", PopularityScore: 42},
	}
}

func TestTrendCacheMissOnAbsence(t *testing.T) {
	cache, _ := newTestCache(t, 15*time.Minute)

	if _, ok := cache.Read(); ok {
		t.Error("expected a miss before any write")
	}
}

func TestTrendCacheRoundtrip(t *testing.T) {
	cache, _ := newTestCache(t, 15*time.Minute)

	cache.Write(sampleTrends())

	trends, ok := cache.Read()
	if !ok {
		t.Fatal("expected a hit after writing")
	}
	if len(trends) != 2 {
		t.Fatalf("got %d trends, want 2", len(trends))
	}
	if trends[0].Name != "Sourdough" {
		t.Errorf("trends[0].Name = %q, want %q", trends[0].Name, "Sourdough")
	}
}

func TestTrendCacheExpiry(t *testing.T) {
	cache, path := newTestCache(t, 15*time.Minute)

	doc := cacheDocument{
		Timestamp: time.Now().UTC().Add(-16 * time.Minute),
		Trends:    sampleTrends(),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Read(); ok {
		t.Error("expected a miss for an expired entry")
	}
}

func TestTrendCacheCorruptFileIsMiss(t *testing.T) {
	cache, path := newTestCache(t, 15*time.Minute)

	if err := os.WriteFile(path, []byte(`{"timestamp": "not even`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Read(); ok {
		t.Error("expected a miss for a corrupt file")
	}

	// A subsequent write must recover the cache.
	cache.Write(sampleTrends())
	if _, ok := cache.Read(); !ok {
		t.Error("expected a hit after overwriting the corrupt file")
	}
}

func TestTrendCacheOverwrite(t *testing.T) {
	cache, _ := newTestCache(t, 15*time.Minute)

	cache.Write(sampleTrends())
	cache.Write([]trend.Trend{{Name: "Only one", Source: "Manual"}})

	trends, ok := cache.Read()
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(trends) != 1 {
		t.Fatalf("got %d trends, want 1; every write should replace the entry", len(trends))
	}
}

func TestTrendCacheStatus(t *testing.T) {
	cache, _ := newTestCache(t, 15*time.Minute)

	status := cache.Status()
	if status.Exists {
		t.Error("status should report absence before any write")
	}

	cache.Write(sampleTrends())

	status = cache.Status()
	if !status.Exists {
		t.Fatal("status should report an existing entry")
	}
	if status.Count != 2 {
		t.Errorf("Count = %d, want 2", status.Count)
	}
	if status.AgeMinutes == nil || *status.AgeMinutes != 0 {
		t.Errorf("AgeMinutes = %v, want 0 for a fresh entry", status.AgeMinutes)
	}
}
