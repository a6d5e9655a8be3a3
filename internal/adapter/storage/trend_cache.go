package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logger"
)

// cacheDocument is the single JSON document persisted by the cache.
type cacheDocument struct {
	Timestamp time.Time     `json:"timestamp"`
	Trends    []trend.Trend `json:"trends"`
}

// TrendCache is a time-boxed, file-backed store of the last normalized
// trend set. Exactly one entry exists at a time; every write overwrites it.
// All I/O failures degrade: reads become cache misses and writes are
// best-effort, so callers never see an error from this type.
type TrendCache struct {
	path string
	ttl  time.Duration
	mu   sync.Mutex
	log  logger.Logger
}

// NewTrendCache creates a cache persisted at path with the given freshness
// window.
func NewTrendCache(path string, ttl time.Duration, log logger.Logger) *TrendCache {
	return &TrendCache{
		path: path,
		ttl:  ttl,
		log:  log,
	}
}

// Read returns the cached trends when a fresh entry exists. A missing,
// expired, or unreadable entry is a cache miss.
func (c *TrendCache) Read() ([]trend.Trend, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.load()
	if !ok {
		return nil, false
	}

	if time.Since(doc.Timestamp) > c.ttl {
		c.log.Info("trend cache expired",
			logger.Duration("age", time.Since(doc.Timestamp)))
		return nil, false
	}

	return doc.Trends, true
}

// Write overwrites the cache entry with the current timestamp. Failures are
// logged and swallowed; losing a cache write must never abort the operation
// that triggered it.
func (c *TrendCache) Write(trends []trend.Trend) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		c.log.Error("failed to create cache directory", logger.Error(err))
		return
	}

	doc := cacheDocument{
		Timestamp: time.Now().UTC(),
		Trends:    trends,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		c.log.Error("failed to encode trend cache", logger.Error(err))
		return
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		c.log.Error("failed to write trend cache", logger.Error(err))
		return
	}

	c.log.Info("cached trends", logger.Int("count", len(trends)))
}

// Status reports whether an entry exists, how many trends it holds, and how
// old it is.
func (c *TrendCache) Status() trend.CacheStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.load()
	if !ok {
		return trend.CacheStatus{Exists: false, Count: 0}
	}

	age := int(time.Since(doc.Timestamp).Minutes())
	return trend.CacheStatus{
		Exists:     true,
		Count:      len(doc.Trends),
		AgeMinutes: &age,
		Timestamp:  doc.Timestamp.Format(time.RFC3339),
	}
}

// load reads and decodes the cache document. A partial write can leave the
// file corrupt; a decode failure is treated as absence, never a crash.
func (c *TrendCache) load() (cacheDocument, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Error("failed to read trend cache", logger.Error(err))
		}
		return cacheDocument{}, false
	}

	var doc cacheDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		c.log.Error("trend cache is corrupt, treating as miss", logger.Error(err))
		return cacheDocument{}, false
	}

	return doc, true
}
