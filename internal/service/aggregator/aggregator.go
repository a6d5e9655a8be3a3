package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logger"
	"trendpulse/internal/service/source"
)

// SearchSource provides raw search-trend items. It never fails; failures
// inside the adapter resolve to fallback data.
type SearchSource interface {
	Fetch(ctx context.Context) []source.SearchItem
}

// DiscussionSource provides raw social-discussion posts with the same
// never-fails contract.
type DiscussionSource interface {
	Fetch(ctx context.Context) []source.RedditPost
}

// ManualSource provides the curated entry list.
type ManualSource interface {
	List() ([]trend.ManualEntry, error)
}

// Cache is the time-boxed store of the last merged trend set.
type Cache interface {
	Read() ([]trend.Trend, bool)
	Write(trends []trend.Trend)
	Status() trend.CacheStatus
}

// Recorder appends trend snapshots to the history log.
type Recorder interface {
	Record(ctx context.Context, trends []trend.Trend) error
}

// EventBus publishes aggregation events. *nats.Conn satisfies it.
type EventBus interface {
	Publish(subject string, data []byte) error
}

// Config contains configuration for the aggregator.
type Config struct {
	EventsTopic string
}

// Aggregator drives the fetch -> normalize -> merge -> cache -> record
// pipeline and serves cached-or-fresh reads.
type Aggregator struct {
	search   SearchSource
	social   DiscussionSource
	manual   ManualSource
	cache    Cache
	recorder Recorder
	events   EventBus
	cfg      Config
	log      logger.Logger
}

// New creates a new aggregator.
func New(
	search SearchSource,
	social DiscussionSource,
	manual ManualSource,
	cache Cache,
	recorder Recorder,
	events EventBus,
	cfg Config,
	log logger.Logger,
) *Aggregator {
	if cfg.EventsTopic == "" {
		cfg.EventsTopic = "trends"
	}

	return &Aggregator{
		search:   search,
		social:   social,
		manual:   manual,
		cache:    cache,
		recorder: recorder,
		events:   events,
		cfg:      cfg,
		log:      log,
	}
}

// Refresh fetches all sources, normalizes and merges them in source order
// (search, discussion, manual), writes through the cache, records the
// snapshot, and returns the merged set.
func (a *Aggregator) Refresh(ctx context.Context) []trend.Trend {
	searchItems := a.search.Fetch(ctx)
	posts := a.social.Fetch(ctx)

	entries, err := a.manual.List()
	if err != nil {
		a.log.Error("failed to read manual trends", logger.Error(err))
		entries = nil
	}

	all := NormalizeSearch(searchItems)
	all = append(all, NormalizeSocial(posts)...)
	all = append(all, NormalizeManual(entries)...)

	a.cache.Write(all)
	a.record(ctx, all)
	a.publishRefreshed(len(all))

	a.log.Info("refreshed trends",
		logger.Int("search", len(searchItems)),
		logger.Int("social", len(posts)),
		logger.Int("manual", len(entries)),
		logger.Int("total", len(all)))

	return all
}

// Read serves the cached trend set when fresh. On a miss it refreshes when
// allowFetch is set; otherwise it degrades to the manual-only view.
func (a *Aggregator) Read(ctx context.Context, allowFetch bool) []trend.Trend {
	if trends, ok := a.cache.Read(); ok {
		return trends
	}

	if allowFetch {
		return a.Refresh(ctx)
	}

	entries, err := a.manual.List()
	if err != nil {
		a.log.Error("failed to read manual trends", logger.Error(err))
		return []trend.Trend{}
	}

	return NormalizeManual(entries)
}

// Find returns the first trend matching the identity key, reading through
// the cache.
func (a *Aggregator) Find(ctx context.Context, name, source string) (trend.Trend, error) {
	for _, t := range a.Read(ctx, true) {
		if t.Name == name && t.Source == source {
			return t, nil
		}
	}
	return trend.Trend{}, trend.ErrNotFound
}

// FindByOrdinal returns the trend at the 1-indexed position in the merged
// set.
func (a *Aggregator) FindByOrdinal(ctx context.Context, ordinal int) (trend.Trend, error) {
	trends := a.Read(ctx, true)
	if ordinal < 1 || ordinal > len(trends) {
		return trend.Trend{}, trend.ErrNotFound
	}
	return trends[ordinal-1], nil
}

// Related returns up to three other trends sharing the source or category.
func (a *Aggregator) Related(ctx context.Context, t trend.Trend) []trend.Trend {
	var related []trend.Trend
	for _, candidate := range a.Read(ctx, true) {
		if candidate.Name == t.Name {
			continue
		}
		if candidate.Source != t.Source && candidate.Category != t.Category {
			continue
		}
		related = append(related, candidate)
		if len(related) == 3 {
			break
		}
	}
	return related
}

// RecordView appends a single trend snapshot to the history log. Like all
// history writes it is fire-and-forget.
func (a *Aggregator) RecordView(ctx context.Context, t trend.Trend) {
	a.record(ctx, []trend.Trend{t})
}

// CacheStatus reports the state of the underlying cache.
func (a *Aggregator) CacheStatus() trend.CacheStatus {
	return a.cache.Status()
}

// record is fire-and-forget: a history failure is logged and never blocks
// the trend-serving path.
func (a *Aggregator) record(ctx context.Context, trends []trend.Trend) {
	if len(trends) == 0 {
		return
	}
	if err := a.recorder.Record(ctx, trends); err != nil {
		a.log.Error("failed to record trend history", logger.Error(err))
		return
	}
	a.log.Info("recorded trend history", logger.Int("count", len(trends)))
}

func (a *Aggregator) publishRefreshed(count int) {
	if a.events == nil {
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"count":        count,
		"refreshed_at": time.Now().UTC(),
	})

	topic := fmt.Sprintf("%s.refreshed", a.cfg.EventsTopic)
	if err := a.events.Publish(topic, payload); err != nil {
		a.log.Error("failed to publish refresh event", logger.Error(err))
	}
}

// Rank returns a copy of trends sorted by popularity score descending.
// The sort is stable so the original merge order breaks ties.
func Rank(trends []trend.Trend) []trend.Trend {
	ranked := make([]trend.Trend, len(trends))
	copy(ranked, trends)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PopularityScore > ranked[j].PopularityScore
	})
	return ranked
}

// TopOpportunities selects the highest-potential trends: ranked trends with
// confirmed pop potential or a score above 80, capped at three.
func TopOpportunities(trends []trend.Trend) []trend.Trend {
	var top []trend.Trend
	for _, t := range Rank(trends) {
		if t.PopPotential != trend.PotentialYes && t.PopularityScore <= 80 {
			continue
		}
		top = append(top, t)
		if len(top) == 3 {
			break
		}
	}
	return top
}
