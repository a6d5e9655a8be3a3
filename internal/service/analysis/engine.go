package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trendpulse/internal/domain/analysis"
	"trendpulse/internal/logger"
)

// Store persists generated analyses and serves fresh ones back.
type Store interface {
	Latest(ctx context.Context, name, source string, maxAge time.Duration) (*analysis.Record, error)
	Save(ctx context.Context, rec analysis.Record) error
}

// EventBus publishes analysis events. *nats.Conn satisfies it.
type EventBus interface {
	Publish(subject string, data []byte) error
}

// Config contains configuration for the analysis engine.
type Config struct {
	// Timeout bounds the wall-clock wait for one generation. The generation
	// request carries its own token budget; the two bounds are independent.
	Timeout time.Duration

	// Freshness is the window within which a stored analysis short-circuits
	// regeneration.
	Freshness time.Duration

	EventsTopic string
}

// Engine produces structured qualitative analyses for trends, backed by a
// persistent record store and bounded by a wall-clock timeout. Analyze never
// fails outward: generation errors and timeouts resolve to labeled
// placeholder results.
type Engine struct {
	store  Store
	gen    analysis.Generator
	events EventBus
	cfg    Config
	log    logger.Logger
}

// NewEngine creates a new analysis engine.
func NewEngine(store Store, gen analysis.Generator, events EventBus, cfg Config, log logger.Logger) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Freshness <= 0 {
		cfg.Freshness = 12 * time.Hour
	}
	if cfg.EventsTopic == "" {
		cfg.EventsTopic = "trends.analysis"
	}

	return &Engine{
		store:  store,
		gen:    gen,
		events: events,
		cfg:    cfg,
		log:    log,
	}
}

type outcome struct {
	result *analysis.Result
	err    error
}

// Analyze returns the analysis for one trend: a fresh stored record when one
// exists, otherwise a newly generated one. The caller blocks at most for the
// configured timeout.
func (e *Engine) Analyze(ctx context.Context, req analysis.Request) analysis.Result {
	rec, err := e.store.Latest(ctx, req.TrendName, req.Source, e.cfg.Freshness)
	if err != nil {
		e.log.Error("analysis lookup failed",
			logger.String("trend", req.TrendName),
			logger.Error(err))
	} else if rec != nil {
		e.log.Info("serving stored analysis",
			logger.String("trend", req.TrendName),
			logger.String("source", req.Source))
		return rec.ToResult()
	}

	// The generation runs on its own goroutine under a cancellable context,
	// so an abandoned wait also cancels the in-flight call.
	genCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		result, err := e.gen.Generate(genCtx, req)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			e.log.Error("analysis generation failed",
				logger.String("trend", req.TrendName),
				logger.Error(out.err))
			return errorResult(out.err)
		}

		e.persist(req, *out.result)
		e.publishCompleted(req)
		return *out.result

	case <-genCtx.Done():
		e.log.Warn("analysis generation timed out",
			logger.String("trend", req.TrendName),
			logger.Duration("timeout", e.cfg.Timeout))
		return timeoutResult()
	}
}

// persist reshapes and stores the result. Persistence failure must never
// affect the returned result.
func (e *Engine) persist(req analysis.Request, result analysis.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec := result.ToRecord(req.TrendName, req.Source, time.Now().UTC())
	if err := e.store.Save(ctx, rec); err != nil {
		e.log.Error("failed to store analysis",
			logger.String("trend", req.TrendName),
			logger.Error(err))
		return
	}

	e.log.Info("stored analysis",
		logger.String("trend", req.TrendName),
		logger.String("source", req.Source))
}

func (e *Engine) publishCompleted(req analysis.Request) {
	if e.events == nil {
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"trend_name":  req.TrendName,
		"source":      req.Source,
		"analyzed_at": time.Now().UTC(),
	})

	topic := fmt.Sprintf("%s.completed", e.cfg.EventsTopic)
	if err := e.events.Publish(topic, payload); err != nil {
		e.log.Error("failed to publish analysis event", logger.Error(err))
	}
}
