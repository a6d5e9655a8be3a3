package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"trendpulse/internal/config"
	"trendpulse/internal/logger"
	"trendpulse/internal/server/handlers"
	"trendpulse/internal/service/aggregator"
	"trendpulse/internal/service/analysis"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server exposing the aggregation boundary.
func NewServer(
	cfg config.ServerConfig,
	agg *aggregator.Aggregator,
	engine *analysis.Engine,
	history handlers.HistoryReader,
	manual handlers.ManualEntryStore,
	natsConn *nats.Conn,
	eventsTopic string,
	log logger.Logger,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	trendHandler := handlers.NewTrendHandler(agg, log)
	analysisHandler := handlers.NewAnalysisHandler(agg, engine, history, log)
	manualHandler := handlers.NewManualHandler(manual, log)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Trends API
			r.Route("/trends", func(r chi.Router) {
				r.Get("/", trendHandler.GetTrends)
				r.Post("/refresh", trendHandler.Refresh)
				r.Get("/top", trendHandler.GetTopOpportunities)
				r.Get("/analysis", analysisHandler.GetAnalysis)
				r.Get("/history", analysisHandler.GetHistory)

				// Manual entries
				r.Route("/manual", func(r chi.Router) {
					r.Get("/", manualHandler.List)
					r.Post("/", manualHandler.Add)
				})
			})

			// Cache introspection
			r.Get("/cache/status", trendHandler.CacheStatus)
		})
	})

	// WebSocket endpoint streaming refresh events
	router.Get("/ws/trends", handlers.TrendsWebSocketHandler(natsConn, eventsTopic, log))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
