package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"trendpulse/internal/adapter/storage"
	"trendpulse/internal/config"
	"trendpulse/internal/logger"
	"trendpulse/internal/server"
	"trendpulse/internal/service/aggregator"
	"trendpulse/internal/service/analysis"
	"trendpulse/internal/service/source"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	defer log.Sync()

	log.Info("starting trendpulse",
		logger.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", logger.Error(err))
	}
	defer db.Close()

	// Initialize NATS
	natsConn, err := initNATS(cfg.NATS, log)
	if err != nil {
		log.Fatal("failed to connect to NATS", logger.Error(err))
	}
	defer natsConn.Close()

	// Initialize stores
	historyStore := storage.NewHistoryStore(db)
	if err := historyStore.EnsureSchema(ctx); err != nil {
		log.Fatal("failed to ensure history schema", logger.Error(err))
	}

	analysisStore := storage.NewAnalysisStore(db)
	if err := analysisStore.EnsureSchema(ctx); err != nil {
		log.Fatal("failed to ensure analysis schema", logger.Error(err))
	}

	trendCache := storage.NewTrendCache(cfg.Trend.CacheFile, cfg.Trend.CacheTTL, log)
	manualStore := storage.NewManualStore(cfg.Trend.ManualFile, log)

	// Initialize sources
	searchSource := source.NewGoogleTrends(source.GoogleTrendsConfig{
		BaseURL:    cfg.Search.BaseURL,
		Geo:        cfg.Search.Geo,
		Categories: cfg.Search.Categories,
		CallDelay:  cfg.Search.CallDelay,
	}, log)

	discussionSource := source.NewReddit(source.RedditConfig{
		BaseURL:        cfg.Discussion.BaseURL,
		TokenURL:       cfg.Discussion.TokenURL,
		ClientID:       cfg.Discussion.ClientID,
		ClientSecret:   cfg.Discussion.ClientSecret,
		UserAgent:      cfg.Discussion.UserAgent,
		Subreddits:     cfg.Discussion.Subreddits,
		PostLimit:      cfg.Discussion.PostLimit,
		MinPostsPerSub: cfg.Discussion.MinPostsPerSub,
		CallDelay:      cfg.Discussion.CallDelay,
	}, log)

	// Initialize services
	agg := aggregator.New(
		searchSource,
		discussionSource,
		manualStore,
		trendCache,
		historyStore,
		natsConn,
		aggregator.Config{EventsTopic: cfg.Trend.EventsTopic},
		log,
	)

	generator, err := analysis.NewOpenAIGenerator(ctx, analysis.GeneratorConfig{
		BaseURL:     cfg.Analysis.BaseURL,
		APIKey:      cfg.Analysis.APIKey,
		Model:       cfg.Analysis.Model,
		MaxTokens:   cfg.Analysis.MaxTokens,
		Temperature: cfg.Analysis.Temperature,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize analysis generator", logger.Error(err))
	}

	engine := analysis.NewEngine(
		analysisStore,
		generator,
		natsConn,
		analysis.Config{
			Timeout:     cfg.Analysis.Timeout,
			Freshness:   cfg.Analysis.Freshness,
			EventsTopic: cfg.Analysis.EventsTopic,
		},
		log,
	)

	// Initialize HTTP server
	srv := server.NewServer(
		cfg.Server,
		agg,
		engine,
		historyStore,
		manualStore,
		natsConn,
		cfg.Trend.EventsTopic,
		log,
	)

	// Start server
	go func() {
		log.Info("http server listening",
			logger.String("host", cfg.Server.Host),
			logger.Int("port", cfg.Server.Port))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", logger.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", logger.Error(err))
	}

	log.Info("shutdown complete")
}

// initDatabase connects to PostgreSQL and verifies the connection.
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// initNATS connects to the NATS server with reconnection handling.
func initNATS(cfg config.NATSConfig, log logger.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("nats disconnected", logger.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", logger.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return conn, nil
}
