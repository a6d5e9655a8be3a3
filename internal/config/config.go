package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Log         LogConfig
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Trend       TrendConfig
	Search      SearchConfig
	Discussion  DiscussionConfig
	Analysis    AnalysisConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// TrendConfig holds trend aggregation configuration
type TrendConfig struct {
	CacheFile   string
	CacheTTL    time.Duration
	ManualFile  string
	EventsTopic string
}

// SearchConfig holds search-trend source configuration
type SearchConfig struct {
	BaseURL    string
	Geo        string
	Categories []string
	CallDelay  time.Duration
}

// DiscussionConfig holds social-discussion source configuration
type DiscussionConfig struct {
	BaseURL        string
	TokenURL       string
	ClientID       string
	ClientSecret   string
	UserAgent      string
	Subreddits     []string
	PostLimit      int
	MinPostsPerSub int
	CallDelay      time.Duration
}

// AnalysisConfig holds analysis engine configuration
type AnalysisConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	Freshness   time.Duration
	EventsTopic string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvAsBool("LOG_PRETTY", true),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "trendpulse"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Trend: TrendConfig{
			CacheFile:   getEnv("TREND_CACHE_FILE", "data/trend_cache.json"),
			CacheTTL:    getEnvAsDuration("TREND_CACHE_TTL", 15*time.Minute),
			ManualFile:  getEnv("TREND_MANUAL_FILE", "data/manual_trends.json"),
			EventsTopic: getEnv("TREND_EVENTS_TOPIC", "trends"),
		},
		Search: SearchConfig{
			BaseURL:    getEnv("SEARCH_TRENDS_BASE_URL", "https://trends.google.com"),
			Geo:        getEnv("SEARCH_TRENDS_GEO", "US"),
			Categories: getEnvAsSlice("SEARCH_TRENDS_CATEGORIES", []string{"Entertainment", "Shopping", "Pop Culture"}),
			CallDelay:  getEnvAsDuration("SEARCH_TRENDS_CALL_DELAY", 2*time.Second),
		},
		Discussion: DiscussionConfig{
			BaseURL:        getEnv("REDDIT_BASE_URL", "https://oauth.reddit.com"),
			TokenURL:       getEnv("REDDIT_TOKEN_URL", "https://www.reddit.com/api/v1/access_token"),
			ClientID:       getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret:   getEnv("REDDIT_CLIENT_SECRET", ""),
			UserAgent:      getEnv("REDDIT_USER_AGENT", "trendpulse/1.0"),
			Subreddits:     getEnvAsSlice("REDDIT_SUBREDDITS", []string{"popculturechat", "AskTikTok", "femalefashionadvice", "internetisbeautiful"}),
			PostLimit:      getEnvAsInt("REDDIT_POST_LIMIT", 5),
			MinPostsPerSub: getEnvAsInt("REDDIT_MIN_POSTS_PER_SUB", 3),
			CallDelay:      getEnvAsDuration("REDDIT_CALL_DELAY", 1*time.Second),
		},
		Analysis: AnalysisConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o"),
			MaxTokens:   getEnvAsInt("ANALYSIS_MAX_TOKENS", 4000),
			Temperature: getEnvAsFloat("ANALYSIS_TEMPERATURE", 0.7),
			Timeout:     getEnvAsDuration("ANALYSIS_TIMEOUT", 10*time.Second),
			Freshness:   getEnvAsDuration("ANALYSIS_FRESHNESS", 12*time.Hour),
			EventsTopic: getEnv("ANALYSIS_EVENTS_TOPIC", "trends.analysis"),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Trend.CacheTTL <= 0 {
		return fmt.Errorf("trend cache TTL must be positive")
	}

	if config.Analysis.Timeout <= 0 {
		return fmt.Errorf("analysis timeout must be positive")
	}

	if config.Analysis.APIKey == "" && config.Environment != "development" {
		return fmt.Errorf("OPENAI_API_KEY must be set in non-development environments")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
