package internal

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/DukeRupert/pagewindow/internal/middleware"
	"github.com/DukeRupert/pagewindow/internal/pagination"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Page window defaults, used when a request omits edge/siblings
	DefaultEdgePageCount int
	DefaultSiblingCount  int

	// Upper bound on total pages per request; computing a window is
	// O(total pages) so this caps the work a single request can cause.
	MaxTotalPages int

	// Number of windows kept in the in-memory memo (0 disables caching)
	CacheSize int

	// Per-client rate limiting for the API
	RateLimitRPS   float64
	RateLimitBurst int
	RateLimitIdle  time.Duration

	// Proxies allowed to set X-Forwarded-For / X-Real-IP. Empty means the
	// service is reached directly and those headers are ignored.
	TrustedProxies []netip.Prefix

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string

	ShutdownTimeout time.Duration
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		DefaultEdgePageCount: getEnvInt("DEFAULT_EDGE_PAGE_COUNT", 1),
		DefaultSiblingCount:  getEnvInt("DEFAULT_SIBLING_COUNT", 2),
		MaxTotalPages:        getEnvInt("MAX_TOTAL_PAGES", pagination.DefaultMaxTotalPages),
		CacheSize:            getEnvInt("CACHE_SIZE", 1024),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
		RateLimitIdle:  getEnvDuration("RATE_LIMIT_IDLE", 10*time.Minute),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	trusted, err := middleware.ParseTrustedProxies(getEnv("TRUSTED_PROXIES", ""))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	cfg.TrustedProxies = trusted

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got: %d", cfg.Port)
	}
	if cfg.DefaultEdgePageCount < 0 {
		return nil, fmt.Errorf("DEFAULT_EDGE_PAGE_COUNT must not be negative, got: %d", cfg.DefaultEdgePageCount)
	}
	if cfg.DefaultSiblingCount < 0 {
		return nil, fmt.Errorf("DEFAULT_SIBLING_COUNT must not be negative, got: %d", cfg.DefaultSiblingCount)
	}
	if cfg.MaxTotalPages < 1 {
		return nil, fmt.Errorf("MAX_TOTAL_PAGES must be at least 1, got: %d", cfg.MaxTotalPages)
	}
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("CACHE_SIZE must not be negative, got: %d", cfg.CacheSize)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
