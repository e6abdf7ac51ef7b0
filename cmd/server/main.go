package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DukeRupert/pagewindow/internal"
	"github.com/DukeRupert/pagewindow/internal/handler"
	"github.com/DukeRupert/pagewindow/internal/metrics"
	"github.com/DukeRupert/pagewindow/internal/middleware"
	"github.com/DukeRupert/pagewindow/internal/pagination"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	memo := pagination.NewMemo(cfg.CacheSize)
	logger.Info("Window memo ready", "size", cfg.CacheSize)
	if len(cfg.TrustedProxies) == 0 {
		logger.Info("No trusted proxies configured, forwarding headers are ignored")
	}

	// Initialize middleware
	isSecure := cfg.Env != "development"
	clientIP := middleware.NewClientIP(cfg.TrustedProxies)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger, clientIP)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	metricsAuth := middleware.NewBasicAuth("metrics", cfg.MetricsUsername, cfg.MetricsPassword, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.RateLimitIdle, logger)
	defer limiter.Stop()
	rateLimitMw := middleware.NewRateLimitMiddleware(limiter, clientIP, logger)

	// Initialize handlers
	windowHandler := handler.NewWindowHandler(memo, handler.WindowConfig{
		DefaultEdgePageCount: cfg.DefaultEdgePageCount,
		DefaultSiblingCount:  cfg.DefaultSiblingCount,
		MaxTotalPages:        cfg.MaxTotalPages,
	}, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	if !metricsAuth.Enabled() {
		logger.Warn("METRICS_USERNAME/METRICS_PASSWORD not set, /metrics is unprotected")
	}
	mux.Handle("GET /metrics", metricsAuth.Wrap(promhttp.Handler()))

	// API routes are rate limited per client
	windowHandler.RegisterRoutes(mux, rateLimitMw.Limit)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handler.NotFoundResponse(w, r, logger)
	})

	// Outermost first: every request gets an ID before it is measured and logged
	global := middleware.Stack(
		middleware.RequestID,
		metrics.Middleware,
		loggingMw.Handler,
		securityMw.Handler,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: global(mux),
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
