package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/DukeRupert/pagewindow/internal/domain"
	"github.com/DukeRupert/pagewindow/internal/metrics"
)

// =============================================================================
// Rate Limiter
// =============================================================================

// RateLimiter hands out one token bucket per client key. Buckets that stay
// idle longer than the idle timeout are dropped.
type RateLimiter struct {
	rps    rate.Limit
	burst  int
	idle   time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*limiterEntry

	stop     chan struct{}
	stopOnce sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter allowing rps requests per second per
// key with bursts of up to burst requests. Call Stop to end the cleanup
// goroutine.
func NewRateLimiter(rps float64, burst int, idle time.Duration, logger *slog.Logger) *RateLimiter {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	if idle <= 0 {
		idle = 10 * time.Minute
	}

	rl := &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    idle,
		logger:  logger,
		entries: make(map[string]*limiterEntry),
		stop:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) get(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// reserve takes a token for key at now. When none is available it returns
// false and how long until one will be.
func (rl *RateLimiter) reserve(key string, now time.Time) (bool, time.Duration) {
	r := rl.get(key, now).ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Len returns the number of tracked keys.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}

// Stop ends the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup periodically removes idle buckets.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.idle)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			if n := rl.evictIdle(now); n > 0 {
				rl.logger.Debug("rate limiter evicted idle clients", "count", n, "tracked", rl.Len())
			}
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	for key, entry := range rl.entries {
		if now.Sub(entry.lastSeen) > rl.idle {
			delete(rl.entries, key)
			evicted++
		}
	}
	return evicted
}

// =============================================================================
// Rate Limit Middleware
// =============================================================================

// RateLimitMiddleware wraps a rate limiter for use as HTTP middleware.
type RateLimitMiddleware struct {
	limiter  *RateLimiter
	clientIP ClientIP
	logger   *slog.Logger
}

// NewRateLimitMiddleware creates a new rate limit middleware keyed on the
// client address resolved by clientIP.
func NewRateLimitMiddleware(limiter *RateLimiter, clientIP ClientIP, logger *slog.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter:  limiter,
		clientIP: clientIP,
		logger:   logger,
	}
}

// Limit returns middleware that rate limits requests per client IP.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := m.clientIP.Of(r)

		ok, wait := m.limiter.reserve(clientIP, time.Now())
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		metrics.RateLimitedTotal.Inc()
		m.logger.Warn("rate limit exceeded",
			"ip", clientIP,
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", GetRequestID(r.Context()),
		)

		retryAfter := int(math.Ceil(wait.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

		err := domain.RateLimited("api")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"code":    err.Code,
				"message": err.Message,
			},
		})
	})
}
