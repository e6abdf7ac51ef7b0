package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pagewindow"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)
)

// Page window metrics
var (
	WindowsComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_computed_total",
			Help:      "Total number of page windows served",
		},
	)

	WindowTotalPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "window_total_pages",
			Help:      "Distribution of total page counts in computed windows",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	WindowCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "window_cache_total",
			Help:      "Page window memo lookups by result",
		},
		[]string{"result"}, // "hit" or "miss"
	)
)

// ObserveWindow records one served window and whether the memo had it.
func ObserveWindow(totalPages int, cacheHit bool) {
	WindowsComputed.Inc()
	WindowTotalPages.Observe(float64(totalPages))
	if cacheHit {
		WindowCache.WithLabelValues("hit").Inc()
	} else {
		WindowCache.WithLabelValues("miss").Inc()
	}
}
