package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/v1/window", "/api/v1/window"},
		{"/api/v1/window/", "/api/v1/window"},
		{"/health", "/health"},
		{"/api/v1/window/123", "other"},
		{"/wp-admin", "other"},
	}

	for _, tt := range tests {
		if got := routeLabel(tt.in); got != tt.want {
			t.Errorf("routeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMiddleware_CountsRequests(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "/health", "418")
	before := testutil.ToFloat64(counter)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("expected counter to increase by 1, got %v", got)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", rec.Code)
	}
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/window", "200")
	before := testutil.ToFloat64(counter)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/window", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("expected a 200 to be recorded, counter moved by %v", got)
	}
}

func TestMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "other", "200")
	before := testutil.ToFloat64(counter)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/metrics", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(counter) - before; got != 0 {
		t.Errorf("expected /metrics to be skipped, counter moved by %v", got)
	}
}

func TestObserveWindow(t *testing.T) {
	hits := WindowCache.WithLabelValues("hit")
	misses := WindowCache.WithLabelValues("miss")
	computed := WindowsComputed

	hitsBefore := testutil.ToFloat64(hits)
	missesBefore := testutil.ToFloat64(misses)
	computedBefore := testutil.ToFloat64(computed)

	ObserveWindow(10, true)
	ObserveWindow(10, false)

	if got := testutil.ToFloat64(hits) - hitsBefore; got != 1 {
		t.Errorf("expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(misses) - missesBefore; got != 1 {
		t.Errorf("expected 1 cache miss, got %v", got)
	}
	if got := testutil.ToFloat64(computed) - computedBefore; got != 2 {
		t.Errorf("expected 2 computed windows, got %v", got)
	}
}
