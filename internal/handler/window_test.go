package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/pagewindow/internal/pagination"
)

func newTestWindowHandler() *WindowHandler {
	return NewWindowHandler(
		pagination.NewMemo(16),
		WindowConfig{DefaultEdgePageCount: 1, DefaultSiblingCount: 2, MaxTotalPages: 1000},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func serveWindow(t *testing.T, h *WindowHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, func(next http.Handler) http.Handler { return next })

	req := httptest.NewRequest("GET", "/api/v1/window"+query, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeWindow(t *testing.T, rec *httptest.ResponseRecorder) WindowResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp WindowResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) JSONError {
	t.Helper()
	var body JSONError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWindow_ComputesLayout(t *testing.T) {
	rec := serveWindow(t, newTestWindowHandler(), "?current=5&total=10&edge=1&siblings=2")
	resp := decodeWindow(t, rec)

	assert.Equal(t, []int{3, 4, 5, 6, 7}, resp.Window.MiddlePages)
	assert.Equal(t, []int{1}, resp.Window.PreviousPages)
	assert.Equal(t, []int{10}, resp.Window.NextPages)
	assert.True(t, resp.Window.IsPreviousTruncable)
	assert.True(t, resp.Window.IsNextTruncable)
	assert.True(t, resp.Window.HasPreviousPage)
	assert.True(t, resp.Window.HasNextPage)
	assert.Equal(t, []int{1, pagination.Ellipsis, 3, 4, 5, 6, 7, pagination.Ellipsis, 10}, resp.Sequence)
	assert.Len(t, resp.Items, 9)
	assert.Nil(t, resp.Pagination)
}

func TestWindow_AppliesDefaults(t *testing.T) {
	h := newTestWindowHandler()

	withDefaults := decodeWindow(t, serveWindow(t, h, "?current=6&total=10"))
	explicit := decodeWindow(t, serveWindow(t, h, "?current=6&total=10&edge=1&siblings=2"))

	assert.Equal(t, explicit, withDefaults)
	assert.Equal(t, []int{4, 5, 6, 7, 8}, withDefaults.Window.MiddlePages)
}

func TestWindow_CurrentDefaultsToFirstPage(t *testing.T) {
	resp := decodeWindow(t, serveWindow(t, newTestWindowHandler(), "?total=5"))

	assert.Equal(t, 1, resp.Window.CurrentPage)
	assert.False(t, resp.Window.HasPreviousPage)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, resp.Window.MiddlePages)
}

func TestWindow_NormalizesOutOfRangeInput(t *testing.T) {
	resp := decodeWindow(t, serveWindow(t, newTestWindowHandler(), "?current=99&total=10&edge=-1&siblings=-4"))

	assert.Equal(t, 10, resp.Window.CurrentPage)
	assert.Equal(t, []int{10}, resp.Window.MiddlePages)
	assert.Empty(t, resp.Window.PreviousPages)
	assert.Empty(t, resp.Window.NextPages)
}

func TestWindow_ZeroPages(t *testing.T) {
	resp := decodeWindow(t, serveWindow(t, newTestWindowHandler(), "?current=1&total=0"))

	assert.Empty(t, resp.Window.Pages)
	assert.Empty(t, resp.Window.MiddlePages)
	assert.Empty(t, resp.Items)
	assert.False(t, resp.Window.HasPreviousPage)
	assert.False(t, resp.Window.HasNextPage)
}

func TestWindow_FromItemCount(t *testing.T) {
	resp := decodeWindow(t, serveWindow(t, newTestWindowHandler(), "?current=3&items=95&per_page=10"))

	assert.Equal(t, 10, resp.Window.TotalPages)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 95, resp.Pagination.Total)
	assert.Equal(t, 10, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.PrevPage)
	assert.Equal(t, 4, resp.Pagination.NextPage)
}

func TestWindow_RejectsNonIntegers(t *testing.T) {
	rec := serveWindow(t, newTestWindowHandler(), "?current=five&total=10.5&edge=1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "invalid", body.Error.Code)
	assert.Equal(t, "must be an integer", body.Error.Fields["current"])
	assert.Equal(t, "must be an integer", body.Error.Fields["total"])
	assert.NotContains(t, body.Error.Fields, "edge")
}

func TestWindow_RequiresTotal(t *testing.T) {
	rec := serveWindow(t, newTestWindowHandler(), "?current=1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Fields, "total")
}

func TestWindow_RejectsTooManyPages(t *testing.T) {
	rec := serveWindow(t, newTestWindowHandler(), "?current=1&total=1001")

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "too_large", decodeError(t, rec).Error.Code)
}

func TestWindow_RejectsTooManyDerivedPages(t *testing.T) {
	rec := serveWindow(t, newTestWindowHandler(), "?items=5000&per_page=1")

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestWindow_RejectsItemCountBeyondIntRange(t *testing.T) {
	rec := serveWindow(t, newTestWindowHandler(), "?current=3&items=9223372036854775807&per_page=10")

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "too_large", decodeError(t, rec).Error.Code)
}

func TestWindow_NavigationTargets(t *testing.T) {
	h := newTestWindowHandler()

	tests := []struct {
		query    string
		wantPrev int
		wantNext int
	}{
		{"?current=5&total=10", 4, 6},
		{"?current=1&total=10", 1, 2},
		{"?current=10&total=10", 9, 10},
		{"?current=1&total=0", 0, 0},
	}

	for _, tt := range tests {
		resp := decodeWindow(t, serveWindow(t, h, tt.query))
		assert.Equal(t, tt.wantPrev, resp.PreviousPage, tt.query)
		assert.Equal(t, tt.wantNext, resp.NextPage, tt.query)
	}
}

func TestWindow_WithoutMemo(t *testing.T) {
	h := NewWindowHandler(nil, WindowConfig{DefaultEdgePageCount: 1, DefaultSiblingCount: 1}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp := decodeWindow(t, serveWindow(t, h, "?current=5&total=10"))
	assert.Equal(t, []int{4, 5, 6}, resp.Window.MiddlePages)
}

func TestWindow_UnsetCapFallsBackToDefault(t *testing.T) {
	h := NewWindowHandler(nil, WindowConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := serveWindow(t, h, "?total=9223372036854775807")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	resp := decodeWindow(t, serveWindow(t, h, "?current=2&total=100000"))
	assert.Equal(t, 100000, resp.Window.TotalPages)
}

func TestWindow_MethodNotAllowed(t *testing.T) {
	mux := http.NewServeMux()
	newTestWindowHandler().RegisterRoutes(mux, func(next http.Handler) http.Handler { return next })

	req := httptest.NewRequest("POST", "/api/v1/window?total=10", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
