package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DukeRupert/pagewindow/internal/domain"
	"github.com/DukeRupert/pagewindow/internal/metrics"
	"github.com/DukeRupert/pagewindow/internal/pagination"
)

// WindowConfig holds the defaults and limits applied to window requests.
type WindowConfig struct {
	DefaultEdgePageCount int
	DefaultSiblingCount  int
	MaxTotalPages        int
}

// WindowHandler serves page window computations over HTTP.
type WindowHandler struct {
	memo   *pagination.Memo
	cfg    WindowConfig
	logger *slog.Logger
}

// NewWindowHandler creates a window handler. memo may be nil to disable
// caching. A non-positive MaxTotalPages means pagination.DefaultMaxTotalPages.
func NewWindowHandler(memo *pagination.Memo, cfg WindowConfig, logger *slog.Logger) *WindowHandler {
	if cfg.MaxTotalPages <= 0 {
		cfg.MaxTotalPages = pagination.DefaultMaxTotalPages
	}
	return &WindowHandler{
		memo:   memo,
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterRoutes registers the window routes on mux, wrapping each handler
// with mw.
func (h *WindowHandler) RegisterRoutes(mux *http.ServeMux, mw func(http.Handler) http.Handler) {
	mux.Handle("GET /api/v1/window", mw(http.HandlerFunc(h.Window)))
}

// WindowResponse is the JSON body returned by GET /api/v1/window.
// PreviousPage and NextPage are the targets of the previous/next controls;
// they equal the current page when there is nowhere to go.
type WindowResponse struct {
	Window       pagination.Window `json:"window"`
	Items        []pagination.Item `json:"items"`
	Sequence     []int             `json:"sequence"`
	PreviousPage int               `json:"previous_page"`
	NextPage     int               `json:"next_page"`
	Pagination   *pagination.Data  `json:"pagination,omitempty"`
}

// Window handles GET /api/v1/window.
//
// Query parameters: current, total, edge, siblings. Instead of total, a
// caller may pass items and per_page to have the page count derived.
func (h *WindowHandler) Window(w http.ResponseWriter, r *http.Request) {
	params, data, err := h.parseParams(r.URL.Query())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	window, hit := h.memo.Compute(params)
	metrics.ObserveWindow(window.TotalPages, hit)

	h.logger.Debug("window computed",
		"current_page", window.CurrentPage,
		"total_pages", window.TotalPages,
		"cache_hit", hit,
		"memo_size", h.memo.Len(),
	)

	resp := WindowResponse{
		Window:       window,
		Items:        window.Items(),
		Sequence:     window.Sequence(),
		PreviousPage: window.PreviousPage(),
		NextPage:     window.NextPage(),
		Pagination:   data,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("failed to write window response", "error", err)
	}
}

// parseParams reads the window inputs from q. Negative values are passed
// through; the calculator normalizes them.
func (h *WindowHandler) parseParams(q url.Values) (pagination.Params, *pagination.Data, error) {
	const op = "window.parse"
	ve := domain.NewValidationError(op)

	p := pagination.Params{
		CurrentPage:             intParam(q, "current", 1, ve),
		EdgePageCount:           intParam(q, "edge", h.cfg.DefaultEdgePageCount, ve),
		MiddlePagesSiblingCount: intParam(q, "siblings", h.cfg.DefaultSiblingCount, ve),
	}

	var data *pagination.Data
	switch {
	case q.Has("total"):
		p.TotalPages = intParam(q, "total", 0, ve)
	case q.Has("items"):
		items := intParam(q, "items", 0, ve)
		perPage := intParam(q, "per_page", pagination.DefaultPerPage, ve)
		p.TotalPages = pagination.TotalPagesFor(items, perPage)
		if ve.Err() == nil {
			d := pagination.NewData(p.CurrentPage, items, perPage)
			data = &d
		}
	default:
		ve.Add("total", "total or items is required")
	}

	if err := ve.Err(); err != nil {
		return pagination.Params{}, nil, err
	}

	if p.TotalPages > h.cfg.MaxTotalPages {
		return pagination.Params{}, nil, domain.TooLarge(op, p.TotalPages, h.cfg.MaxTotalPages)
	}

	return p, data, nil
}

// intParam parses q[name] as an integer, returning fallback when absent and
// recording a field error when malformed.
func intParam(q url.Values, name string, fallback int, ve *domain.ValidationError) int {
	raw := q.Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		ve.Add(name, "must be an integer")
		return fallback
	}
	return n
}
