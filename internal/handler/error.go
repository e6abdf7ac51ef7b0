package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DukeRupert/pagewindow/internal/domain"
	"github.com/DukeRupert/pagewindow/internal/middleware"
)

// statusByCode lists the codes handlers can produce. Anything else is a 500.
var statusByCode = map[string]int{
	domain.EINVALID:  http.StatusBadRequest,
	domain.ENOTFOUND: http.StatusNotFound,
	domain.ETOOLARGE: http.StatusRequestEntityTooLarge,
}

func statusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// JSONError is the body of every API error response.
type JSONError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields,omitempty"`
	} `json:"error"`
}

// ErrorResponse reports err to the client. API requests get a JSONError
// body, which lists per-field problems for validation errors; other
// requests get plain text. Ops and wrapped causes are logged, never sent.
func ErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code, message, op := domain.Describe(err)
	status := statusFor(code)

	attrs := []any{
		"error", err.Error(),
		"code", code,
		"op", op,
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"request_id", middleware.GetRequestID(r.Context()),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	if !wantsJSON(r) {
		http.Error(w, message, status)
		return
	}

	var body JSONError
	body.Error.Code = code
	body.Error.Message = message
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body.Error.Fields = ve.Fields
	}
	_ = writeJSON(w, status, body)
}

// NotFoundResponse answers requests no route matched.
func NotFoundResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	ErrorResponse(w, r, logger, domain.NotFound("route"))
}

// wantsJSON is true for API paths and for clients that ask for JSON.
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
