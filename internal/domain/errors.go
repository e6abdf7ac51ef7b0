// Package domain defines the errors the service reports to its clients.
package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Error codes. Each one maps to a single HTTP status.
const (
	EINVALID   = "invalid"
	ENOTFOUND  = "not_found"
	ETOOLARGE  = "too_large"
	ERATELIMIT = "rate_limit"
	EINTERNAL  = "internal"
)

const internalMessage = "An internal error occurred. Please try again later."

// Error is a failure with a client-facing code and message. Op names the
// failing operation and only ever reaches the logs.
type Error struct {
	Code    string
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a route that does not exist.
func NotFound(op string) *Error {
	return &Error{Code: ENOTFOUND, Op: op, Message: "The requested resource was not found"}
}

// TooLarge reports a page count above the configured limit.
func TooLarge(op string, pages, limit int) *Error {
	return &Error{
		Code:    ETOOLARGE,
		Op:      op,
		Message: fmt.Sprintf("%d pages exceeds the limit of %d", pages, limit),
	}
}

// RateLimited reports a client that has spent its request budget.
func RateLimited(op string) *Error {
	return &Error{Code: ERATELIMIT, Op: op, Message: "Too many requests. Please try again later."}
}

// Describe returns the code and message a client may see for err, plus the
// op to log with it. Anything that is not one of this package's errors is
// reported as internal, and so are the messages of internal errors.
func Describe(err error) (code, message, op string) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return EINVALID, "Validation failed", ve.Op
	}

	var e *Error
	if !errors.As(err, &e) {
		return EINTERNAL, internalMessage, ""
	}
	if e.Code == EINTERNAL {
		return EINTERNAL, internalMessage, e.Op
	}
	return e.Code, e.Message, e.Op
}

// ValidationError collects one problem per input field.
type ValidationError struct {
	Op     string
	Fields map[string]string
}

func NewValidationError(op string) *ValidationError {
	return &ValidationError{Op: op, Fields: make(map[string]string)}
}

func (e *ValidationError) Error() string {
	fields := slices.Sorted(maps.Keys(e.Fields))
	return fmt.Sprintf("%s: invalid %s", e.Op, strings.Join(fields, ", "))
}

// Add records a problem with field. The first message per field is kept.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Err returns e when a field problem was recorded and nil otherwise.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
