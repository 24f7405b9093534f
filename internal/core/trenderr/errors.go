// Package trenderr defines the typed failures surfaced by trend operations.
//
// Every failure is a *Error carrying a Kind and a structured payload. Kinds form a
// small hierarchy that errors.Is understands:
//
//	ErrTrendkit
//	├── ErrExternal
//	│   ├── ErrRateLimit
//	│   ├── ErrTimeout
//	│   ├── ErrService
//	│   └── ErrDriver
//	└── ErrValidation
package trenderr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Kind identifies the category of a failure.
type Kind string

const (
	// KindExternal is a failed call to the upstream source that fits no narrower kind.
	KindExternal Kind = "external"
	// KindRateLimit means the upstream throttled the caller.
	KindRateLimit Kind = "rate_limit"
	// KindTimeout means an upstream operation exceeded its allotted time.
	KindTimeout Kind = "timeout"
	// KindService means the upstream reported itself unavailable.
	KindService Kind = "service_unavailable"
	// KindDriver means the local browser tooling could not be started or used.
	KindDriver Kind = "driver"
	// KindValidation means a caller-supplied parameter failed a precondition.
	KindValidation Kind = "validation"
)

// External reports whether the kind describes a failed call to the upstream source.
func (k Kind) External() bool {
	switch k {
	case KindExternal, KindRateLimit, KindTimeout, KindService, KindDriver:
		return true
	}
	return false
}

// Error is the single concrete error type of the package.
type Error struct {
	Kind       Kind
	Message    string
	Suggestion string

	// StatusCode is the HTTP-equivalent status of the failure, 0 when unknown.
	StatusCode int
	// RetryAfter is the wait the upstream asked for (rate limits).
	RetryAfter time.Duration
	// Timeout is the limit that was exceeded (timeouts).
	Timeout time.Duration
	// Partial holds whatever was collected before a timeout. May be nil.
	Partial any
	// Parameter names the offending input (validation).
	Parameter string
	// ValidValues lists accepted values for Parameter when the set is closed.
	ValidValues []string

	Err error

	sentinel bool
}

// Sentinels for errors.Is. ErrTrendkit matches every *Error and ErrExternal matches
// every upstream failure.
var (
	ErrTrendkit   = &Error{sentinel: true}
	ErrExternal   = &Error{Kind: KindExternal, sentinel: true}
	ErrRateLimit  = &Error{Kind: KindRateLimit, sentinel: true}
	ErrTimeout    = &Error{Kind: KindTimeout, sentinel: true}
	ErrService    = &Error{Kind: KindService, sentinel: true}
	ErrDriver     = &Error{Kind: KindDriver, sentinel: true}
	ErrValidation = &Error{Kind: KindValidation, sentinel: true}
)

func (e *Error) Error() string {
	if e.sentinel {
		if e.Kind == "" {
			return "trendkit error"
		}
		return fmt.Sprintf("trendkit %s error", e.Kind)
	}

	var b strings.Builder
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Suggestion != "" {
		b.WriteString("\n\nSuggestion: ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches e against the kind sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.sentinel {
		return false
	}
	switch t.Kind {
	case "":
		return true
	case KindExternal:
		return e.Kind.External()
	default:
		return e.Kind == t.Kind
	}
}

// WithSuggestion replaces the suggestion and returns e.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

// External builds a generic upstream failure.
func External(message string, status int, cause error) *Error {
	return &Error{
		Kind:       KindExternal,
		Message:    message,
		StatusCode: status,
		Err:        cause,
	}
}

// RateLimit builds a throttling failure. A non-positive retryAfter falls back to one minute.
func RateLimit(retryAfter time.Duration) *Error {
	if retryAfter <= 0 {
		retryAfter = time.Minute
	}
	return &Error{
		Kind:       KindRateLimit,
		Message:    "Google Trends rate limit exceeded",
		Suggestion: fmt.Sprintf("Wait %d seconds before retrying, or enable caching to reduce API calls", int(retryAfter.Seconds())),
		StatusCode: http.StatusTooManyRequests,
		RetryAfter: retryAfter,
	}
}

// Timeout builds a deadline failure carrying any partial results.
func Timeout(timeout time.Duration, partial any, cause error) *Error {
	return &Error{
		Kind:       KindTimeout,
		Message:    "Request timed out",
		Suggestion: "Try reducing the limit parameter or increase timeout",
		StatusCode: http.StatusRequestTimeout,
		Timeout:    timeout,
		Partial:    partial,
		Err:        cause,
	}
}

// ServiceUnavailable builds an upstream unavailability failure.
func ServiceUnavailable(cause error) *Error {
	return &Error{
		Kind:       KindService,
		Message:    "Google Trends service is currently unavailable",
		Suggestion: "The service may be temporarily down. Try again later",
		StatusCode: http.StatusServiceUnavailable,
		Err:        cause,
	}
}

// Driver builds a local browser tooling failure.
func Driver(message string, cause error) *Error {
	if message == "" {
		message = "Browser driver error"
	}
	return &Error{
		Kind:    KindDriver,
		Message: message,
		Suggestion: "Ensure Chrome or Chromium is installed and runnable, or set BROWSER_BIN " +
			"to its path. Headless mode also needs the usual shared libraries present",
		Err: cause,
	}
}

// Validation builds a parameter failure. When validValues is set the suggestion lists them.
func Validation(parameter, message string, validValues []string) *Error {
	e := &Error{
		Kind:        KindValidation,
		Message:     message,
		StatusCode:  http.StatusBadRequest,
		Parameter:   parameter,
		ValidValues: validValues,
	}
	if len(validValues) > 0 {
		e.Suggestion = fmt.Sprintf("Valid values for '%s': [%s]", parameter, strings.Join(validValues, ", "))
	}
	return e
}
