package trenderr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// FromResponse maps a non-2xx upstream status to a typed failure.
// Returns nil for 2xx statuses.
func FromResponse(status int, header http.Header) error {
	if status >= 200 && status < 300 {
		return nil
	}

	switch status {
	case http.StatusTooManyRequests:
		return RateLimit(parseRetryAfter(header.Get("Retry-After")))
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return ServiceUnavailable(fmt.Errorf("upstream returned status %d", status))
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return Timeout(0, nil, fmt.Errorf("upstream returned status %d", status))
	default:
		return External(fmt.Sprintf("Google Trends returned status %d", status), status, nil)
	}
}

// FromTransport maps a failed round trip to a typed failure. Deadline and network
// timeouts become Timeout errors carrying the configured limit.
func FromTransport(err error, timeout time.Duration) error {
	if err == nil {
		return nil
	}

	var te *Error
	if errors.As(err, &te) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout(timeout, nil, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout(timeout, nil, err)
	}

	return External("failed to reach Google Trends", 0, err)
}

// parseRetryAfter understands both the delta-seconds and HTTP-date forms.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
