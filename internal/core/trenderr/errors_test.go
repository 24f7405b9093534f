package trenderr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHierarchy verifies that kinds nest under the external and base sentinels.
func TestHierarchy(t *testing.T) {
	external := []*Error{
		RateLimit(time.Second),
		Timeout(time.Second, nil, nil),
		ServiceUnavailable(nil),
		Driver("", nil),
		External("boom", 500, nil),
	}

	for _, err := range external {
		t.Run(string(err.Kind), func(t *testing.T) {
			assert.ErrorIs(t, err, ErrTrendkit)
			assert.ErrorIs(t, err, ErrExternal)
			assert.NotErrorIs(t, err, ErrValidation)
		})
	}

	v := Validation("limit", "limit must be positive", nil)
	assert.ErrorIs(t, v, ErrTrendkit)
	assert.ErrorIs(t, v, ErrValidation)
	assert.NotErrorIs(t, v, ErrExternal)
}

// TestIs_SpecificKinds verifies that sibling kinds do not match each other.
func TestIs_SpecificKinds(t *testing.T) {
	err := RateLimit(time.Second)

	assert.ErrorIs(t, err, ErrRateLimit)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrService)
	assert.NotErrorIs(t, err, ErrDriver)
}

// TestIs_ThroughWrapping verifies that classification survives fmt wrapping.
func TestIs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("service: related failed: %w", ServiceUnavailable(nil))

	assert.ErrorIs(t, err, ErrService)
	assert.ErrorIs(t, err, ErrExternal)
	assert.Equal(t, KindService, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

// TestError_EmbedsSuggestion verifies the printed form is self-explanatory.
func TestError_EmbedsSuggestion(t *testing.T) {
	err := RateLimit(30 * time.Second)

	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Contains(t, err.Error(), "Suggestion: Wait 30 seconds")
	assert.Equal(t, http.StatusTooManyRequests, err.StatusCode)
	assert.Equal(t, 30*time.Second, err.RetryAfter)

	plain := &Error{Kind: KindExternal, Message: "no hint"}
	assert.Equal(t, "no hint", plain.Error())
}

// TestRateLimit_DefaultWait verifies the fallback retry delay.
func TestRateLimit_DefaultWait(t *testing.T) {
	assert.Equal(t, time.Minute, RateLimit(0).RetryAfter)
}

// TestTimeout_CarriesPartialResults verifies the timeout payload.
func TestTimeout_CarriesPartialResults(t *testing.T) {
	partial := []string{"a", "b"}
	err := Timeout(20*time.Second, partial, context.DeadlineExceeded)

	assert.Equal(t, 20*time.Second, err.Timeout)
	assert.Equal(t, partial, err.Partial)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}

// TestValidation_SuggestsValidValues verifies that closed value sets are listed.
func TestValidation_SuggestsValidValues(t *testing.T) {
	err := Validation("hours", "Invalid hours: 12", []string{"4", "24", "48", "168"})

	assert.Equal(t, "hours", err.Parameter)
	assert.Equal(t, []string{"4", "24", "48", "168"}, err.ValidValues)
	assert.Contains(t, err.Error(), "Valid values for 'hours': [4, 24, 48, 168]")

	open := Validation("limit", "limit must be positive", nil)
	assert.Empty(t, open.Suggestion)
}

// TestDriver_DefaultMessage verifies the driver error defaults.
func TestDriver_DefaultMessage(t *testing.T) {
	cause := errors.New("exec: chromium not found")
	err := Driver("", cause)

	assert.Contains(t, err.Error(), "Browser driver error")
	assert.Contains(t, err.Error(), "chromium not found")
	assert.NotEmpty(t, err.Suggestion)
	assert.ErrorIs(t, err, cause)
}

// TestWithSuggestion verifies suggestion override.
func TestWithSuggestion(t *testing.T) {
	err := ServiceUnavailable(nil).WithSuggestion("check status page")
	assert.Contains(t, err.Error(), "Suggestion: check status page")
}

// TestFromResponse verifies HTTP status classification.
func TestFromResponse(t *testing.T) {
	assert.NoError(t, FromResponse(http.StatusOK, http.Header{}))

	h := http.Header{}
	h.Set("Retry-After", "12")
	err := FromResponse(http.StatusTooManyRequests, h)
	require.ErrorIs(t, err, ErrRateLimit)
	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 12*time.Second, te.RetryAfter)

	assert.ErrorIs(t, FromResponse(http.StatusServiceUnavailable, http.Header{}), ErrService)
	assert.ErrorIs(t, FromResponse(http.StatusBadGateway, http.Header{}), ErrService)
	assert.ErrorIs(t, FromResponse(http.StatusGatewayTimeout, http.Header{}), ErrTimeout)

	other := FromResponse(http.StatusForbidden, http.Header{})
	assert.Equal(t, KindExternal, KindOf(other))
	require.ErrorAs(t, other, &te)
	assert.Equal(t, http.StatusForbidden, te.StatusCode)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

// TestFromTransport verifies transport failure classification.
func TestFromTransport(t *testing.T) {
	assert.NoError(t, FromTransport(nil, time.Second))

	err := FromTransport(fmt.Errorf("get: %w", context.DeadlineExceeded), 15*time.Second)
	require.ErrorIs(t, err, ErrTimeout)
	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 15*time.Second, te.Timeout)

	assert.ErrorIs(t, FromTransport(timeoutErr{}, time.Second), ErrTimeout)
	assert.Equal(t, KindExternal, KindOf(FromTransport(errors.New("connection refused"), time.Second)))

	typed := RateLimit(time.Second)
	assert.Same(t, typed, FromTransport(typed, time.Second))
}
