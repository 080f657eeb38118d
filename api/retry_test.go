package api

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_StopsOnPermanentError(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := Retry(context.Background(), RetryConfig{MaxAttempts: 5, BaseDelay: time.Millisecond}, func() (int, error) {
		calls++
		return 0, errors.New("bad request")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Retry(context.Background(), RetryConfig{MaxAttempts: 4, BaseDelay: time.Millisecond}, func() (string, error) {
		calls++
		if calls < 3 {
			return "", WrapRetryable(errors.New("flaky"))
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestRetry_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Retry(ctx, RetryConfig{MaxAttempts: 3, BaseDelay: time.Second}, func() (int, error) {
		return 0, WrapRetryable(errors.New("flaky"))
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	for attempt := 0; attempt < 6; attempt++ {
		d := backoff(attempt, 100*time.Millisecond, 400*time.Millisecond)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.Less(t, d, 400*time.Millisecond)
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3*time.Second, ParseRetryAfter("3"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter(""))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}

func TestRateLimiter_PerHost(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0.001, 1)
	assert.True(t, rl.Allow("a.example.org"))
	assert.False(t, rl.Allow("a.example.org"))
	assert.True(t, rl.Allow("b.example.org"))
}

func TestRedact(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://api.covalenthq.com/v1/1/address/0xabc/balances_v2/?key=secret")
	require.NoError(t, err)
	assert.NotContains(t, redact(u), "secret")
	assert.Contains(t, redact(u), "key=REDACTED")
}
