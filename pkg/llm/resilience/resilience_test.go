package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anurag02012004/ai-resume-project/pkg/llm/resilience"
)

func fastRetryConfig(attempts int) *resilience.RetryConfig {
	return &resilience.RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		RetryableErrors: func(err error) bool {
			return true
		},
	}
}

func TestRetryWithBackoffSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := resilience.RetryWithBackoff(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoffStopsAfterSuccess(t *testing.T) {
	calls := 0
	err := resilience.RetryWithBackoff(context.Background(), fastRetryConfig(3), func() error {
		calls++
		if calls < 2 {
			return errors.New("transient failure")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoffExhaustsAttempts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := resilience.RetryWithBackoff(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return boom
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "max retry attempts (3) reached")
}

func TestRetryWithBackoffNonRetryableError(t *testing.T) {
	cfg := fastRetryConfig(3)
	cfg.RetryableErrors = func(err error) bool { return false }

	calls := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return errors.New("permanent failure")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoffRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := resilience.RetryWithBackoff(ctx, fastRetryConfig(5), func() error {
		calls++
		cancel()
		return errors.New("transient failure")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := resilience.DefaultRetryConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 4*time.Second, cfg.InitialDelay)
	assert.Equal(t, 10*time.Second, cfg.MaxDelay)
	assert.Equal(t, 2.0, cfg.Multiplier)
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	cb := resilience.NewCircuitBreaker(&resilience.CircuitBreakerConfig{
		MaxFailures:      2,
		Timeout:          time.Minute,
		HalfOpenMaxCalls: 1,
	})

	boom := errors.New("boom")
	require.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	require.ErrorIs(t, cb.Execute(func() error { return boom }), boom)

	assert.Equal(t, resilience.StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return nil }), resilience.ErrCircuitBreakerOpen)

	cb.Reset()
	assert.Equal(t, resilience.StateClosed, cb.State())
	assert.NoError(t, cb.Execute(func() error { return nil }))
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, resilience.IsRetryableError(nil))
	assert.False(t, resilience.IsRetryableError(context.Canceled))
	assert.False(t, resilience.IsRetryableError(resilience.ErrCircuitBreakerOpen))
	assert.True(t, resilience.IsRetryableError(errors.New("server error, status code 503")))
	assert.True(t, resilience.IsRetryableError(errors.New("request failed with status code 429: rate limited")))
	assert.False(t, resilience.IsRetryableError(errors.New("request failed with status code 400: bad request")))
}
