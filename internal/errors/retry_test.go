package errors

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		if calls < 3 {
			return BackendError("transient", nil)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return BackendError("still down", nil)
	})
	assert.Equal(t, 3, calls)
	assert.Equal(t, ErrCodeBackendUnavailable, GetCode(err))
}

func TestRetry_NonRetryableAbortsImmediately(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(5), func() error {
		calls++
		return ValidationError("bad input", nil)
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, ErrCodeInvalidInput, GetCode(err))
}

func TestRetry_PlainErrorsAreRetried(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(2), func() error {
		calls++
		return stderrors.New("plain failure")
	})
	assert.Equal(t, 2, calls)
	assert.EqualError(t, err, "plain failure")
}

func TestRetry_ContextCancellationStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, fastRetryConfig(5), func() error {
		calls++
		return BackendError("transient", nil)
	})
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), RetryConfig{}, func() error {
		calls++
		return stderrors.New("fail")
	})
	assert.Equal(t, 1, calls)
	assert.Error(t, err)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)
}
