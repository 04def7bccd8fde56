package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts:     maxAttempts,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffFactor:   2.0,
		MaxTotalTimeout: time.Second,
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(5), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	cause := errors.New("down")
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return cause
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, calls)
}

func TestDoWithLog_InvokesCallbackBetweenAttempts(t *testing.T) {
	logged := 0
	err := DoWithLog(context.Background(), fastConfig(3), "PostgreSQL", func() error {
		return errors.New("refused")
	}, func(attempt int, err error, nextDelay time.Duration) {
		logged++
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "PostgreSQL")
	assert.Equal(t, 2, logged)
}

func TestDo_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, fastConfig(3), func() error {
		return errors.New("never retried")
	})

	assert.Error(t, err)
}
