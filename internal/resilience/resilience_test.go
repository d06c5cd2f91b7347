package resilience

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, Multiplier: 1.5}
}

func TestRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	val, err := Retry(context.Background(), fastRetry(), func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 1, calls)
}

func TestRetry_RetriesTransient(t *testing.T) {
	calls := 0
	val, err := Retry(context.Background(), fastRetry(), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", timeoutErr{}
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(), func(context.Context) (string, error) {
		calls++
		return "", eris.New("bad request")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(), func(context.Context) (string, error) {
		calls++
		return "", timeoutErr{}
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(ctx, fastRetry(), func(context.Context) (string, error) {
		calls++
		cancel()
		return "", timeoutErr{}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(eris.New("parse failure")))
	assert.True(t, IsTransient(timeoutErr{}))
	assert.True(t, IsTransient(eris.New("dial tcp: lookup x: no such host")))
}

func TestBreaker_TripsAfterThreshold(t *testing.T) {
	b := NewBreaker(3, time.Hour)
	fail := eris.New("down")

	for i := 0; i < 3; i++ {
		require.True(t, b.Allow())
		b.Record(fail)
	}
	assert.False(t, b.Allow())
}

func TestBreaker_SuccessResets(t *testing.T) {
	b := NewBreaker(3, time.Hour)
	fail := eris.New("down")

	b.Record(fail)
	b.Record(fail)
	b.Record(nil)
	b.Record(fail)
	b.Record(fail)
	assert.True(t, b.Allow())
}

func TestBreaker_ProbeAfterCooldown(t *testing.T) {
	b := NewBreaker(2, 10*time.Millisecond)
	fail := eris.New("down")
	b.Record(fail)
	b.Record(fail)
	assert.False(t, b.Allow())

	time.Sleep(15 * time.Millisecond)
	assert.True(t, b.Allow(), "probe admitted after cooldown")
	assert.False(t, b.Allow(), "second caller still rejected")

	b.Record(nil)
	assert.True(t, b.Allow())
}
