// Package resilience provides the retry and circuit-breaker guards used
// around outbound redirector resolution. Resolution failures are never
// fatal to a classification run, so the guards here exist to keep a
// misbehaving shortener from stalling the whole backlog.
package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
)

// RetryConfig controls retry behavior with exponential backoff and jitter.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first
	// try. A value of 1 means no retries.
	MaxAttempts int
	// InitialBackoff is the base delay before the first retry.
	InitialBackoff time.Duration
	// Multiplier scales the backoff after each attempt.
	Multiplier float64
	// JitterFraction adds random jitter as a fraction of the delay.
	JitterFraction float64
}

// DefaultRetryConfig suits short outbound HEAD requests: one retry with
// a small backoff, well inside the resolver's overall timeout.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    2,
		InitialBackoff: 200 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.25,
	}
}

// Retry executes fn, retrying transient failures according to cfg.
// Context cancellation stops retries immediately.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultRetryConfig().MaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = DefaultRetryConfig().InitialBackoff
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = DefaultRetryConfig().Multiplier
	}

	var val T
	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		val, lastErr = fn(ctx)
		if lastErr == nil {
			return val, nil
		}
		if ctx.Err() != nil || !IsTransient(lastErr) || attempt >= cfg.MaxAttempts-1 {
			break
		}

		delay := time.Duration(float64(cfg.InitialBackoff) * math.Pow(cfg.Multiplier, float64(attempt)))
		if cfg.JitterFraction > 0 {
			jitter := (rand.Float64()*2 - 1) * cfg.JitterFraction * float64(delay)
			delay += time.Duration(jitter)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return val, lastErr
		case <-timer.C:
		}
	}
	return val, lastErr
}

// IsTransient reports whether err looks like a temporary network-level
// failure worth one more attempt: timeouts, resets, DNS hiccups.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"no such host",
		"temporary failure in name resolution",
		"tls handshake timeout",
		"i/o timeout",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// ErrBreakerOpen is returned when a call is rejected because the
// breaker has tripped; callers fall straight through to the naive
// hostname parse.
var ErrBreakerOpen = eris.New("resilience: breaker open")

// Breaker is a minimal circuit breaker: after Threshold consecutive
// failures it rejects calls for Cooldown, then lets one probe through.
type Breaker struct {
	// Threshold is the consecutive-failure count that trips the breaker.
	Threshold int
	// Cooldown is how long calls are rejected after tripping.
	Cooldown time.Duration

	mu       sync.Mutex
	failures int
	openedAt time.Time
	now      func() time.Time
}

// NewBreaker creates a breaker with the given threshold and cooldown.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Breaker{Threshold: threshold, Cooldown: cooldown, now: time.Now}
}

// Allow reports whether a call may proceed. While open, only the first
// call after the cooldown elapses is admitted as a probe.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failures < b.Threshold {
		return true
	}
	if b.now().Sub(b.openedAt) >= b.Cooldown {
		// Probe: count it as the last failure so a second caller
		// before the probe resolves is still rejected.
		b.openedAt = b.now()
		return true
	}
	return false
}

// Record feeds a call outcome back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures == b.Threshold {
		b.openedAt = b.now()
	}
}
