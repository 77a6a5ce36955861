// Package retry runs operations again after transient failures, with
// exponential backoff and jitter. The caller classifies each failure by
// wrapping it with Retryable or Permanent; unclassified errors stop the loop.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERROR CLASSIFICATION
// ══════════════════════════════════════════════════════════════════════════════

type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Retryable marks an error as transient. The retrier will try again.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// Permanent marks an error as final. The retrier stops immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsRetryable reports whether the error was marked with Retryable.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// IsPermanent reports whether the error was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// unmark strips the classification wrapper so callers never see it.
func unmark(err error) error {
	var re *retryableError
	if errors.As(err, &re) {
		return re.err
	}
	var pe *permanentError
	if errors.As(err, &pe) {
		return pe.err
	}
	return err
}

// ══════════════════════════════════════════════════════════════════════════════
// RETRIER
// ══════════════════════════════════════════════════════════════════════════════

// Retrier executes operations with bounded retries and exponential backoff.
type Retrier struct {
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	jitter       float64
	onRetry      func(attempt int, err error, delay time.Duration)
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithMaxAttempts sets the total number of attempts, first call included.
func WithMaxAttempts(n int) Option {
	return func(r *Retrier) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) Option {
	return func(r *Retrier) {
		if d > 0 {
			r.initialDelay = d
		}
	}
}

// WithMaxDelay caps the backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(r *Retrier) {
		if d > 0 {
			r.maxDelay = d
		}
	}
}

// WithMultiplier sets the backoff growth factor.
func WithMultiplier(m float64) Option {
	return func(r *Retrier) {
		if m >= 1.0 {
			r.multiplier = m
		}
	}
}

// WithJitter sets the jitter fraction applied to each delay (0 to 1).
func WithJitter(j float64) Option {
	return func(r *Retrier) {
		if j >= 0 && j <= 1.0 {
			r.jitter = j
		}
	}
}

// WithOnRetry sets a callback invoked before every retry sleep.
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(r *Retrier) { r.onRetry = fn }
}

// New creates a Retrier. Defaults: 3 attempts, 100ms initial delay doubling
// up to 30s, 10% jitter.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		maxAttempts:  3,
		initialDelay: 100 * time.Millisecond,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
		jitter:       0.1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs the operation until it succeeds, exhausts the attempts, returns a
// Permanent error, or the context is cancelled. Only Retryable errors are
// retried; the classification wrapper is stripped from the returned error.
func (r *Retrier) Do(ctx context.Context, operation func(ctx context.Context) error) error {
	delay := r.initialDelay

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return unmark(lastErr)
			}
			return err
		}

		err := operation(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == r.maxAttempts {
			return unmark(err)
		}

		wait := r.withJitter(delay)
		if r.onRetry != nil {
			r.onRetry(attempt, err, wait)
		}

		select {
		case <-ctx.Done():
			return unmark(lastErr)
		case <-time.After(wait):
		}

		delay = time.Duration(float64(delay) * r.multiplier)
		if delay > r.maxDelay {
			delay = r.maxDelay
		}
	}

	return unmark(lastErr)
}

func (r *Retrier) withJitter(d time.Duration) time.Duration {
	if r.jitter <= 0 {
		return d
	}
	spread := float64(d) * r.jitter * (rand.Float64()*2 - 1)
	out := time.Duration(float64(d) + spread)
	if out < 0 {
		return 0
	}
	return out
}

// Do is a one-shot convenience wrapper around New(...).Do.
func Do(ctx context.Context, operation func(ctx context.Context) error, opts ...Option) error {
	return New(opts...).Do(ctx, operation)
}
