// Package circuitbreaker guards calls to slow external dependencies.
// After repeated failures the breaker rejects calls outright for a cooldown
// period instead of stacking timeouts onto every request, then probes the
// dependency with a bounded number of trial calls before fully reopening.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State of the breaker.
type State int

const (
	// StateClosed - calls flow normally.
	StateClosed State = iota
	// StateOpen - calls are rejected until the cooldown elapses.
	StateOpen
	// StateHalfOpen - a bounded number of trial calls is allowed.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen is returned when the breaker rejects a call without executing it.
var ErrOpen = errors.New("circuitbreaker: open")

// StateChangeFunc is notified on every transition.
type StateChangeFunc func(name string, from, to State)

// Breaker is a consecutive-failure circuit breaker. Safe for concurrent use.
type Breaker struct {
	name             string
	failureThreshold int
	successThreshold int
	cooldown         time.Duration
	halfOpenMax      int
	onStateChange    StateChangeFunc

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	openedAt    time.Time
	trialsInUse int
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithFailureThreshold sets how many consecutive failures trip the breaker.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold sets how many consecutive trial successes close it again.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

// WithTimeout sets the open-state cooldown before trial calls are allowed.
func WithTimeout(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.cooldown = d
		}
	}
}

// WithMaxHalfOpenRequests bounds the number of concurrent trial calls.
func WithMaxHalfOpenRequests(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.halfOpenMax = n
		}
	}
}

// WithOnStateChange sets the transition callback.
func WithOnStateChange(fn StateChangeFunc) Option {
	return func(b *Breaker) { b.onStateChange = fn }
}

// New creates a closed Breaker with the given name.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		failureThreshold: 5,
		successThreshold: 2,
		cooldown:         30 * time.Second,
		halfOpenMax:      1,
		state:            StateClosed,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Execute runs fn if the breaker allows it and records the outcome.
// A rejected call returns ErrOpen without invoking fn.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := fn(ctx)
	b.record(err)
	return err
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset force-closes the breaker and clears all counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transition(StateClosed)
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if time.Since(b.openedAt) < b.cooldown {
			return ErrOpen
		}
		b.transition(StateHalfOpen)
		b.trialsInUse = 1
		return nil
	default: // StateHalfOpen
		if b.trialsInUse >= b.halfOpenMax {
			return ErrOpen
		}
		b.trialsInUse++
		return nil
	}
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Release the trial slot so the next probe can run.
	if b.state == StateHalfOpen && b.trialsInUse > 0 {
		b.trialsInUse--
	}

	if err != nil {
		b.failures++
		b.successes = 0
		// A failed trial call reopens immediately.
		if b.state == StateHalfOpen || b.failures >= b.failureThreshold {
			b.transition(StateOpen)
			b.openedAt = time.Now()
		}
		return
	}

	b.successes++
	b.failures = 0
	if b.state == StateHalfOpen && b.successes >= b.successThreshold {
		b.transition(StateClosed)
	}
}

// transition must be called with the lock held.
func (b *Breaker) transition(to State) {
	if b.state == to {
		b.failures = 0
		b.successes = 0
		b.trialsInUse = 0
		return
	}
	from := b.state
	b.state = to
	b.failures = 0
	b.successes = 0
	b.trialsInUse = 0
	if b.onStateChange != nil {
		b.onStateChange(b.name, from, to)
	}
}
