// Package jupiter implements the registry scraping client.
package jupiter

import (
	"context"
	"sync"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// RATE LIMITER - Token Bucket implementation
// ══════════════════════════════════════════════════════════════════════════════

// RateLimiter implements the Token Bucket algorithm to control request rate.
// The registry blocks clients that hammer it, so every request waits here first.
type RateLimiter struct {
	mu sync.Mutex

	maxTokens   float64       // Maximum tokens in the bucket
	refillRate  float64       // Tokens added per second
	tokens      float64       // Current token count
	lastRefill  time.Time     // Last time tokens were added
	minInterval time.Duration // Minimum interval between requests
	lastRequest time.Time     // Time of last request
	waitTimeout time.Duration // Maximum time to wait for a token
}

// RateLimiterConfig contains configuration for the rate limiter.
type RateLimiterConfig struct {
	// RequestsPerMinute is the maximum sustained request rate
	RequestsPerMinute int

	// BurstSize is the maximum number of requests that can be made in a burst
	BurstSize int

	// MinInterval is the minimum time between requests (even with tokens available)
	MinInterval time.Duration

	// WaitTimeout is the maximum time to wait for a token
	WaitTimeout time.Duration
}

// DefaultRateLimiterConfig returns conservative defaults for the registry.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: 30,
		BurstSize:         5,
		MinInterval:       500 * time.Millisecond,
		WaitTimeout:       30 * time.Second,
	}
}

// NewRateLimiter creates a new RateLimiter with the given configuration.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		maxTokens:   float64(config.BurstSize),
		refillRate:  float64(config.RequestsPerMinute) / 60.0,
		tokens:      float64(config.BurstSize), // Start with full bucket
		lastRefill:  now,
		minInterval: config.MinInterval,
		lastRequest: now.Add(-config.MinInterval), // Allow immediate first request
		waitTimeout: config.WaitTimeout,
	}
}

// Allow blocks until a request is allowed or the wait timeout expires.
func (rl *RateLimiter) Allow(ctx context.Context) error {
	deadline := time.Now().Add(rl.waitTimeout)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		waitTime, ok := rl.tryAcquire()
		if ok {
			return nil
		}

		if time.Now().Add(waitTime).After(deadline) {
			return context.DeadlineExceeded
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

// tryAcquire attempts to acquire a token without blocking.
// Returns (waitTime, success). If success is false, waitTime indicates
// how long to wait before retrying.
func (rl *RateLimiter) tryAcquire() (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillTokens()

	timeSinceLastRequest := time.Since(rl.lastRequest)
	if timeSinceLastRequest < rl.minInterval {
		return rl.minInterval - timeSinceLastRequest, false
	}

	if rl.tokens < 1.0 {
		tokensNeeded := 1.0 - rl.tokens
		return time.Duration(tokensNeeded / rl.refillRate * float64(time.Second)), false
	}

	rl.tokens--
	rl.lastRequest = time.Now()
	return 0, true
}

// refillTokens adds tokens based on time elapsed since last refill.
// Must be called with lock held.
func (rl *RateLimiter) refillTokens() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()

	if elapsed > 0 {
		rl.tokens += elapsed * rl.refillRate
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = now
	}
}

// Reset refills the bucket. Useful after a long idle period.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.tokens = rl.maxTokens
	rl.lastRefill = time.Now()
	rl.lastRequest = time.Now().Add(-rl.minInterval)
}
