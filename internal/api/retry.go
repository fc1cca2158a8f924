package api

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryConfig configures retry behavior for failed HTTP requests.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts for one logical request,
	// including the first. Must be at least 1.
	MaxAttempts int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay grows after each attempt.
	// Must be at least 1.
	Multiplier float64
	// Jitter is the randomization factor (0.0 to 1.0) added to delays.
	// Zero keeps delays deterministic.
	Jitter float64
	// RetryableOn determines if a response status code should trigger a
	// retry. Transport failures are always retryable regardless of this.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
		Multiplier:  2.0,
		Jitter:      0,
		RetryableOn: RetryOnStatus(502, 503, 504),
	}
}

// RetryOnStatus returns a predicate matching exactly the given status codes.
func RetryOnStatus(statusCodes ...int) func(int) bool {
	set := make(map[int]struct{}, len(statusCodes))
	for _, code := range statusCodes {
		set[code] = struct{}{}
	}
	return func(statusCode int) bool {
		_, ok := set[statusCode]
		return ok
	}
}

// ShouldRetry determines whether another attempt should follow the given
// outcome. attempt is the 1-based number of the attempt just completed.
// Transport failures are always retryable while attempts remain; protocol
// failures only when RetryableOn matches their status.
func (r *RetryConfig) ShouldRetry(attempt int, o Outcome) bool {
	if attempt >= r.MaxAttempts {
		return false
	}
	if o.TransportFailure() {
		return true
	}
	if o.Success() {
		return false
	}
	return r.RetryableOn != nil && r.RetryableOn(o.Status)
}

// Delay calculates the delay before the attempt following attempt, growing
// exponentially: BaseDelay * Multiplier^(attempt-1), capped at MaxDelay.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(r.BaseDelay) * math.Pow(r.Multiplier, float64(attempt-1))
	if r.MaxDelay > 0 && delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}

	if r.Jitter > 0 {
		jitterAmount := delay * r.Jitter
		delay = delay - jitterAmount + (rand.Float64() * 2 * jitterAmount)
	}

	return time.Duration(delay)
}

// Wait sleeps for the delay following attempt, honoring ctx cancellation.
func (r *RetryConfig) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(r.Delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// normalize fills zero fields with defaults and clamps invalid values.
func (r *RetryConfig) normalize() {
	def := DefaultRetryConfig()
	if r.MaxAttempts < 1 {
		r.MaxAttempts = def.MaxAttempts
	}
	if r.BaseDelay <= 0 {
		r.BaseDelay = def.BaseDelay
	}
	if r.MaxDelay <= 0 {
		r.MaxDelay = def.MaxDelay
	}
	if r.Multiplier < 1 {
		r.Multiplier = def.Multiplier
	}
	if r.RetryableOn == nil {
		r.RetryableOn = def.RetryableOn
	}
}
