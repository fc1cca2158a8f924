package wata

import (
	"log/slog"
	"net/http"
	"time"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	maxAttempts int
	baseDelay   time.Duration
	multiplier  float64
	retryOn     []int
	logger      *slog.Logger
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL. Defaults to BaseURLProduction.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client, replacing the lazily created
// shared session.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxAttempts sets the total number of attempts per request,
// including the first.
// Default: 3
func WithMaxAttempts(attempts int) Option {
	return func(c *clientConfig) {
		c.maxAttempts = attempts
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [502, 503, 504]. Connection failures and timeouts are always
// retried regardless of this list.
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithBaseDelay sets the delay before the first retry. Subsequent delays
// grow exponentially.
// Default: 1 second
func WithBaseDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.baseDelay = delay
	}
}

// WithBackoffMultiplier sets the factor by which the retry delay grows
// after each attempt.
// Default: 2.0
func WithBackoffMultiplier(multiplier float64) Option {
	return func(c *clientConfig) {
		c.multiplier = multiplier
	}
}

// WithLogger sets a structured logger receiving debug traces of requests
// and responses. The bearer token is never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
