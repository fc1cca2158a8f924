// Package api provides HTTP client functionality for communicating with the
// WATA H2H API. It handles bearer-token authentication, request/response
// serialization, and automatic retry with exponential backoff for transient
// failures.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit, type-safe setup.
//   - [New]: Functional options pattern for flexible configuration.
//
// Both require a base URL. The bearer token is optional; when configured it
// is sent via the Authorization header on every request.
//
// # Retry Behavior
//
// Each logical request is attempted up to [RetryConfig.MaxAttempts] times.
// Connection failures and timeouts are always retried while attempts remain;
// HTTP responses are retried only for these status codes by default:
//
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// The delay before attempt k+1 is BaseDelay * Multiplier^(k-1), capped at
// MaxDelay. Delays are deterministic unless Jitter is set.
//
// # Error Handling
//
// Terminal failures are classified into the apierrors taxonomy. Use
// errors.Is with the apierrors sentinels, or errors.As with
// *apierrors.Error, to inspect failures:
//
//	if errors.Is(err, apierrors.ErrNotFound) {
//	    // Handle missing resource
//	}
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously; all calls share one lazily
// created transport session.
package api
