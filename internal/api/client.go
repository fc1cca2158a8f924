package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wata-pro/client-go/internal/apierrors"
)

// Default client settings.
const (
	DefaultBaseURL = "https://api.wata.pro/api/h2h"
	DefaultTimeout = 30 * time.Second
)

// Config configures the API client.
type Config struct {
	// BaseURL is the API root, without a trailing slash. Required.
	BaseURL string
	// Token is the JWT bearer credential. Optional; when empty no
	// Authorization header is sent.
	Token string
	// Timeout is the per-request timeout. Defaults to DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the lazily created transport session.
	HTTPClient *http.Client
	// Retry configures the retry policy. Defaults to DefaultRetryConfig.
	Retry *RetryConfig
	// Logger receives debug traces of requests and responses. Defaults to
	// a discarding logger; the bearer token is never logged.
	Logger *slog.Logger
}

// Client is the HTTP API client. It owns one shared transport session,
// created lazily on first use, and is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	retry   *RetryConfig
	logger  *slog.Logger

	custom      *http.Client
	sessionOnce sync.Once
	session     *http.Client
}

// NewClient creates an API client from explicit configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	retry := DefaultRetryConfig()
	if cfg.Retry != nil {
		// Copy so normalize never rewrites the caller's struct.
		copied := *cfg.Retry
		retry = &copied
	}
	retry.normalize()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		timeout: timeout,
		retry:   retry,
		logger:  logger,
		custom:  cfg.HTTPClient,
	}, nil
}

// Option configures the API client.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithRetry sets the retry policy.
func WithRetry(retry *RetryConfig) Option {
	return func(c *Config) {
		c.Retry = retry
	}
}

// WithLogger sets the debug trace logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// New creates an API client with the given bearer token and options.
func New(token string, opts ...Option) (*Client, error) {
	cfg := Config{
		BaseURL: DefaultBaseURL,
		Token:   token,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// transport returns the shared HTTP session, creating it on first use.
// Concurrent first callers observe exactly one session.
func (c *Client) transport() *http.Client {
	c.sessionOnce.Do(func() {
		if c.custom != nil {
			c.session = c.custom
			return
		}
		c.session = &http.Client{Timeout: c.timeout}
	})
	return c.session
}

// CloseIdleConnections releases idle connections held by the shared session.
func (c *Client) CloseIdleConnections() {
	c.transport().CloseIdleConnections()
}

// Request describes one logical API call. It is never mutated by the
// executor; authentication and content headers are injected into the
// per-attempt HTTP request instead.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is the endpoint path relative to the base URL.
	Path string
	// Query holds query parameters, nil when none.
	Query url.Values
	// Body is JSON-marshaled into the request body, nil when none.
	Body any
	// Header holds extra headers to send, nil when none.
	Header http.Header
}

// Execute performs req with retries and returns the raw response body of
// the first successful attempt. Terminal failures are returned as
// *apierrors.Error.
func (c *Client) Execute(ctx context.Context, req Request) ([]byte, error) {
	var payload []byte
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	requestID := uuid.NewString()

	var out Outcome
	for attempt := 1; ; attempt++ {
		out = c.attempt(ctx, req, target, payload, requestID, attempt)
		if out.Success() {
			return out.Body, nil
		}
		if !c.retry.ShouldRetry(attempt, out) {
			break
		}
		c.logger.DebugContext(ctx, "retrying request",
			"request_id", requestID,
			"attempt", attempt,
			"delay", c.retry.Delay(attempt))
		if err := c.retry.Wait(ctx, attempt); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, Classify(Outcome{Err: err})
			}
			return nil, err
		}
	}
	return nil, Classify(out)
}

// Do performs req and decodes the JSON response body into result. A decode
// failure is a non-retryable parsing error. result may be nil to discard
// the body.
func (c *Client) Do(ctx context.Context, req Request, result any) error {
	data, err := c.Execute(ctx, req)
	if err != nil {
		return err
	}
	if result == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return &apierrors.Error{
			Kind:    apierrors.KindParsing,
			Message: "decode response body",
			Body:    data,
			Err:     err,
		}
	}
	return nil
}

// attempt issues one transport call and classifies its result.
func (c *Client) attempt(ctx context.Context, req Request, target string, payload []byte, requestID string, attempt int) Outcome {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return Outcome{Err: err}
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.DebugContext(ctx, "api request",
		"method", req.Method,
		"url", target,
		"request_id", requestID,
		"attempt", attempt)

	start := time.Now()
	resp, err := c.transport().Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			"method", req.Method,
			"url", target,
			"request_id", requestID,
			"attempt", attempt,
			"error", err)
		return Outcome{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Err: err}
	}

	c.logger.DebugContext(ctx, "api response",
		"method", req.Method,
		"url", target,
		"request_id", requestID,
		"attempt", attempt,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	return Outcome{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
	}
}
