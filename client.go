package wata

import (
	"sync"

	"github.com/wata-pro/client-go/internal/api"
)

// API base URLs.
const (
	// BaseURLProduction is the live H2H API root.
	BaseURLProduction = "https://api.wata.pro/api/h2h"
	// BaseURLSandbox is the sandbox H2H API root.
	BaseURLSandbox = "https://api-sandbox.wata.pro/api/h2h"
)

// Client is the main WATA API client. It is safe for concurrent use;
// all calls multiplex over one shared transport session. Independent
// Client instances share nothing.
type Client struct {
	apiClient *api.Client

	mu     sync.RWMutex
	closed bool

	// Links manages payment links.
	Links *LinksService
	// Transactions looks up payment transactions.
	Transactions *TransactionsService
	// Payments exposes payment infrastructure endpoints.
	Payments *PaymentsService
	// Webhooks verifies and parses webhook notifications.
	Webhooks *WebhooksService
}

// New creates a WATA client authenticated with the given JWT bearer token.
// The token may be empty for clients used only to fetch the public key and
// verify webhooks.
func New(token string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: BaseURLProduction,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	retry := api.DefaultRetryConfig()
	if cfg.maxAttempts > 0 {
		retry.MaxAttempts = cfg.maxAttempts
	}
	if cfg.baseDelay > 0 {
		retry.BaseDelay = cfg.baseDelay
	}
	if cfg.multiplier >= 1 {
		retry.Multiplier = cfg.multiplier
	}
	if len(cfg.retryOn) > 0 {
		retry.RetryableOn = api.RetryOnStatus(cfg.retryOn...)
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		Token:      token,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
		Retry:      retry,
		Logger:     cfg.logger,
	})
	if err != nil {
		return nil, err
	}

	c := &Client{apiClient: apiClient}
	c.Links = &LinksService{client: c}
	c.Transactions = &TransactionsService{client: c}
	c.Payments = &PaymentsService{client: c}
	c.Webhooks = &WebhooksService{
		client: c,
		keys:   api.NewKeyCache(apiClient),
	}
	return c, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Close marks the client closed and releases idle transport connections.
// Subsequent operations return ErrClientClosed. Closing one client does
// not affect other client instances.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.apiClient.CloseIdleConnections()
	return nil
}
