package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wata-pro/client-go/internal/apierrors"
)

// publicKeyPath is the endpoint serving the webhook signing key.
const publicKeyPath = "/public-key"

// GetPublicKey fetches the PEM-encoded RSA public key used to sign webhook
// notifications. The endpoint may return the PEM directly or wrapped in a
// JSON envelope; both shapes are accepted.
func (c *Client) GetPublicKey(ctx context.Context) ([]byte, error) {
	data, err := c.Execute(ctx, Request{Method: http.MethodGet, Path: publicKeyPath})
	if err != nil {
		return nil, err
	}
	return extractPEM(data)
}

// extractPEM pulls the PEM material out of a public-key response body.
// The envelope field is "key"; "value" is accepted as well.
func extractPEM(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("-----BEGIN")) {
		return trimmed, nil
	}

	var envelope struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Key != "" {
			return []byte(envelope.Key), nil
		}
		if envelope.Value != "" {
			return []byte(envelope.Value), nil
		}
	}

	return nil, &apierrors.Error{
		Kind:    apierrors.KindParsing,
		Message: "public key response contains no PEM material",
		Body:    data,
	}
}

// KeyCache memoizes the API's public signing key for the lifetime of a
// client instance. Concurrent callers before population collapse into a
// single fetch; a failed fetch is never cached, so later calls retry.
type KeyCache struct {
	client *Client
	group  singleflight.Group

	mu        sync.RWMutex
	pem       []byte
	fetchedAt time.Time
}

// NewKeyCache creates a key cache backed by the given client.
func NewKeyCache(client *Client) *KeyCache {
	return &KeyCache{client: client}
}

// PublicKeyPEM returns the cached PEM bytes, fetching them on first use.
func (k *KeyCache) PublicKeyPEM(ctx context.Context) ([]byte, error) {
	k.mu.RLock()
	pem := k.pem
	k.mu.RUnlock()
	if pem != nil {
		return pem, nil
	}

	// The fetch runs detached from the caller's context so that one
	// caller's cancellation cannot abort the flight other callers are
	// waiting on. The session's own timeout still bounds the fetch.
	fetchCtx := context.WithoutCancel(ctx)
	ch := k.group.DoChan("public-key", func() (any, error) {
		data, err := k.client.GetPublicKey(fetchCtx)
		if err != nil {
			return nil, err
		}
		k.mu.Lock()
		k.pem = data
		k.fetchedAt = time.Now()
		k.mu.Unlock()
		return data, nil
	})

	select {
	case <-ctx.Done():
		if err := ctx.Err(); errors.Is(err, context.DeadlineExceeded) {
			return nil, Classify(Outcome{Err: err})
		}
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// FetchedAt returns when the cached key was fetched, zero when unpopulated.
func (k *KeyCache) FetchedAt() time.Time {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.fetchedAt
}
