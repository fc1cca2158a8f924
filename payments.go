package wata

import (
	"context"
)

// PaymentsService exposes payment infrastructure endpoints.
type PaymentsService struct {
	client *Client
}

// GetPublicKey fetches the current PEM-encoded RSA public key used to sign
// webhook notifications. Every call hits the API; webhook verification
// uses a cached copy instead (see WebhooksService).
func (s *PaymentsService) GetPublicKey(ctx context.Context) (string, error) {
	if err := s.client.checkClosed(); err != nil {
		return "", err
	}

	pem, err := s.client.apiClient.GetPublicKey(ctx)
	if err != nil {
		return "", err
	}
	return string(pem), nil
}
