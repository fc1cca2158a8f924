package wata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wata-pro/client-go/internal/api"
	"github.com/wata-pro/client-go/internal/apierrors"
	"github.com/wata-pro/client-go/internal/signature"
)

// SignatureHeader is the HTTP header carrying the base64-encoded
// RSASSA-PSS signature of a webhook request body.
const SignatureHeader = "X-Signature"

// WebhookEvent is a decoded webhook notification payload.
type WebhookEvent struct {
	TransactionType   string            `json:"transactionType"`
	TransactionID     string            `json:"transactionId"`
	TransactionStatus TransactionStatus `json:"transactionStatus"`
	ErrorCode         *string           `json:"errorCode"`
	ErrorDescription  *string           `json:"errorDescription"`
	TerminalName      string            `json:"terminalName"`
	Amount            float64           `json:"amount"`
	Currency          string            `json:"currency"`
	OrderID           string            `json:"orderId"`
	OrderDescription  string            `json:"orderDescription"`
	PaymentTime       time.Time         `json:"paymentTime"`
	Commission        float64           `json:"commission"`
	Email             *string           `json:"email"`
}

// ParseWebhookEvent decodes a webhook notification body. Call it only
// after VerifySignature has accepted the exact same raw bytes.
func ParseWebhookEvent(rawBody []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, &apierrors.Error{
			Kind:    apierrors.KindParsing,
			Message: "decode webhook body",
			Body:    rawBody,
			Err:     err,
		}
	}
	return &event, nil
}

// WebhooksService verifies webhook notifications. The signing key is
// fetched once per client instance and cached in memory; concurrent first
// verifications share a single fetch.
type WebhooksService struct {
	client *Client
	keys   *api.KeyCache
}

// VerifySignature checks signatureHeader (base64, from the X-Signature
// header) against rawBody, which must be the exact byte sequence received
// on the wire. Re-serializing a parsed body changes the bytes and fails
// verification.
//
// A forged or malformed webhook is an expected adversarial input, not a
// program error: any signature or key-format mismatch returns (false, nil).
// An error is returned only when the public key cannot be obtained from
// the API.
func (s *WebhooksService) VerifySignature(ctx context.Context, rawBody []byte, signatureHeader string) (bool, error) {
	if err := s.client.checkClosed(); err != nil {
		return false, err
	}

	pemBytes, err := s.keys.PublicKeyPEM(ctx)
	if err != nil {
		return false, err
	}

	pub, err := signature.ParsePublicKey(pemBytes)
	if err != nil {
		return false, nil
	}
	return signature.VerifyBase64(pub, rawBody, signatureHeader), nil
}
