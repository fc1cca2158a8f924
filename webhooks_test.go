package wata

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wata-pro/client-go/internal/signature"
)

// webhookFixture serves a public-key endpoint for the given PEM and counts
// fetches.
type webhookFixture struct {
	key     *rsa.PrivateKey
	client  *Client
	fetches *atomic.Int32
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()

	key, pemPub, err := signature.GenerateKeyForTesting(2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/public-key" {
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fetches.Add(1)
		w.Write(pemPub)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	return &webhookFixture{key: key, client: client, fetches: &fetches}
}

func (f *webhookFixture) sign(t *testing.T, body []byte) string {
	t.Helper()
	sig, err := signature.SignForTesting(f.key, body)
	if err != nil {
		t.Fatalf("sign body: %v", err)
	}
	return sig
}

func TestWebhooksService_VerifySignature(t *testing.T) {
	f := newWebhookFixture(t)

	body := []byte(`{"transactionId":"tx-1","transactionStatus":"Paid","orderId":"ORDER-1","amount":100.5,"currency":"RUB"}`)
	sig := f.sign(t, body)

	ok, err := f.client.Webhooks.VerifySignature(context.Background(), body, sig)
	if err != nil {
		t.Fatalf("VerifySignature() error = %v", err)
	}
	if !ok {
		t.Error("VerifySignature() = false, want true")
	}
}

func TestWebhooksService_VerifySignature_Invalid(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	body := []byte(`{"transactionId":"tx-1","amount":100.5}`)
	sig := f.sign(t, body)

	otherKey, _, err := signature.GenerateKeyForTesting(2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	forged, err := signature.SignForTesting(otherKey, body)
	if err != nil {
		t.Fatalf("sign body: %v", err)
	}

	mutated := append([]byte(nil), body...)
	mutated[len(mutated)-2] = '6'

	tests := []struct {
		name string
		body []byte
		sig  string
	}{
		{"tampered body", mutated, sig},
		{"signature from another key", body, forged},
		{"not base64", body, "***"},
		{"empty signature", body, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := f.client.Webhooks.VerifySignature(ctx, tt.body, tt.sig)
			if err != nil {
				t.Fatalf("VerifySignature() error = %v", err)
			}
			if ok {
				t.Error("VerifySignature() = true, want false")
			}
		})
	}
}

// Verification covers the exact wire bytes: decoding and re-encoding the
// JSON payload must invalidate the signature.
func TestWebhooksService_VerifySignature_ReencodedBody(t *testing.T) {
	f := newWebhookFixture(t)

	original := []byte(`{"transactionId": "tx-1", "amount": 100.50}`)
	reencoded := []byte(`{"amount":100.5,"transactionId":"tx-1"}`)
	sig := f.sign(t, original)

	ctx := context.Background()
	ok, err := f.client.Webhooks.VerifySignature(ctx, original, sig)
	if err != nil || !ok {
		t.Fatalf("original bytes: ok=%v err=%v, want true", ok, err)
	}

	ok, err = f.client.Webhooks.VerifySignature(ctx, reencoded, sig)
	if err != nil {
		t.Fatalf("VerifySignature() error = %v", err)
	}
	if ok {
		t.Error("re-encoded body verified, want false")
	}
}

func TestWebhooksService_KeyFetchedOnce(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		body := []byte(`{"transactionId":"tx-1"}`)
		sig := f.sign(t, body)
		if ok, err := f.client.Webhooks.VerifySignature(ctx, body, sig); err != nil || !ok {
			t.Fatalf("VerifySignature() #%d: ok=%v err=%v", i, ok, err)
		}
	}

	if got := f.fetches.Load(); got != 1 {
		t.Errorf("public key fetches = %d, want 1", got)
	}
}

func TestWebhooksService_KeyFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server, WithMaxAttempts(1))

	_, err := client.Webhooks.VerifySignature(context.Background(), []byte(`{}`), "sig")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("error = %v, want ErrServiceUnavailable", err)
	}
}

func TestWebhooksService_MalformedKeyMaterial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("-----BEGIN PUBLIC KEY-----\naGVsbG8=\n-----END PUBLIC KEY-----\n"))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	// A key that fetched fine but does not parse is treated like a forged
	// webhook, not a program error.
	ok, err := client.Webhooks.VerifySignature(context.Background(), []byte(`{}`), "sig")
	if err != nil {
		t.Fatalf("VerifySignature() error = %v", err)
	}
	if ok {
		t.Error("VerifySignature() = true with unparseable key")
	}
}

func TestPaymentsService_GetPublicKey(t *testing.T) {
	_, pemPub, err := signature.GenerateKeyForTesting(2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write(pemPub)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()

	first, err := client.Payments.GetPublicKey(ctx)
	if err != nil {
		t.Fatalf("GetPublicKey() error = %v", err)
	}
	if _, err := signature.ParsePublicKey([]byte(first)); err != nil {
		t.Errorf("returned key does not parse: %v", err)
	}

	// Unlike webhook verification, this endpoint is not cached.
	if _, err := client.Payments.GetPublicKey(ctx); err != nil {
		t.Fatalf("GetPublicKey() error = %v", err)
	}
	if got := fetches.Load(); got != 2 {
		t.Errorf("fetches = %d, want 2", got)
	}
}

func TestParseWebhookEvent(t *testing.T) {
	body := []byte(`{
		"transactionType": "H2H",
		"transactionId": "tx-1",
		"transactionStatus": "Paid",
		"errorCode": null,
		"errorDescription": null,
		"terminalName": "shop.example.com",
		"amount": 100.5,
		"currency": "RUB",
		"orderId": "ORDER-1",
		"orderDescription": "Test payment",
		"paymentTime": "2026-08-01T12:30:00Z",
		"commission": 2.5,
		"email": "payer@example.com"
	}`)

	event, err := ParseWebhookEvent(body)
	if err != nil {
		t.Fatalf("ParseWebhookEvent() error = %v", err)
	}

	if event.TransactionID != "tx-1" {
		t.Errorf("TransactionID = %q, want tx-1", event.TransactionID)
	}
	if event.TransactionStatus != TransactionStatusPaid {
		t.Errorf("TransactionStatus = %q, want Paid", event.TransactionStatus)
	}
	if event.Amount != 100.5 {
		t.Errorf("Amount = %v, want 100.5", event.Amount)
	}
	if event.ErrorCode != nil {
		t.Errorf("ErrorCode = %v, want nil", *event.ErrorCode)
	}
	if event.Email == nil || *event.Email != "payer@example.com" {
		t.Errorf("Email = %v, want payer@example.com", event.Email)
	}
	want := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	if !event.PaymentTime.Equal(want) {
		t.Errorf("PaymentTime = %v, want %v", event.PaymentTime, want)
	}
}

func TestParseWebhookEvent_Malformed(t *testing.T) {
	_, err := ParseWebhookEvent([]byte(`not json`))
	if !errors.Is(err, ErrParsing) {
		t.Errorf("error = %v, want ErrParsing", err)
	}
}
