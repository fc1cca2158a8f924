package wata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTransactionsService_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions/tx-1" {
			t.Errorf("path = %q, want /transactions/tx-1", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		w.Write([]byte(`{
			"id": "tx-1",
			"type": "H2H",
			"status": "Paid",
			"amount": 250,
			"currency": "RUB",
			"orderId": "ORDER-9",
			"commission": 2.5
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	tx, err := client.Transactions.Get(context.Background(), "tx-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if tx.Status != TransactionStatusPaid {
		t.Errorf("tx.Status = %q, want Paid", tx.Status)
	}
	if tx.Amount != 250 {
		t.Errorf("tx.Amount = %v, want 250", tx.Amount)
	}
	if tx.ErrorCode != nil {
		t.Errorf("tx.ErrorCode = %v, want nil", *tx.ErrorCode)
	}
}

func TestTransactionsService_Get_Declined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "tx-2",
			"status": "Declined",
			"errorCode": "INSUFFICIENT_FUNDS",
			"errorDescription": "Insufficient funds"
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	tx, err := client.Transactions.Get(context.Background(), "tx-2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if tx.Status != TransactionStatusDeclined {
		t.Errorf("tx.Status = %q, want Declined", tx.Status)
	}
	if tx.ErrorCode == nil || *tx.ErrorCode != "INSUFFICIENT_FUNDS" {
		t.Errorf("tx.ErrorCode = %v, want INSUFFICIENT_FUNDS", tx.ErrorCode)
	}
}

func TestTransactionsService_Get_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	_, err := client.Transactions.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestTransactionsService_Search(t *testing.T) {
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions" {
			t.Errorf("path = %q, want /transactions", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"items":[{"id":"tx-1","status":"Pending"}],"totalCount":42}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	result, err := client.Transactions.Search(context.Background(), SearchTransactionsParams{
		Statuses:       []TransactionStatus{TransactionStatusPending, TransactionStatusPaid},
		OrderID:        "ORDER-9",
		MaxResultCount: 10,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if got := gotQuery["statuses"]; len(got) != 2 || got[0] != "Pending" || got[1] != "Paid" {
		t.Errorf("query[statuses] = %v, want [Pending Paid]", got)
	}
	if got := gotQuery["orderId"]; len(got) != 1 || got[0] != "ORDER-9" {
		t.Errorf("query[orderId] = %v", got)
	}

	if result.TotalCount != 42 {
		t.Errorf("TotalCount = %d, want 42", result.TotalCount)
	}
	if len(result.Items) != 1 || result.Items[0].Status != TransactionStatusPending {
		t.Errorf("Items = %+v", result.Items)
	}
}
