package wata

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/wata-pro/client-go/internal/api"
)

// TransactionStatus represents the processing state of a transaction.
type TransactionStatus string

const (
	// TransactionStatusPending indicates processing has not finished.
	TransactionStatusPending TransactionStatus = "Pending"
	// TransactionStatusPaid indicates the payment succeeded.
	TransactionStatusPaid TransactionStatus = "Paid"
	// TransactionStatusDeclined indicates the payment was declined.
	TransactionStatusDeclined TransactionStatus = "Declined"
)

// Transaction is a payment transaction resource.
type Transaction struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Status           TransactionStatus `json:"status"`
	Amount           float64           `json:"amount"`
	Currency         string            `json:"currency"`
	OrderID          string            `json:"orderId"`
	OrderDescription string            `json:"orderDescription"`
	TerminalName     string            `json:"terminalName"`
	ErrorCode        *string           `json:"errorCode"`
	ErrorDescription *string           `json:"errorDescription"`
	Commission       float64           `json:"commission"`
	Email            *string           `json:"email"`
	CreationTime     time.Time         `json:"creationTime"`
	PaymentTime      *time.Time        `json:"paymentTime,omitempty"`
	PaymentLinkID    string            `json:"paymentLinkId,omitempty"`
}

// SearchTransactionsParams filter the transaction listing. Zero values are
// omitted from the query.
type SearchTransactionsParams struct {
	AmountFrom       *float64
	AmountTo         *float64
	Currencies       []string
	Statuses         []TransactionStatus
	OrderID          string
	CreationTimeFrom *time.Time
	CreationTimeTo   *time.Time
	Sorting          string
	SkipCount        int
	MaxResultCount   int
}

func (p SearchTransactionsParams) values() url.Values {
	q := url.Values{}
	setAmount(q, "amountFrom", p.AmountFrom)
	setAmount(q, "amountTo", p.AmountTo)
	addStrings(q, "currencies", p.Currencies)
	addStrings(q, "statuses", p.Statuses)
	setString(q, "orderId", p.OrderID)
	setTime(q, "creationTimeFrom", p.CreationTimeFrom)
	setTime(q, "creationTimeTo", p.CreationTimeTo)
	setString(q, "sorting", p.Sorting)
	setInt(q, "skipCount", p.SkipCount)
	setInt(q, "maxResultCount", p.MaxResultCount)
	return q
}

// SearchTransactionsResult is a page of transactions.
type SearchTransactionsResult struct {
	Items      []Transaction `json:"items"`
	TotalCount int           `json:"totalCount"`
}

// TransactionsService looks up payment transactions.
type TransactionsService struct {
	client *Client
}

// Get retrieves a transaction by ID.
func (s *TransactionsService) Get(ctx context.Context, id string) (*Transaction, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	var tx Transaction
	err := s.client.apiClient.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/transactions/" + url.PathEscape(id),
	}, &tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// Search lists transactions matching the given filters.
func (s *TransactionsService) Search(ctx context.Context, params SearchTransactionsParams) (*SearchTransactionsResult, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	var result SearchTransactionsResult
	err := s.client.apiClient.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/transactions",
		Query:  params.values(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
