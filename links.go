package wata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wata-pro/client-go/internal/api"
)

// Currency codes accepted by the API.
const (
	CurrencyRUB = "RUB"
	CurrencyEUR = "EUR"
	CurrencyUSD = "USD"
)

// LinkStatus represents the lifecycle state of a payment link.
type LinkStatus string

const (
	// LinkStatusOpened indicates the link can still accept a payment.
	LinkStatusOpened LinkStatus = "Opened"
	// LinkStatusClosed indicates the link is paid out or expired.
	LinkStatusClosed LinkStatus = "Closed"
)

// Link is a payment link resource.
type Link struct {
	ID                 string     `json:"id"`
	Amount             float64    `json:"amount"`
	Currency           string     `json:"currency"`
	Status             LinkStatus `json:"status"`
	URL                string     `json:"url"`
	TerminalName       string     `json:"terminalName"`
	OrderID            string     `json:"orderId"`
	Description        string     `json:"description"`
	SuccessRedirectURL string     `json:"successRedirectUrl"`
	FailRedirectURL    string     `json:"failRedirectUrl"`
	CreationTime       time.Time  `json:"creationTime"`
	ExpirationDateTime *time.Time `json:"expirationDateTime,omitempty"`
}

// CreateLinkParams are the parameters for creating a payment link.
// Amount and Currency are required.
type CreateLinkParams struct {
	Amount             float64    `json:"amount"`
	Currency           string     `json:"currency"`
	Description        string     `json:"description,omitempty"`
	OrderID            string     `json:"orderId,omitempty"`
	SuccessRedirectURL string     `json:"successRedirectUrl,omitempty"`
	FailRedirectURL    string     `json:"failRedirectUrl,omitempty"`
	ExpirationDateTime *time.Time `json:"expirationDateTime,omitempty"`
}

// SearchLinksParams filter the payment link listing. Zero values are
// omitted from the query.
type SearchLinksParams struct {
	AmountFrom       *float64
	AmountTo         *float64
	Currencies       []string
	Statuses         []LinkStatus
	OrderID          string
	CreationTimeFrom *time.Time
	CreationTimeTo   *time.Time
	// Sorting is a field name optionally followed by "desc",
	// e.g. "creationTime desc".
	Sorting        string
	SkipCount      int
	MaxResultCount int
}

func (p SearchLinksParams) values() url.Values {
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

// SearchLinksResult is a page of payment links.
type SearchLinksResult struct {
	Items      []Link `json:"items"`
	TotalCount int    `json:"totalCount"`
}

// LinksService manages payment links.
type LinksService struct {
	client *Client
}

// Create creates a new payment link.
func (s *LinksService) Create(ctx context.Context, params CreateLinkParams) (*Link, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}
	if params.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if params.Currency == "" {
		return nil, fmt.Errorf("currency is required")
	}

	var link Link
	err := s.client.apiClient.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/links",
		Body:   params,
	}, &link)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Get retrieves a payment link by ID.
func (s *LinksService) Get(ctx context.Context, id string) (*Link, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	var link Link
	err := s.client.apiClient.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/links/" + url.PathEscape(id),
	}, &link)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Search lists payment links matching the given filters.
func (s *LinksService) Search(ctx context.Context, params SearchLinksParams) (*SearchLinksResult, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	var result SearchLinksResult
	err := s.client.apiClient.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/links",
		Query:  params.values(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
