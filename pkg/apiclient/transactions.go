package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// TransactionFilters narrows a transaction listing. Zero values are omitted
// from the query.
type TransactionFilters struct {
	AccountID       int64
	TransactionType TransactionType
	Category        string
	DateFrom        time.Time
	DateTo          time.Time
	AmountMin       string
	AmountMax       string
}

func (f TransactionFilters) values() url.Values {
	q := url.Values{}
	if f.AccountID != 0 {
		q.Set("accountId", strconv.FormatInt(f.AccountID, 10))
	}
	if f.TransactionType != "" {
		q.Set("transactionType", string(f.TransactionType))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if !f.DateFrom.IsZero() {
		q.Set("dateFrom", f.DateFrom.Format(time.DateOnly))
	}
	if !f.DateTo.IsZero() {
		q.Set("dateTo", f.DateTo.Format(time.DateOnly))
	}
	if f.AmountMin != "" {
		q.Set("amountMin", f.AmountMin)
	}
	if f.AmountMax != "" {
		q.Set("amountMax", f.AmountMax)
	}
	return q
}

// CreateTransactionRequest records a new ledger entry.
type CreateTransactionRequest struct {
	AccountID       int64           `json:"accountId"`
	Amount          string          `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Date            string          `json:"date,omitempty"`
}

// Transactions lists transactions matching the filters, one page at a time.
// A page or pageSize of zero leaves the server default in place.
func (c *Client) Transactions(ctx context.Context, filters TransactionFilters, page, pageSize int) (*Paginated[Transaction], error) {
	q := filters.values()
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}

	var out Paginated[Transaction]
	if err := c.do(ctx, http.MethodGet, "/transactions", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transaction fetches a single transaction by ID.
func (c *Client) Transaction(ctx context.Context, id int64) (*Transaction, error) {
	var out Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*Transaction, error) {
	var out Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil, nil)
}
