package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// CreateAccountRequest opens a new account for a party.
type CreateAccountRequest struct {
	PartyID        int64       `json:"partyId"`
	AccountNumber  string      `json:"accountNumber"`
	AccountType    AccountType `json:"accountType"`
	BankName       string      `json:"bankName"`
	InitialBalance string      `json:"initialBalance"`
	Currency       string      `json:"currency,omitempty"`
}

// Accounts lists all accounts visible to the current user.
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Account fetches a single account by ID.
func (c *Client) Account(ctx context.Context, id int64) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/accounts/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAccount opens a new account.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPost, "/accounts", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAccountBalance sets a new balance on an account.
func (c *Client) UpdateAccountBalance(ctx context.Context, id int64, balance string) (*Account, error) {
	body := map[string]string{"newBalance": balance}
	var out Account
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/accounts/%d/balance", id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount removes an account.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/accounts/%d", id), nil, nil, nil)
}
