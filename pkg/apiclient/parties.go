package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// PartyRequest creates or updates a counterparty. On update, empty fields
// are left unchanged by the server.
type PartyRequest struct {
	Name    string    `json:"name,omitempty"`
	Type    PartyType `json:"type,omitempty"`
	Email   string    `json:"email,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Address string    `json:"address,omitempty"`
}

// Parties lists all counterparties.
func (c *Client) Parties(ctx context.Context) ([]Party, error) {
	var out []Party
	if err := c.do(ctx, http.MethodGet, "/parties", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Party fetches a single counterparty by ID.
func (c *Client) Party(ctx context.Context, id int64) (*Party, error) {
	var out Party
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/parties/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateParty registers a new counterparty.
func (c *Client) CreateParty(ctx context.Context, req PartyRequest) (*Party, error) {
	var out Party
	if err := c.do(ctx, http.MethodPost, "/parties", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateParty applies a partial update to a counterparty.
func (c *Client) UpdateParty(ctx context.Context, id int64, req PartyRequest) (*Party, error) {
	var out Party
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/parties/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteParty removes a counterparty.
func (c *Client) DeleteParty(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/parties/%d", id), nil, nil, nil)
}
