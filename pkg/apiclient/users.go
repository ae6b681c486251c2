package apiclient

import (
	"context"
	"net/http"
)

// CurrentUser fetches the identity the current credential belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserSettings replaces the current user's preferences.
func (c *Client) UpdateUserSettings(ctx context.Context, settings UserSettings) (*UserSettings, error) {
	var out UserSettings
	if err := c.do(ctx, http.MethodPut, "/users/me/settings", nil, settings, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the aggregate powering the overview screen.
func (c *Client) Dashboard(ctx context.Context) (*DashboardData, error) {
	var d DashboardData
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Health probes the server for liveness.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var h HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
