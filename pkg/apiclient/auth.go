package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// LoginRequest carries the credentials for an authentication attempt. The
// MFA token is attached on the second pass when the server asked for a
// one-time code.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFAToken string `json:"mfaToken,omitempty"`
}

// LoginResponse is the server's answer to a successful authentication.
type LoginResponse struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MFASetupResponse carries the enrollment material for a second factor.
type MFASetupResponse struct {
	Secret      string   `json:"secret"`
	QRCode      string   `json:"qrCode"`
	BackupCodes []string `json:"backupCodes"`
}

// Login authenticates with the server. On success the issued credential is
// written to the persisted slot before the response is returned, so a
// process restart picks up the session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.creds.Save(ctx, resp.Token); err != nil {
			c.log.WarnContext(ctx, "failed to persist credential", slog.Any("error", err))
		}
	}
	return &resp, nil
}

// Logout invalidates the session on the server. The persisted credential is
// erased regardless of the remote outcome, so a failing server can never
// leave the local session stuck authenticated.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	if clearErr := c.creds.Clear(ctx); clearErr != nil {
		c.log.WarnContext(ctx, "failed to clear persisted credential", slog.Any("error", clearErr))
	}
	return err
}

// RefreshToken exchanges the current credential for a fresh one and persists
// the rotation.
func (c *Client) RefreshToken(ctx context.Context) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.creds.Save(ctx, resp.Token); err != nil {
			c.log.WarnContext(ctx, "failed to persist rotated credential", slog.Any("error", err))
		}
	}
	return &resp, nil
}

// SetupMFA starts second-factor enrollment for the current user.
func (c *Client) SetupMFA(ctx context.Context) (*MFASetupResponse, error) {
	var resp MFASetupResponse
	if err := c.do(ctx, http.MethodPost, "/auth/mfa/setup", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyMFA confirms enrollment with a one-time code.
func (c *Client) VerifyMFA(ctx context.Context, code string) (bool, error) {
	var resp struct {
		Success bool `json:"success"`
	}
	body := map[string]string{"token": code}
	if err := c.do(ctx, http.MethodPost, "/auth/mfa/verify", nil, body, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}
