package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/finwise/finwise-go/pkg/apierr"
	"github.com/finwise/finwise-go/pkg/credstore"
)

// defaultTimeout is the fixed per-call deadline. A call that outlives it
// fails with a network classification.
const defaultTimeout = 10 * time.Second

// Client issues all outbound API calls. Zero value is not usable; use New.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	creds      credstore.Store
	log        *slog.Logger

	mu            sync.Mutex
	onAuthExpired []func(context.Context)
}

// Option configures a client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. for custom
// transports or proxies.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the fixed per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCredentialStore sets the persisted credential slot. Without it the
// client runs unauthenticated and never attaches a bearer header.
func WithCredentialStore(store credstore.Store) Option {
	return func(c *Client) {
		if store != nil {
			c.creds = store
		}
	}
}

// WithLogger sets the structured logger. Silent by default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client rooted at the given base URL, e.g.
// "https://api.example.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		creds: credstore.NewMemory(),
		log:   slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)})),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// OnAuthExpired registers a hook that runs when the server rejects a
// presented credential. Hooks run synchronously, after the persisted slot is
// erased and before the in-flight call returns.
func (c *Client) OnAuthExpired(fn func(context.Context)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthExpired = append(c.onAuthExpired, fn)
}

// errorEnvelope is the well-formed error body the server responds with.
type errorEnvelope struct {
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details,omitempty"`
}

// do performs a JSON request against the API and decodes the response into
// out when non-nil. Failures are always classified.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apierr.Client(fmt.Errorf("encode request body: %w", err))
		}
		payload = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, query, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierr.Client(fmt.Errorf("decode response body: %w", err))
	}
	return nil
}

// newRequest builds a request with the bearer credential attached when the
// slot holds one.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, apierr.Client(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.creds.Load(ctx)
	if err != nil {
		return nil, apierr.Client(fmt.Errorf("load credential: %w", err))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send executes the request and classifies every failure. A 2xx response is
// returned to the caller with its body unread.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	bearerAttached := req.Header.Get("Authorization") != ""

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.DebugContext(req.Context(), "request failed before a response was received",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Any("error", err),
		)
		return nil, apierr.Network(err)
	}

	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}
	defer resp.Body.Close()

	return nil, c.classify(req, resp, bearerAttached)
}

// classify turns a non-2xx response into exactly one taxonomy member.
func (c *Client) classify(req *http.Request, resp *http.Response, bearerAttached bool) error {
	var envelope errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &envelope)

	// An unauthorized status only means credential expiry when a credential
	// was actually presented and the server did not name a login-domain
	// rejection. A wrong password is a login failure, not a dead session.
	if resp.StatusCode == http.StatusUnauthorized && bearerAttached && !isLoginDomainCode(envelope.Code) {
		c.handleAuthExpired(req.Context())
		return apierr.AuthExpired(envelope.Message, resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apierr.Validation(envelope.Code, envelope.Message, decodeFieldErrors(envelope.Details), resp.StatusCode)
	default:
		return apierr.Server(envelope.Code, envelope.Message, resp.StatusCode)
	}
}

// handleAuthExpired erases the persisted credential and runs the registered
// hooks. The in-flight call still rejects; the session reset happens first.
func (c *Client) handleAuthExpired(ctx context.Context) {
	if err := c.creds.Clear(ctx); err != nil {
		c.log.WarnContext(ctx, "failed to clear persisted credential", slog.Any("error", err))
	}
	c.mu.Lock()
	hooks := make([]func(context.Context), len(c.onAuthExpired))
	copy(hooks, c.onAuthExpired)
	c.mu.Unlock()
	for _, fn := range hooks {
		fn(ctx)
	}
}

func isLoginDomainCode(code string) bool {
	switch code {
	case apierr.CodeInvalidCredentials, apierr.CodeAccountLocked, apierr.CodeMFARequired:
		return true
	}
	return false
}

func decodeFieldErrors(raw json.RawMessage) []apierr.FieldError {
	if len(raw) == 0 {
		return nil
	}
	var fields []apierr.FieldError
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}
