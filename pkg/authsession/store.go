package authsession

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/finwise/finwise-go/pkg/apiclient"
	"github.com/finwise/finwise-go/pkg/apierr"
	"github.com/finwise/finwise-go/pkg/credstore"
)

// Messages surfaced for classified login failures. The invalid-credentials
// message deliberately stays generic.
const (
	msgInvalidCredentials = "invalid email or password"
	msgAccountLocked      = "account is locked due to too many failed login attempts"
	msgGenericFailure     = "login failed - please try again"
)

// Gateway is the slice of the API client the session store drives. Tests
// inject a fake implementation here instead of hardcoding bypass
// credentials.
type Gateway interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*apiclient.User, error)
}

// Store holds the session and is its only mutator.
type Store struct {
	gateway Gateway
	creds   credstore.Store
	log     *slog.Logger
	bufSize int

	mu           sync.Mutex
	current      Session
	bootstrapped bool

	subMu sync.RWMutex
	subs  map[chan Session]struct{}
}

// StoreOption configures a session store during construction.
type StoreOption func(*Store)

// WithLogger sets the structured logger. Silent by default.
func WithLogger(log *slog.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCredentialStore sets the persisted slot read during bootstrap.
func WithCredentialStore(creds credstore.Store) StoreOption {
	return func(s *Store) {
		if creds != nil {
			s.creds = creds
		}
	}
}

// WithSubscriberBuffer sets the per-subscriber channel buffer. Snapshots are
// dropped for a subscriber whose buffer is full.
func WithSubscriberBuffer(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.bufSize = n
		}
	}
}

// New creates a session store in the Anonymous state.
func New(gateway Gateway, opts ...StoreOption) *Store {
	s := &Store{
		gateway: gateway,
		creds:   credstore.NewMemory(),
		log:     slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)})),
		bufSize: 8,
		subs:    make(map[chan Session]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current session.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe returns a channel receiving a snapshot after every transition.
// The subscription ends when ctx is cancelled. Snapshots are dropped rather
// than blocking when the subscriber falls behind.
func (s *Store) Subscribe(ctx context.Context) <-chan Session {
	ch := make(chan Session, s.bufSize)

	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			s.unsubscribe(ch)
		}()
	}
	return ch
}

func (s *Store) unsubscribe(ch chan Session) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

// dispatch runs the reducer to completion under the lock, then notifies
// subscribers with the resulting snapshot.
func (s *Store) dispatch(e event) {
	s.mu.Lock()
	s.current = reduce(s.current, e)
	snap := s.current
	s.mu.Unlock()

	s.log.Debug("session transition",
		slog.String("event", string(e.kind)),
		slog.Bool("authenticated", snap.IsAuthenticated),
		slog.Bool("loading", snap.IsLoading),
	)

	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Bootstrap hydrates the session from the persisted credential. It reads the
// slot exactly once per process; later calls are no-ops. Failures are
// silent: a rejected credential clears the slot and leaves the session
// Anonymous with no error message.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return
	}
	s.bootstrapped = true
	s.mu.Unlock()

	token, err := s.creds.Load(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "failed to read persisted credential", slog.Any("error", err))
		return
	}
	if token == "" {
		return
	}

	s.dispatch(event{kind: evBootstrapStart, token: token})

	user, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		// The stored credential is no longer honored. The auth-expired path
		// in the gateway already cleared the slot for 401s; clear again for
		// every other failure so a dead token is never retried.
		if clearErr := s.creds.Clear(ctx); clearErr != nil {
			s.log.WarnContext(ctx, "failed to clear persisted credential", slog.Any("error", clearErr))
		}
		s.dispatch(event{kind: evLogout})
		return
	}
	s.dispatch(event{kind: evSetUser, user: user})
}

// Login runs one authentication attempt. The classified gateway error is
// rethrown so the caller can distinguish an inline failure banner from a
// second-factor re-prompt via the apierr predicates.
func (s *Store) Login(ctx context.Context, creds Credentials) error {
	if s.Snapshot().IsLoading {
		return ErrOperationInFlight
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	s.dispatch(event{kind: evLoginStart})

	resp, err := s.gateway.Login(ctx, apiclient.LoginRequest{
		Email:    creds.Email,
		Password: creds.Password,
		MFAToken: creds.MFACode,
	})
	if err != nil {
		s.dispatch(loginFailureEvent(err))
		return err
	}

	// The gateway persisted the credential before returning; the success
	// transition only records it.
	user := resp.User
	s.dispatch(event{kind: evLoginSuccess, user: &user, token: resp.Token})
	return nil
}

// loginFailureEvent maps a classified gateway error onto the failure
// transition. A second-factor request is a distinct signal, not an error.
func loginFailureEvent(err error) event {
	switch {
	case apierr.IsMFARequired(err):
		return event{kind: evSecondFactorNeeded}
	case apierr.IsInvalidCredentials(err):
		return event{kind: evLoginFailure, message: msgInvalidCredentials}
	case apierr.IsAccountLocked(err):
		return event{kind: evLoginFailure, message: msgAccountLocked}
	default:
		msg := msgGenericFailure
		if e, ok := apierr.As(err); ok && e.Message != "" {
			msg = e.Message
		}
		return event{kind: evLoginFailure, message: msg}
	}
}

// Logout resets the session. Remote invalidation is attempted best-effort;
// its failure never blocks the local reset, so the session can never be
// stuck authenticated behind a failing server. Calling Logout while already
// Anonymous leaves the state unchanged.
func (s *Store) Logout(ctx context.Context) {
	if err := s.gateway.Logout(ctx); err != nil {
		s.log.WarnContext(ctx, "remote session invalidation failed", slog.Any("error", err))
	}
	s.dispatch(event{kind: evLogout})
}

// RefreshUser re-fetches the identity as a background consistency check.
// Only callable while authenticated. Any failure is treated as session
// invalidation: the session resets silently with no error surfaced.
func (s *Store) RefreshUser(ctx context.Context) error {
	if !s.Snapshot().IsAuthenticated {
		return ErrNotAuthenticated
	}
	user, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		s.dispatch(event{kind: evLogout})
		return nil
	}
	s.dispatch(event{kind: evSetUser, user: user})
	return nil
}

// ClearError dismisses the last failure message.
func (s *Store) ClearError() {
	s.dispatch(event{kind: evClearError})
}

// Expire forces the session back to Anonymous. The gateway client calls it
// through its auth-expiry hook after the server rejected the credential and
// the persisted slot was erased.
func (s *Store) Expire() {
	s.dispatch(event{kind: evLogout})
}
