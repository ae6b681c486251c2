package authsession_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/finwise-go/pkg/apiclient"
	"github.com/finwise/finwise-go/pkg/apierr"
	"github.com/finwise/finwise-go/pkg/authsession"
	"github.com/finwise/finwise-go/pkg/credstore"
)

type fakeGateway struct {
	creds credstore.Store

	loginFn       func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error)
	logoutErr     error
	currentUserFn func(ctx context.Context) (*apiclient.User, error)

	loginCalls  int
	logoutCalls int
}

func (f *fakeGateway) Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
	f.loginCalls++
	resp, err := f.loginFn(ctx, req)
	if err == nil && f.creds != nil {
		// The real gateway persists the credential before returning.
		_ = f.creds.Save(ctx, resp.Token)
	}
	return resp, err
}

func (f *fakeGateway) Logout(ctx context.Context) error {
	f.logoutCalls++
	if f.creds != nil {
		_ = f.creds.Clear(ctx)
	}
	return f.logoutErr
}

func (f *fakeGateway) CurrentUser(ctx context.Context) (*apiclient.User, error) {
	return f.currentUserFn(ctx)
}

func demoUser() *apiclient.User {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &apiclient.User{
		ID:        1,
		Email:     "demo@x.com",
		FirstName: "Demo",
		LastName:  "User",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func acceptLogin(password string) func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
	return func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
		if req.Password != password {
			return nil, apierr.Server(apierr.CodeInvalidCredentials, "invalid credentials", 401)
		}
		return &apiclient.LoginResponse{Token: "tok-1", User: *demoUser()}, nil
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	creds := credstore.NewMemory()
	gw := &fakeGateway{creds: creds, loginFn: acceptLogin("secret")}
	store := authsession.New(gw, authsession.WithCredentialStore(creds))

	err := store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"})
	require.NoError(t, err)

	snap := store.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)
	assert.Empty(t, snap.Error)
	require.NotNil(t, snap.User)
	assert.Equal(t, "demo@x.com", snap.User.Email)
	assert.Equal(t, "tok-1", snap.Token)

	// The persisted slot holds exactly the issued token.
	stored, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", stored)
}

func TestLogin_WrongCredentials(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gw := &fakeGateway{loginFn: acceptLogin("secret")}
	store := authsession.New(gw)

	var transitions []authsession.Session
	sub := store.Subscribe(ctx)

	err := store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apierr.IsInvalidCredentials(err), "classified error is rethrown")

	for len(transitions) < 2 {
		transitions = append(transitions, <-sub)
	}
	assert.True(t, transitions[0].IsLoading, "first transition is the loading start")
	assert.Equal(t, "invalid email or password", transitions[1].Error)

	snap := store.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)
	assert.Nil(t, snap.User, "never a partially-authenticated state")
	assert.Empty(t, snap.Token)
	assert.Equal(t, "invalid email or password", snap.Error)
}

func TestLogin_AccountLocked(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gw := &fakeGateway{loginFn: func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
		return nil, apierr.Server(apierr.CodeAccountLocked, "account locked", 403)
	}}
	store := authsession.New(gw)

	err := store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"})
	require.Error(t, err)
	assert.True(t, apierr.IsAccountLocked(err))
	assert.Contains(t, store.Snapshot().Error, "locked")
}

func TestLogin_SecondFactorFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gw := &fakeGateway{loginFn: func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
		if req.MFAToken == "" {
			return nil, apierr.Validation(apierr.CodeMFARequired, "mfa token required", nil, 403)
		}
		if req.MFAToken != "123456" {
			return nil, apierr.Server(apierr.CodeInvalidCredentials, "invalid credentials", 401)
		}
		return &apiclient.LoginResponse{Token: "tok-2", User: *demoUser()}, nil
	}}
	store := authsession.New(gw)

	// First pass: valid credentials, server asks for the second factor.
	err := store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"})
	require.Error(t, err)
	assert.True(t, apierr.IsMFARequired(err), "re-prompt signal, not a hard failure")

	snap := store.Snapshot()
	assert.True(t, snap.AwaitingSecondFactor)
	assert.Empty(t, snap.Error, "awaiting second factor is not an error state")
	assert.False(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)

	// Second pass: same credentials with the code attached.
	err = store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret", MFACode: "123456"})
	require.NoError(t, err)

	snap = store.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.AwaitingSecondFactor)
	assert.Equal(t, 2, gw.loginCalls)
}

func TestLogin_LocalValidationShortCircuits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gw := &fakeGateway{loginFn: acceptLogin("secret")}
	store := authsession.New(gw)

	err := store.Login(ctx, authsession.Credentials{Email: "not-an-email", Password: "secret"})
	require.Error(t, err)
	assert.Zero(t, gw.loginCalls, "no network call for malformed input")
	assert.Equal(t, authsession.Session{}, store.Snapshot(), "state untouched")

	err = store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: ""})
	require.Error(t, err)
	assert.Zero(t, gw.loginCalls)
}

func TestLogin_NetworkFailureGenericMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gw := &fakeGateway{loginFn: func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
		return nil, apierr.Network(errors.New("dial tcp: connection refused"))
	}}
	store := authsession.New(gw)

	err := store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"})
	require.Error(t, err)
	assert.True(t, apierr.IsNetwork(err))

	snap := store.Snapshot()
	assert.NotContains(t, snap.Error, "dial tcp", "transport details never surface")
	assert.NotEmpty(t, snap.Error)
}

func TestLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	creds := credstore.NewMemory()
	gw := &fakeGateway{creds: creds, loginFn: acceptLogin("secret")}
	store := authsession.New(gw, authsession.WithCredentialStore(creds))

	require.NoError(t, store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"}))

	store.Logout(ctx)

	assert.Equal(t, authsession.Session{}, store.Snapshot(), "fresh anonymous session")
	stored, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "persisted slot cleared")
}

func TestLogout_RemoteFailureNeverBlocksReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	creds := credstore.NewMemory()
	gw := &fakeGateway{creds: creds, loginFn: acceptLogin("secret"), logoutErr: apierr.Server("", "boom", 500)}
	store := authsession.New(gw, authsession.WithCredentialStore(creds))

	require.NoError(t, store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"}))
	store.Logout(ctx)

	snap := store.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, snap.Error, "remote failure stays silent")
}

func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gw := &fakeGateway{loginFn: acceptLogin("secret")}
	store := authsession.New(gw)

	store.Logout(ctx)
	store.Logout(ctx)

	assert.Equal(t, authsession.Session{}, store.Snapshot())
	assert.Equal(t, 2, gw.logoutCalls, "remote invalidation still attempted each time")
}

func TestBootstrap_ValidToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	creds := credstore.NewMemory()
	require.NoError(t, creds.Save(ctx, "stored-token"))

	gw := &fakeGateway{
		creds:         creds,
		currentUserFn: func(ctx context.Context) (*apiclient.User, error) { return demoUser(), nil },
	}
	store := authsession.New(gw, authsession.WithCredentialStore(creds))

	store.Bootstrap(ctx)

	snap := store.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, "stored-token", snap.Token)
	require.NotNil(t, snap.User)
}

func TestBootstrap_RejectedTokenSilentReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	creds := credstore.NewMemory()
	require.NoError(t, creds.Save(ctx, "stale-token"))

	gw := &fakeGateway{
		creds: creds,
		currentUserFn: func(ctx context.Context) (*apiclient.User, error) {
			return nil, apierr.AuthExpired("", 401)
		},
	}
	store := authsession.New(gw, authsession.WithCredentialStore(creds))

	store.Bootstrap(ctx)

	snap := store.Snapshot()
	assert.Equal(t, authsession.Session{}, snap, "anonymous, no error message shown")

	stored, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "persisted slot cleared")
}

func TestBootstrap_EmptySlotNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	called := false
	gw := &fakeGateway{currentUserFn: func(ctx context.Context) (*apiclient.User, error) {
		called = true
		return demoUser(), nil
	}}
	store := authsession.New(gw)

	store.Bootstrap(ctx)

	assert.False(t, called, "no identity fetch without a stored credential")
	assert.Equal(t, authsession.Session{}, store.Snapshot())
}

func TestBootstrap_ReadsSlotExactlyOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	creds := credstore.NewMemory()
	require.NoError(t, creds.Save(ctx, "stored-token"))

	calls := 0
	gw := &fakeGateway{
		creds: creds,
		currentUserFn: func(ctx context.Context) (*apiclient.User, error) {
			calls++
			return demoUser(), nil
		},
	}
	store := authsession.New(gw, authsession.WithCredentialStore(creds))

	store.Bootstrap(ctx)
	store.Bootstrap(ctx)

	assert.Equal(t, 1, calls)
}

func TestRefreshUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		store := authsession.New(&fakeGateway{})
		assert.ErrorIs(t, store.RefreshUser(ctx), authsession.ErrNotAuthenticated)
	})

	t.Run("updates the identity", func(t *testing.T) {
		t.Parallel()
		gw := &fakeGateway{loginFn: acceptLogin("secret")}
		gw.currentUserFn = func(ctx context.Context) (*apiclient.User, error) {
			u := demoUser()
			u.FirstName = "Renamed"
			return u, nil
		}
		store := authsession.New(gw)
		require.NoError(t, store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"}))

		require.NoError(t, store.RefreshUser(ctx))
		assert.Equal(t, "Renamed", store.Snapshot().User.FirstName)
		assert.True(t, store.Snapshot().IsAuthenticated)
	})

	t.Run("failure resets silently", func(t *testing.T) {
		t.Parallel()
		gw := &fakeGateway{loginFn: acceptLogin("secret")}
		gw.currentUserFn = func(ctx context.Context) (*apiclient.User, error) {
			return nil, apierr.Server("", "boom", 500)
		}
		store := authsession.New(gw)
		require.NoError(t, store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"}))

		require.NoError(t, store.RefreshUser(ctx), "background check never surfaces an error")
		assert.Equal(t, authsession.Session{}, store.Snapshot())
	})
}

func TestExpire_ForcedReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gw := &fakeGateway{loginFn: acceptLogin("secret")}
	store := authsession.New(gw)
	require.NoError(t, store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"}))

	store.Expire()

	assert.Equal(t, authsession.Session{}, store.Snapshot())
}

func TestClearError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gw := &fakeGateway{loginFn: acceptLogin("secret")}
	store := authsession.New(gw)

	_ = store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "wrong"})
	require.NotEmpty(t, store.Snapshot().Error)

	store.ClearError()
	assert.Empty(t, store.Snapshot().Error)
}

func TestInvariant_AuthenticatedImpliesUserAndToken(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := &fakeGateway{loginFn: acceptLogin("secret")}
	gw.currentUserFn = func(ctx context.Context) (*apiclient.User, error) { return demoUser(), nil }
	store := authsession.New(gw, authsession.WithSubscriberBuffer(64))

	sub := store.Subscribe(ctx)

	_ = store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "wrong"})
	_ = store.Login(ctx, authsession.Credentials{Email: "demo@x.com", Password: "secret"})
	_ = store.RefreshUser(ctx)
	store.Logout(ctx)
	cancel()

	for snap := range sub {
		if snap.IsAuthenticated {
			require.NotNil(t, snap.User, "IsAuthenticated implies user present")
			require.NotEmpty(t, snap.Token, "IsAuthenticated implies credential present")
			assert.Empty(t, snap.Error)
		}
	}
}
