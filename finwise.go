// Package finwise wires the FinWise API gateway client, the persisted
// credential slot and the authentication session store into one application
// facade.
//
// The facade owns the wiring the pieces cannot do alone: the gateway's
// auth-expiry hook forces the session back to Anonymous, and the session
// store reads the credential slot the gateway writes.
//
//	cfg := finwise.MustLoadConfig()
//	app, err := finwise.New(cfg)
//	if err != nil { ... }
//	app.Session.Bootstrap(ctx)
package finwise

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/finwise/finwise-go/pkg/apiclient"
	"github.com/finwise/finwise-go/pkg/authsession"
	"github.com/finwise/finwise-go/pkg/config"
	"github.com/finwise/finwise-go/pkg/credstore"
)

// Config holds the env-driven client settings.
type Config struct {
	// APIBaseURL roots every outbound call, e.g. "http://localhost:8080/api".
	APIBaseURL string `env:"FINWISE_API_URL" envDefault:"http://localhost:8080/api"`

	// Timeout is the fixed per-call deadline.
	Timeout time.Duration `env:"FINWISE_API_TIMEOUT" envDefault:"10s"`

	// CredentialFile is the persisted credential slot. Empty selects
	// <user config dir>/finwise/credential.
	CredentialFile string `env:"FINWISE_CREDENTIAL_FILE"`

	// CredentialKey is an optional hex-encoded 32-byte key enabling
	// encryption of the credential at rest.
	CredentialKey string `env:"FINWISE_CREDENTIAL_KEY"`
}

// MustLoadConfig reads the configuration from the environment, panicking on
// failure.
func MustLoadConfig() Config {
	var cfg Config
	config.MustLoad(&cfg)
	return cfg
}

// App bundles the wired client components.
type App struct {
	Client  *apiclient.Client
	Session *authsession.Store
}

// Option overrides parts of the default wiring.
type Option func(*settings)

type settings struct {
	log   *slog.Logger
	creds credstore.Store
}

// WithLogger sets the structured logger shared by all components.
func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCredentialStore replaces the default file-backed credential slot,
// e.g. with credstore.NewMemory for tests or a Redis slot for headless
// workers.
func WithCredentialStore(store credstore.Store) Option {
	return func(s *settings) {
		if store != nil {
			s.creds = store
		}
	}
}

// New builds the application facade from configuration.
func New(cfg Config, opts ...Option) (*App, error) {
	s := &settings{
		log: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)})),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.creds == nil {
		store, err := defaultCredentialStore(cfg)
		if err != nil {
			return nil, err
		}
		s.creds = store
	}

	client, err := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithCredentialStore(s.creds),
		apiclient.WithLogger(s.log),
	)
	if err != nil {
		return nil, err
	}

	session := authsession.New(client,
		authsession.WithCredentialStore(s.creds),
		authsession.WithLogger(s.log),
	)

	// An authentication-rejected response on any resource resets the
	// session before the in-flight call returns.
	client.OnAuthExpired(func(context.Context) {
		session.Expire()
	})
	return &App{Client: client, Session: session}, nil
}

func defaultCredentialStore(cfg Config) (credstore.Store, error) {
	path := cfg.CredentialFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve credential path: %w", err)
		}
		path = filepath.Join(dir, "finwise", "credential")
	}

	var opts []credstore.FileOption
	if cfg.CredentialKey != "" {
		key, err := hex.DecodeString(cfg.CredentialKey)
		if err != nil {
			return nil, fmt.Errorf("decode credential key: %w", err)
		}
		opts = append(opts, credstore.WithEncryptionKey(key))
	}
	return credstore.NewFile(path, opts...)
}
