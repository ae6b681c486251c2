// Package config loads environment variables into tagged structs, with a
// .env file picked up automatically for local development.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer indicates Load was called with a nil destination.
	ErrNilPointer = errors.New("config: destination cannot be nil")

	// ErrParsingConfig indicates the environment could not be parsed into
	// the destination struct.
	ErrParsingConfig = errors.New("config: failed to parse environment")
)

var loadDotEnv sync.Once

// Load parses environment variables into the provided struct based on its
// `env` field tags. The default .env file is loaded once per process; a
// missing file is not an error.
//
//	type ClientConfig struct {
//	    BaseURL string        `env:"FINWISE_API_URL,required"`
//	    Timeout time.Duration `env:"FINWISE_API_TIMEOUT" envDefault:"10s"`
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDotEnv.Do(func() {
		_ = godotenv.Load()
	})
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Used for configuration
// without which the process cannot start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
