// Package logger builds configured slog.Logger instances for the client.
//
// Defaults favor an end-user tool: human-readable text at warn level, so the
// CLI stays quiet unless something goes wrong. Automation flips to JSON via
// configuration.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the log output encoding.
type Format string

const (
	// FormatText is human-readable output for interactive use.
	FormatText Format = "text"
	// FormatJSON is structured output for log aggregation.
	FormatJSON Format = "json"
)

// Config holds the env-driven logger settings.
type Config struct {
	Level  slog.Level `env:"FINWISE_LOG_LEVEL" envDefault:"warn"`
	Format Format     `env:"FINWISE_LOG_FORMAT" envDefault:"text"`
}

// Option configures logger creation.
type Option func(*config)

type config struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the output encoding. Invalid formats panic: a misconfigured
// logger should stop startup, not fail at the first log call.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatText, FormatJSON:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatText, FormatJSON))
		}
	}
}

// WithOutput sets the destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// New creates a configured logger.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelWarn,
		format: FormatText,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}
	var handler slog.Handler
	if cfg.format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}
	return slog.New(handler)
}

// NewFromConfig creates a logger from env-driven settings.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	base := []Option{WithLevel(cfg.Level)}
	if cfg.Format != "" {
		base = append(base, WithFormat(cfg.Format))
	}
	return New(append(base, opts...)...)
}
