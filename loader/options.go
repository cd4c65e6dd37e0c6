package loader

import (
	"fmt"
	"io"

	"github.com/JacobTheEvans/swagger-validator-middleware/internal/options"
)

const (
	// DefaultMaxRefDepth is the maximum length of a $ref chain.
	// Deeper chains are rejected even when they are not circular.
	DefaultMaxRefDepth = 100

	// DefaultMaxFileSize is the largest contract document accepted (10 MiB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// Option is a function that configures a load operation.
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation.
type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	sourceName  string
	logger      Logger
	maxRefDepth int
	maxFileSize int64
}

func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		logger:      NopLogger{},
		maxRefDepth: DefaultMaxRefDepth,
		maxFileSize: DefaultMaxFileSize,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne("loader",
		options.Source{Option: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Option: "WithReader", Set: cfg.reader != nil},
		options.Source{Option: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// source returns the name used to identify the input in errors and logs.
func (c *loadConfig) source() string {
	switch {
	case c.sourceName != "":
		return c.sourceName
	case c.filePath != nil:
		return *c.filePath
	case c.reader != nil:
		return "reader"
	default:
		return "bytes"
	}
}

// WithFilePath loads the contract from a YAML or JSON file.
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader loads the contract from r.
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return fmt.Errorf("loader: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes loads the contract from an in-memory document.
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return fmt.Errorf("loader: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithSourceName overrides the source identifier reported in errors and logs.
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.sourceName = name
		return nil
	}
}

// WithLogger sets the logger for load diagnostics. Default: NopLogger.
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = OrNop(l)
		return nil
	}
}

// WithMaxRefDepth sets the maximum $ref chain length.
// A value of 0 means use the default (100).
func WithMaxRefDepth(depth int) Option {
	return func(cfg *loadConfig) error {
		if depth < 0 {
			return fmt.Errorf("loader: maxRefDepth cannot be negative")
		}
		if depth == 0 {
			depth = DefaultMaxRefDepth
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithMaxFileSize sets the largest accepted document size in bytes.
// A value of 0 means use the default (10 MiB).
func WithMaxFileSize(n int64) Option {
	return func(cfg *loadConfig) error {
		if n < 0 {
			return fmt.Errorf("loader: maxFileSize cannot be negative")
		}
		if n == 0 {
			n = DefaultMaxFileSize
		}
		cfg.maxFileSize = n
		return nil
	}
}
