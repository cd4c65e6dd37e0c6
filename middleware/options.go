package middleware

import (
	"fmt"

	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

// DefaultMaxBodySize is the largest JSON request body decoded (10 MiB).
const DefaultMaxBodySize = 10 * 1024 * 1024

// Option is a functional option for configuring the middleware.
type Option func(*config) error

type config struct {
	routeFunc     RouteFunc
	logger        loader.Logger
	maxBodySize   int64
	validatorOpts []validator.Option
	loaderOpts    []loader.Option
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		routeFunc:   ServeMuxRoute,
		logger:      loader.NopLogger{},
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithRouteFunc sets how the matched route is read from a request.
// Default is ServeMuxRoute.
func WithRouteFunc(fn RouteFunc) Option {
	return func(c *config) error {
		if fn == nil {
			return fmt.Errorf("middleware: route func cannot be nil")
		}
		c.routeFunc = fn
		return nil
	}
}

// WithLogger sets the logger for load failures and rejected requests.
// It is also handed to the loader and the validator.
func WithLogger(l loader.Logger) Option {
	return func(c *config) error {
		c.logger = loader.OrNop(l)
		return nil
	}
}

// WithMaxBodySize sets the largest JSON body decoded, in bytes.
// Larger bodies are rejected with 400. A value of 0 means use the default.
func WithMaxBodySize(n int64) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("middleware: maxBodySize cannot be negative")
		}
		if n == 0 {
			n = DefaultMaxBodySize
		}
		c.maxBodySize = n
		return nil
	}
}

// WithValidatorOptions passes options to validator.New when the middleware
// builds its own validator. They are applied after the middleware defaults,
// which select BracePlaceholders.
func WithValidatorOptions(opts ...validator.Option) Option {
	return func(c *config) error {
		c.validatorOpts = append(c.validatorOpts, opts...)
		return nil
	}
}

// WithLoaderOptions passes extra options to the loader used by Load.
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(c *config) error {
		c.loaderOpts = append(c.loaderOpts, opts...)
		return nil
	}
}
