package validator

import (
	"fmt"

	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
)

// Option is a functional option for configuring a Validator.
type Option func(*config) error

type config struct {
	style  PlaceholderStyle
	logger loader.Logger

	skipQuery  bool
	skipParams bool
	skipBody   bool
}

func defaultConfig() *config {
	return &config{
		style:  ColonPlaceholders,
		logger: loader.NopLogger{},
	}
}

// WithPlaceholderStyle sets how route patterns spell path parameters.
// Default is ColonPlaceholders.
func WithPlaceholderStyle(style PlaceholderStyle) Option {
	return func(c *config) error {
		switch style {
		case ColonPlaceholders, BracePlaceholders:
			c.style = style
			return nil
		default:
			return fmt.Errorf("validator: unknown placeholder style %d", int(style))
		}
	}
}

// WithLogger sets the logger used to report rejected requests at debug level.
func WithLogger(l loader.Logger) Option {
	return func(c *config) error {
		c.logger = loader.OrNop(l)
		return nil
	}
}

// WithSkipQueryValidation disables query checks. The sanitized query is
// then the supplied query unchanged.
func WithSkipQueryValidation(skip bool) Option {
	return func(c *config) error {
		c.skipQuery = skip
		return nil
	}
}

// WithSkipParamsValidation disables path parameter checks. The sanitized
// parameters are then the supplied parameters unchanged.
func WithSkipParamsValidation(skip bool) Option {
	return func(c *config) error {
		c.skipParams = skip
		return nil
	}
}

// WithSkipBodyValidation disables body checks. Result.Body then holds the
// supplied body when it is a JSON object, and Result.RawBody holds the
// supplied body whatever its shape.
func WithSkipBodyValidation(skip bool) Option {
	return func(c *config) error {
		c.skipBody = skip
		return nil
	}
}
