package middleware

import (
	"context"

	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

type resultKey struct{}

// FromContext returns the sanitized request stored by Handler.
func FromContext(ctx context.Context) (*validator.Result, bool) {
	result, ok := ctx.Value(resultKey{}).(*validator.Result)
	return result, ok
}
