package validator

import (
	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
)

// Request is the part of an incoming call that gets validated.
type Request struct {
	// Method is the HTTP method, matched case-insensitively
	Method string
	// RoutePattern is the templated route resolved by the host router
	// (e.g. "/v1/pets/:id"), not the raw URL path
	RoutePattern string

	// Query holds query values: a string per key, or a []any of strings for repeated keys
	Query map[string]any
	// Params holds path parameter values by name
	Params map[string]any
	// Body is the decoded request body; anything but a JSON object counts as empty
	Body any
}

// Result is an accepted request in sanitized form.
type Result struct {
	// Operation is the contract operation the request resolved to
	Operation *schema.Operation

	Query  map[string]any
	Params map[string]any
	Body   map[string]any

	// RawBody is the body exactly as supplied, whatever its shape.
	// It is set only when body validation is skipped.
	RawBody any
}

// Route is one entry of a validator's route table.
type Route struct {
	// Method is the uppercase HTTP method
	Method string
	// Pattern is the host route pattern (basePath plus rewritten template)
	Pattern string
	// Operation is the matching contract operation
	Operation *schema.Operation
}
