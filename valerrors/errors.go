// Package valerrors provides structured error types for request validation.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), so callers can tell a malformed request apart from a contract
// that could not be loaded, and inspect exactly which field failed.
//
// # Error Categories
//
//   - ValidationError: a request violated the contract (missing field, wrong
//     type, value outside an enum, or no matching route)
//   - SchemaLoadError: the contract document could not be read, decoded or
//     dereferenced
//   - ReferenceError: a $ref could not be resolved, or is circular
//
// Validation errors are rendered to text only by Error(); the structured
// fields stay available for tests and for custom response formatting.
//
// # Usage with errors.Is
//
//	_, err := v.Validate(req)
//	if errors.Is(err, valerrors.ErrInvalidEnum) {
//	    // value outside the declared enum
//	}
//
//	var verr *valerrors.ValidationError
//	if errors.As(err, &verr) {
//	    log.Printf("%s failed at %s", verr.Kind, verr.PathString())
//	}
package valerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation matches every request validation failure.
	ErrValidation = errors.New("validation error")

	// ErrMissingField indicates a required value was not supplied.
	ErrMissingField = errors.New("missing field")

	// ErrTypeMismatch indicates a value does not match its declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidEnum indicates a value is not one of the declared enum members.
	ErrInvalidEnum = errors.New("invalid enum value")

	// ErrRouteNotFound indicates no contract operation matches the route and method.
	ErrRouteNotFound = errors.New("route not found")

	// ErrSchemaLoad indicates the contract document could not be loaded.
	ErrSchemaLoad = errors.New("schema load failure")

	// ErrReference indicates a $ref could not be resolved.
	ErrReference = errors.New("reference error")
)

// Kind identifies the category of a validation failure.
type Kind string

// Validation failure kinds.
const (
	KindMissingField  Kind = "MissingField"
	KindTypeMismatch  Kind = "TypeMismatch"
	KindInvalidEnum   Kind = "InvalidEnum"
	KindRouteNotFound Kind = "RouteNotFound"
)

// sentinel returns the sentinel error matching the kind.
func (k Kind) sentinel() error {
	switch k {
	case KindMissingField:
		return ErrMissingField
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindInvalidEnum:
		return ErrInvalidEnum
	case KindRouteNotFound:
		return ErrRouteNotFound
	default:
		return nil
	}
}

// Section identifies which part of the request a check applies to.
type Section string

// Request sections.
const (
	SectionQuery  Section = "query"
	SectionParams Section = "params"
	SectionBody   Section = "body"
)

// RouteNotFoundMessage is the client-facing message for unmatched routes.
const RouteNotFoundMessage = "Endpoint not found in server configuration"

// ValidationError describes the first contract violation found in a request.
type ValidationError struct {
	// Kind is the failure category
	Kind Kind
	// Section is the request part being validated (empty for route failures)
	Section Section
	// Path is the ordered sequence of field names leading to the failing value
	Path []string
	// Expected is the declared type for TypeMismatch failures
	Expected string
	// Allowed holds the declared enum members for InvalidEnum failures
	Allowed []any
	// Detail carries extra context (the method and route for RouteNotFound)
	Detail string
}

// PathString joins the field path with "/".
func (e *ValidationError) PathString() string {
	return strings.Join(e.Path, "/")
}

// Error returns the client-facing message for the failure.
func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("%s instance in %s is required and must be supplied", e.PathString(), e.Section)
	case KindTypeMismatch:
		return fmt.Sprintf("%s instance in %s must be of type: %s", e.PathString(), e.Section, e.Expected)
	case KindInvalidEnum:
		return fmt.Sprintf("%s must be one of the following [%s]", e.PathString(), joinValues(e.Allowed))
	case KindRouteNotFound:
		return RouteNotFoundMessage
	default:
		msg := "validation error"
		if len(e.Path) > 0 {
			msg += " at " + e.PathString()
		}
		if e.Detail != "" {
			msg += ": " + e.Detail
		}
		return msg
	}
}

// Is reports whether target matches this error.
// Matches ErrValidation and the sentinel for the error's Kind.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// SchemaLoadError represents a failure to load a contract document.
type SchemaLoadError struct {
	// Source is the file path or source identifier
	Source string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaLoadError) Error() string {
	msg := "schema load failure"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaLoadError) Is(target error) bool {
	return target == ErrSchemaLoad
}

// ReferenceError represents a $ref that could not be resolved.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// IsCircular is true if the reference points back into its own resolution chain
	IsCircular bool
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}
