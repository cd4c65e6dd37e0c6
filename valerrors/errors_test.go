package valerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	t.Run("MissingField message", func(t *testing.T) {
		err := &ValidationError{Kind: KindMissingField, Section: SectionBody, Path: []string{"address", "city"}}
		want := "address/city instance in body is required and must be supplied"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("TypeMismatch message", func(t *testing.T) {
		err := &ValidationError{Kind: KindTypeMismatch, Section: SectionQuery, Path: []string{"limit"}, Expected: "number"}
		want := "limit instance in query must be of type: number"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("InvalidEnum message", func(t *testing.T) {
		err := &ValidationError{Kind: KindInvalidEnum, Section: SectionBody, Path: []string{"status"}, Allowed: []any{"active", "inactive"}}
		want := "status must be one of the following [active, inactive]"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("RouteNotFound message ignores detail", func(t *testing.T) {
		err := &ValidationError{Kind: KindRouteNotFound, Detail: "POST /v1/pets/:id"}
		if err.Error() != RouteNotFoundMessage {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("unknown kind falls back to generic message", func(t *testing.T) {
		err := &ValidationError{Path: []string{"a"}, Detail: "odd"}
		if err.Error() != "validation error at a: odd" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrValidation and its kind only", func(t *testing.T) {
		err := &ValidationError{Kind: KindInvalidEnum}
		if !errors.Is(err, ErrValidation) {
			t.Error("ValidationError should match ErrValidation")
		}
		if !errors.Is(err, ErrInvalidEnum) {
			t.Error("ValidationError should match ErrInvalidEnum")
		}
		if errors.Is(err, ErrMissingField) {
			t.Error("InvalidEnum should not match ErrMissingField")
		}
		if errors.Is(err, ErrSchemaLoad) {
			t.Error("ValidationError should not match ErrSchemaLoad")
		}
	})

	t.Run("As extracts ValidationError through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("validating: %w", &ValidationError{Kind: KindRouteNotFound})
		var verr *ValidationError
		if !errors.As(wrapped, &verr) {
			t.Fatal("errors.As should extract ValidationError")
		}
		if verr.Kind != KindRouteNotFound {
			t.Errorf("unexpected kind: %s", verr.Kind)
		}
		if !errors.Is(wrapped, ErrRouteNotFound) {
			t.Error("wrapped error should match ErrRouteNotFound")
		}
	})
}

func TestSchemaLoadError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &SchemaLoadError{Source: "api.yaml", Message: "malformed contract", Cause: errors.New("boom")}
		if err.Error() != "schema load failure in api.yaml: malformed contract: boom" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &SchemaLoadError{}
		if err.Error() != "schema load failure" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap exposes reference errors", func(t *testing.T) {
		err := &SchemaLoadError{Cause: &ReferenceError{Ref: "#/definitions/Pet", IsCircular: true}}
		if !errors.Is(err, ErrSchemaLoad) {
			t.Error("SchemaLoadError should match ErrSchemaLoad")
		}
		if !errors.Is(err, ErrReference) {
			t.Error("SchemaLoadError should expose ErrReference through Unwrap")
		}
		var refErr *ReferenceError
		if !errors.As(err, &refErr) || !refErr.IsCircular {
			t.Error("errors.As should extract circular ReferenceError")
		}
	})
}

func TestReferenceError(t *testing.T) {
	err := &ReferenceError{Ref: "#/definitions/Missing", Message: "not found"}
	if err.Error() != "reference error: #/definitions/Missing: not found" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	circ := &ReferenceError{Ref: "#/definitions/Node", IsCircular: true}
	if circ.Error() != "circular reference: #/definitions/Node" {
		t.Errorf("unexpected error message: %s", circ.Error())
	}
}
