// Package schema defines the resolved, reference-free contract model that
// request validation runs against.
//
// A Document is produced once by the loader package and never mutated
// afterwards, so it is safe to share between goroutines.
//
// Value schemas form a small tagged-variant tree:
//
//	schema.Scalar(schema.KindString, "red", "green")     // enum-constrained string
//	schema.ArrayOf(schema.Scalar(schema.KindNumber))      // array of numbers
//	schema.ObjectOf(map[string]*schema.Schema{            // object with a required field
//	    "name": schema.Scalar(schema.KindString),
//	}, "name")
package schema

import "sort"

// Kind is the declared primitive type of a value.
type Kind string

// Primitive kinds. The empty Kind places no constraint on the value type.
const (
	KindAny     Kind = ""
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Known reports whether k is one of the kinds the validator understands.
func (k Kind) Known() bool {
	switch k {
	case KindAny, KindString, KindNumber, KindInteger, KindBoolean, KindArray, KindObject:
		return true
	default:
		return false
	}
}

// Schema describes one value in a request.
//
// Items is set only for KindArray; Properties and Required only for
// KindObject (or for a body schema whose type was left implicit).
type Schema struct {
	Kind       Kind
	Enum       []any
	Items      *Schema
	Properties map[string]*Schema
	Required   []string
}

// Scalar returns a schema for a single value of the given kind.
func Scalar(kind Kind, enum ...any) *Schema {
	return &Schema{Kind: kind, Enum: enum}
}

// ArrayOf returns an array schema whose elements follow items.
func ArrayOf(items *Schema, enum ...any) *Schema {
	return &Schema{Kind: KindArray, Items: items, Enum: enum}
}

// ObjectOf returns an object schema with the given properties and required names.
func ObjectOf(properties map[string]*Schema, required ...string) *Schema {
	if properties == nil {
		properties = map[string]*Schema{}
	}
	return &Schema{Kind: KindObject, Properties: properties, Required: required}
}

// Empty returns an object schema with no declared properties.
func Empty() *Schema {
	return ObjectOf(nil)
}

// PropertyNames returns the declared property names in sorted order.
// Validation walks properties in this order so the first reported
// failure is deterministic.
func (s *Schema) PropertyNames() []string {
	if s == nil || len(s.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
