package validator

import (
	"reflect"

	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
)

// ValidateBody checks body against the object schema obj and returns the
// sanitized body: exactly the declared properties, holding the supplied
// values. prefix is the field path of body within the request and is
// prepended to every reported error path.
//
// Every declared property must be present, whether or not it is listed in
// obj.Required. The required list is checked afterwards, so a name required
// but never declared also fails with MissingField.
//
// Array elements are checked one at a time against the item schema and the
// first bad element aborts validation; the array itself is copied to the
// result unchanged. Nested objects are checked recursively and also copied
// as supplied, undeclared nested keys included.
func ValidateBody(body map[string]any, obj *schema.Schema, prefix []string) (map[string]any, error) {
	if body == nil {
		body = map[string]any{}
	}
	if obj == nil {
		obj = schema.Empty()
	}

	out := make(map[string]any, len(obj.Properties))
	for _, name := range obj.PropertyNames() {
		prop := obj.Properties[name]
		value, ok := body[name]

		f := field{section: valerrors.SectionBody, path: appendPath(prefix, name)}
		if err := checkPresent(f, value, ok); err != nil {
			return nil, err
		}
		if prop == nil {
			out[name] = value
			continue
		}
		if err := checkType(f, value, prop.Kind); err != nil {
			return nil, err
		}
		if err := checkEnum(f, value, prop.Enum); err != nil {
			return nil, err
		}

		switch prop.Kind {
		case schema.KindArray:
			if prop.Items != nil {
				elemSchema := &schema.Schema{Properties: map[string]*schema.Schema{name: prop.Items}}
				for _, elem := range elements(value) {
					if _, err := ValidateBody(map[string]any{name: elem}, elemSchema, prefix); err != nil {
						return nil, err
					}
				}
			}
		case schema.KindObject:
			if _, err := ValidateBody(value.(map[string]any), prop, f.path); err != nil {
				return nil, err
			}
		}

		out[name] = value
	}

	if err := checkRequired(field{section: valerrors.SectionBody, path: prefix}, out, obj.Required); err != nil {
		return nil, err
	}
	return out, nil
}

// elements returns the members of an array value.
func elements(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
