package validator

import (
	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
)

// ValidateQuery checks the supplied query values against the declared query
// parameters and returns the sanitized query.
//
// Query parameters are optional: omitted ones are skipped. Supplied keys that
// are not declared never reach the result. A single string supplied for an
// array-declared parameter is presented as a one-element sequence, since a
// query string cannot tell the two apart.
func ValidateQuery(query map[string]any, params []*schema.Parameter) (map[string]any, error) {
	out := make(map[string]any, len(params))
	for _, p := range params {
		value, ok := query[p.Name]
		if !ok {
			continue
		}
		s := paramSchema(p)
		if s.Kind == schema.KindArray {
			if str, isStr := value.(string); isStr {
				value = []any{str}
			}
		}

		f := field{section: valerrors.SectionQuery, path: []string{p.Name}}
		if err := checkType(f, value, s.Kind); err != nil {
			return nil, err
		}
		if err := checkEnum(f, value, s.Enum); err != nil {
			return nil, err
		}
		out[p.Name] = value
	}
	return out, nil
}

// ValidateParams checks the supplied path parameters against the declared
// ones and returns the sanitized parameters. Every declared path parameter
// is mandatory.
func ValidateParams(params map[string]any, declared []*schema.Parameter) (map[string]any, error) {
	out := make(map[string]any, len(declared))
	for _, p := range declared {
		value, ok := params[p.Name]
		s := paramSchema(p)

		f := field{section: valerrors.SectionParams, path: []string{p.Name}}
		if err := checkPresent(f, value, ok); err != nil {
			return nil, err
		}
		if err := checkType(f, value, s.Kind); err != nil {
			return nil, err
		}
		if err := checkEnum(f, value, s.Enum); err != nil {
			return nil, err
		}
		out[p.Name] = value
	}
	return out, nil
}

func paramSchema(p *schema.Parameter) *schema.Schema {
	if p.Schema == nil {
		return &schema.Schema{}
	}
	return p.Schema
}
