package schema

import (
	"sort"
	"strings"
)

// Location is where a parameter is carried in the request.
type Location string

// Parameter locations. Only query, path and body parameters are validated;
// other locations found in a contract are kept but ignored.
const (
	InQuery  Location = "query"
	InPath   Location = "path"
	InBody   Location = "body"
	InHeader Location = "header"
	InForm   Location = "formData"
)

// Parameter is a single declared operation parameter.
// For body parameters Schema is the object schema of the whole body.
type Parameter struct {
	Name   string
	In     Location
	Schema *Schema
}

// Operation is the contract entry for one (route template, HTTP method) pair.
type Operation struct {
	// Template is the brace-templated route as declared (e.g. "/pets/{id}")
	Template string
	// Method is the lowercase HTTP method
	Method string
	// OperationID is the optional operationId from the contract
	OperationID string
	// Parameters preserves declaration order
	Parameters []*Parameter
}

// ParametersIn returns the parameters declared at the given location, in order.
func (o *Operation) ParametersIn(loc Location) []*Parameter {
	var out []*Parameter
	for _, p := range o.Parameters {
		if p != nil && p.In == loc {
			out = append(out, p)
		}
	}
	return out
}

// BodySchema returns the schema of the first body parameter, or an empty
// object schema when the operation declares none or the first body
// parameter has no schema. Later body parameters are ignored.
func (o *Operation) BodySchema() *Schema {
	for _, p := range o.Parameters {
		if p == nil || p.In != InBody {
			continue
		}
		if p.Schema == nil {
			return Empty()
		}
		return p.Schema
	}
	return Empty()
}

// Document is a fully dereferenced contract.
type Document struct {
	// BasePath prefixes every route template
	BasePath string
	// Paths maps route template to lowercase method to operation
	Paths map[string]map[string]*Operation
}

// Operation returns the operation declared for template and method, if any.
func (d *Document) Operation(template, method string) (*Operation, bool) {
	methods, ok := d.Paths[template]
	if !ok {
		return nil, false
	}
	op, ok := methods[strings.ToLower(method)]
	return op, ok
}

// Operations returns every operation sorted by template, then method.
func (d *Document) Operations() []*Operation {
	var ops []*Operation
	for _, methods := range d.Paths {
		for _, op := range methods {
			ops = append(ops, op)
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Template != ops[j].Template {
			return ops[i].Template < ops[j].Template
		}
		return ops[i].Method < ops[j].Method
	})
	return ops
}
