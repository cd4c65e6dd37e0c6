// Package validator checks HTTP requests against a loaded API contract.
//
// Validation runs in four steps and stops at the first violation:
//
//  1. Route resolution: the route pattern already matched by the host router
//     (e.g. "/v1/pets/:id") and the HTTP method select a contract operation.
//     Contract templates are prefixed with the basePath and rewritten to the
//     host's placeholder style; the match is exact, the method case-insensitive.
//  2. Query: declared query parameters are optional; supplied ones are type
//     and enum checked. Undeclared keys are dropped.
//  3. Path parameters: every declared path parameter is mandatory.
//  4. Body: every declared property is mandatory and checked recursively
//     through arrays and nested objects; then the required list is checked.
//
// On success the Result carries sanitized copies of the query, parameters and
// body holding only declared names.
//
// # Types
//
// Kinds follow the contract's "type" keyword. The number kind also accepts
// strings that parse fully as a number ("42", "1.5e3"), and integer accepts
// strings that parse as an integral number. A property without a type
// accepts any value; an unknown type accepts none.
//
// # Errors
//
// Failures are *valerrors.ValidationError values carrying the kind, the
// request section and the field path:
//
//	_, err := v.Validate(req)
//	var verr *valerrors.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Println(verr.Kind, verr.PathString()) // InvalidEnum address/country
//	}
//
// # Concrete Paths
//
// Callers without a router can map a concrete URL path to its route pattern
// with MatchPath, which tries templates from most to least specific:
//
//	pattern, params, ok := v.MatchPath("/v1/pets/42") // "/v1/pets/:id", {"id": "42"}
package validator
