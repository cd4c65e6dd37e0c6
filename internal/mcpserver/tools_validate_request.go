package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

type validateRequestInput struct {
	Contract contractInput     `json:"contract"           jsonschema:"The Swagger contract to validate against"`
	Method   string            `json:"method"             jsonschema:"HTTP method of the request (e.g. GET)"`
	Route    string            `json:"route,omitempty"    jsonschema:"Route pattern as the host router reports it (e.g. /v1/pets/:id). Mutually exclusive with path."`
	Path     string            `json:"path,omitempty"     jsonschema:"Concrete request path (e.g. /v1/pets/42); path params are extracted from it. Mutually exclusive with route."`
	Query    map[string]any    `json:"query,omitempty"    jsonschema:"Query values: a string per key or an array of strings for repeated keys"`
	Params   map[string]string `json:"params,omitempty"   jsonschema:"Path parameter values by name (merged over those extracted from path)"`
	Body     any               `json:"body,omitempty"     jsonschema:"Decoded JSON request body"`
}

type validateRequestOutput struct {
	Valid       bool   `json:"valid"`
	Status      int    `json:"status"`
	Route       string `json:"route,omitempty"`
	OperationID string `json:"operation_id,omitempty"`

	Message  string   `json:"message,omitempty"`
	Kind     string   `json:"kind,omitempty"`
	Section  string   `json:"section,omitempty"`
	Field    string   `json:"field,omitempty"`
	Expected string   `json:"expected,omitempty"`
	Allowed  []string `json:"allowed,omitempty"`

	Query  map[string]any `json:"query,omitempty"`
	Params map[string]any `json:"params,omitempty"`
	Body   map[string]any `json:"body,omitempty"`
}

func handleValidateRequest(_ context.Context, _ *mcp.CallToolRequest, input validateRequestInput) (*mcp.CallToolResult, validateRequestOutput, error) {
	if input.Method == "" {
		return errResult(fmt.Errorf("method is required")), validateRequestOutput{}, nil
	}
	if (input.Route == "") == (input.Path == "") {
		return errResult(fmt.Errorf("exactly one of route or path must be provided")), validateRequestOutput{}, nil
	}

	v, err := input.Contract.resolve()
	if err != nil {
		return errResult(err), validateRequestOutput{}, nil
	}

	route := input.Route
	params := make(map[string]any, len(input.Params))
	if input.Path != "" {
		pattern, extracted, found := v.MatchPath(input.Path)
		if !found {
			return nil, rejected("", &valerrors.ValidationError{
				Kind:   valerrors.KindRouteNotFound,
				Detail: strings.ToUpper(input.Method) + " " + input.Path,
			}), nil
		}
		route = pattern
		for k, val := range extracted {
			params[k] = val
		}
	}
	for k, val := range input.Params {
		params[k] = val
	}

	result, err := v.Validate(&validator.Request{
		Method:       input.Method,
		RoutePattern: route,
		Query:        input.Query,
		Params:       params,
		Body:         input.Body,
	})
	if err != nil {
		var verr *valerrors.ValidationError
		if !errors.As(err, &verr) {
			return errResult(err), validateRequestOutput{}, nil
		}
		return nil, rejected(route, verr), nil
	}

	return nil, validateRequestOutput{
		Valid:       true,
		Status:      http.StatusOK,
		Route:       route,
		OperationID: result.Operation.OperationID,
		Query:       result.Query,
		Params:      result.Params,
		Body:        result.Body,
	}, nil
}

// rejected describes a failed validation the way the middleware answers it.
func rejected(route string, verr *valerrors.ValidationError) validateRequestOutput {
	out := validateRequestOutput{
		Status:   http.StatusBadRequest,
		Route:    route,
		Message:  verr.Error(),
		Kind:     string(verr.Kind),
		Section:  string(verr.Section),
		Field:    verr.PathString(),
		Expected: verr.Expected,
		Allowed:  makeSlice[string](len(verr.Allowed)),
	}
	for _, a := range verr.Allowed {
		out.Allowed = append(out.Allowed, fmt.Sprint(a))
	}
	return out
}
