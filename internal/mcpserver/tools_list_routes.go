package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
)

type listRoutesInput struct {
	Contract contractInput `json:"contract"           jsonschema:"The Swagger contract to list routes from"`
	Method   string        `json:"method,omitempty"   jsonschema:"Only list routes for this HTTP method (case-insensitive)"`
	Limit    int           `json:"limit,omitempty"    jsonschema:"Maximum number of routes to return (default 100)"`
	Offset   int           `json:"offset,omitempty"   jsonschema:"Skip the first N routes (for pagination)"`
}

type routeSummary struct {
	Method      string `json:"method"`
	Pattern     string `json:"pattern"`
	Template    string `json:"template"`
	OperationID string `json:"operation_id,omitempty"`
	QueryParams int    `json:"query_params"`
	PathParams  int    `json:"path_params"`
	HasBody     bool   `json:"has_body"`
}

type listRoutesOutput struct {
	BasePath string         `json:"base_path,omitempty"`
	Total    int            `json:"total"`
	Matched  int            `json:"matched"`
	Returned int            `json:"returned"`
	Routes   []routeSummary `json:"routes,omitempty"`
}

func handleListRoutes(_ context.Context, _ *mcp.CallToolRequest, input listRoutesInput) (*mcp.CallToolResult, listRoutesOutput, error) {
	v, err := input.Contract.resolve()
	if err != nil {
		return errResult(err), listRoutesOutput{}, nil
	}

	all := v.Routes()
	matched := all
	if input.Method != "" {
		matched = nil
		for _, r := range all {
			if strings.EqualFold(r.Method, input.Method) {
				matched = append(matched, r)
			}
		}
	}

	returned := paginate(matched, input.Offset, input.Limit)

	output := listRoutesOutput{
		BasePath: v.Document().BasePath,
		Total:    len(all),
		Matched:  len(matched),
		Returned: len(returned),
		Routes:   makeSlice[routeSummary](len(returned)),
	}
	for _, r := range returned {
		output.Routes = append(output.Routes, routeSummary{
			Method:      r.Method,
			Pattern:     r.Pattern,
			Template:    r.Operation.Template,
			OperationID: r.Operation.OperationID,
			QueryParams: len(r.Operation.ParametersIn(schema.InQuery)),
			PathParams:  len(r.Operation.ParametersIn(schema.InPath)),
			HasBody:     len(r.Operation.ParametersIn(schema.InBody)) > 0,
		})
	}

	return nil, output, nil
}
