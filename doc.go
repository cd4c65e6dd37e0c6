// Package swagval validates HTTP requests against Swagger/OpenAPI style API
// contracts before they reach application handlers.
//
// # Overview
//
// The module is organized into small packages:
//
//   - loader: read a YAML or JSON contract and dereference its local $refs
//   - schema: the resolved contract model (operations, parameters, value schemas)
//   - validator: resolve a route to its operation and check query, path
//     parameters and body, fail-fast, producing sanitized values
//   - middleware: net/http middleware with ServeMux and chi adapters
//   - valerrors: structured errors usable with errors.Is and errors.As
//
// # Quick Start
//
//	mw, err := middleware.Load(ctx, "swagger.yaml").Wait(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mux := http.NewServeMux()
//	mux.Handle("GET /v1/pets/{id}", mw.Handler(getPet))
//
// Rejected requests receive 400 with a JSON body such as
//
//	{"message": "status must be one of the following [active, inactive]"}
//
// # Command Line
//
// The swagval command checks single requests against a contract, lists its
// routes, runs a validating gateway in front of an upstream service, and
// serves the same checks as MCP tools. See cmd/swagval.
package swagval
