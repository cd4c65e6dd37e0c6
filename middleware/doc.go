// Package middleware validates incoming net/http requests against an API
// contract before the wrapped handler runs.
//
// Each request is resolved to a contract operation by its matched route
// pattern and method, then its query, path parameters and JSON body are
// validated. Any violation is answered with 400 {"message": "..."} and the
// handler is not called. Accepted requests are forwarded with sanitized
// values: see FromContext.
//
// # Loading
//
// Load reads the contract in the background and resolves to a ready
// Middleware. Wait for it before installing routes:
//
//	mw, err := middleware.Load(ctx, "swagger.yaml",
//	    middleware.WithLogger(loader.NewSlogAdapter(slog.Default())),
//	).Wait(ctx)
//
// # Routers
//
// The route pattern comes from the host router. ServeMuxRoute (the default)
// reads net/http ServeMux patterns and ChiRoute reads chi patterns; both
// report brace placeholders ("/v1/pets/{id}"). Wrap each route handler, since
// the pattern is only known once the router has matched:
//
//	mux.Handle("GET /v1/pets/{id}", mw.Handler(getPet))
//
//	r := chi.NewRouter()
//	r.With(mw.Handler).Get("/v1/pets/{id}", getPet)
//
// Routers with colon placeholders supply a RouteFunc and a validator built
// with validator.ColonPlaceholders.
package middleware
