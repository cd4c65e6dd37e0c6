package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RouteFunc extracts the matched route pattern and path parameter values
// from a request. It must report the pattern in the placeholder style the
// validator was built with. An empty pattern means no route matched.
type RouteFunc func(r *http.Request) (pattern string, params map[string]string)

// ChiRoute reads the route pattern and URL parameters set by a chi router.
//
// chi resolves the pattern only once routing is complete, so the middleware
// must be attached inline on the route rather than with Router.Use:
//
//	r.With(mw.Handler).Get("/v1/pets/{id}", getPet)
func ChiRoute(r *http.Request) (string, map[string]string) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "", nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return rctx.RoutePattern(), params
}

// ServeMuxRoute reads the pattern matched by a net/http ServeMux and its
// wildcard values. The method and host parts of the pattern are dropped,
// "{name...}" becomes "{name}" and a trailing "{$}" is removed, so
// "GET example.com/v1/pets/{id}" is reported as "/v1/pets/{id}".
//
// Wrap each registered handler:
//
//	mux.Handle("GET /v1/pets/{id}", mw.Handler(getPet))
func ServeMuxRoute(r *http.Request) (string, map[string]string) {
	pattern := r.Pattern
	if pattern == "" {
		return "", nil
	}
	if i := strings.IndexAny(pattern, " \t"); i >= 0 {
		pattern = strings.TrimLeft(pattern[i:], " \t")
	}
	if i := strings.IndexByte(pattern, '/'); i > 0 {
		pattern = pattern[i:]
	}
	pattern = strings.TrimSuffix(pattern, "{$}")

	var b strings.Builder
	params := make(map[string]string)
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '{' {
			b.WriteByte(pattern[i])
			continue
		}
		end := strings.IndexByte(pattern[i:], '}')
		if end == -1 {
			b.WriteString(pattern[i:])
			break
		}
		name := strings.TrimSuffix(pattern[i+1:i+end], "...")
		b.WriteString("{" + name + "}")
		params[name] = r.PathValue(name)
		i += end
	}
	return b.String(), params
}
