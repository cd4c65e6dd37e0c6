package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestServeMuxRoute(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		values      map[string]string
		wantPattern string
		wantParams  map[string]string
	}{
		{
			name:        "method and path",
			pattern:     "GET /v1/pets/{id}",
			values:      map[string]string{"id": "3"},
			wantPattern: "/v1/pets/{id}",
			wantParams:  map[string]string{"id": "3"},
		},
		{
			name:        "host",
			pattern:     "POST example.com/v1/pets",
			wantPattern: "/v1/pets",
			wantParams:  map[string]string{},
		},
		{
			name:        "remainder wildcard",
			pattern:     "/files/{path...}",
			values:      map[string]string{"path": "a/b.txt"},
			wantPattern: "/files/{path}",
			wantParams:  map[string]string{"path": "a/b.txt"},
		},
		{
			name:        "exact match marker",
			pattern:     "GET /v1/{$}",
			wantPattern: "/v1/",
			wantParams:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Pattern = tt.pattern
			for k, v := range tt.values {
				req.SetPathValue(k, v)
			}

			pattern, params := ServeMuxRoute(req)
			assert.Equal(t, tt.wantPattern, pattern)
			assert.Equal(t, tt.wantParams, params)
		})
	}

	t.Run("unrouted request", func(t *testing.T) {
		pattern, params := ServeMuxRoute(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, pattern)
		assert.Nil(t, params)
	})
}

func TestChiRoute(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.RoutePatterns = []string{"/v1/pets/{id}"}
	rctx.URLParams.Add("id", "8")
	rctx.URLParams.Add("*", "rest")

	req := httptest.NewRequest(http.MethodGet, "/v1/pets/8", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	pattern, params := ChiRoute(req)
	assert.Equal(t, "/v1/pets/{id}", pattern)
	assert.Equal(t, map[string]string{"id": "8"}, params)

	pattern, params = ChiRoute(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, pattern)
	assert.Nil(t, params)
}

func TestQueryValues(t *testing.T) {
	got := QueryValues(map[string][]string{
		"one":   {"1"},
		"many":  {"a", "b"},
		"empty": {},
	})
	assert.Equal(t, map[string]any{"one": "1", "many": []any{"a", "b"}}, got)
}

func TestEncodeQuery(t *testing.T) {
	assert.Empty(t, encodeQuery(nil))
	assert.Equal(t, "a=1&b=x&b=y", encodeQuery(map[string]any{"b": []any{"x", "y"}, "a": "1"}))
}
