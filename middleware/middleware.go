package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/JacobTheEvans/swagger-validator-middleware/internal/httputil"
	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

// SchemaLoadMessage is the client-facing message when the contract could not be loaded.
const SchemaLoadMessage = "Failed to load API schema"

// Middleware validates requests before they reach the wrapped handler.
type Middleware struct {
	v           *validator.Validator
	routeFunc   RouteFunc
	logger      loader.Logger
	maxBodySize int64
}

// New wraps an existing validator. The RouteFunc must report patterns in
// the validator's placeholder style; the default ServeMuxRoute and ChiRoute
// both report brace placeholders.
func New(v *validator.Validator, opts ...Option) (*Middleware, error) {
	if v == nil {
		return nil, fmt.Errorf("middleware: validator cannot be nil")
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newMiddleware(v, cfg), nil
}

// NewFromDocument builds a validator for doc using brace placeholders and
// any WithValidatorOptions, and wraps it.
func NewFromDocument(doc *schema.Document, opts ...Option) (*Middleware, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc, cfg)
}

func fromDocument(doc *schema.Document, cfg *config) (*Middleware, error) {
	vopts := append([]validator.Option{
		validator.WithPlaceholderStyle(validator.BracePlaceholders),
		validator.WithLogger(cfg.logger),
	}, cfg.validatorOpts...)

	v, err := validator.New(doc, vopts...)
	if err != nil {
		return nil, err
	}
	return newMiddleware(v, cfg), nil
}

func newMiddleware(v *validator.Validator, cfg *config) *Middleware {
	return &Middleware{
		v:           v,
		routeFunc:   cfg.routeFunc,
		logger:      cfg.logger,
		maxBodySize: cfg.maxBodySize,
	}
}

// Validator returns the underlying validator.
func (m *Middleware) Validator() *validator.Validator {
	return m.v
}

// Handler returns next wrapped with request validation.
//
// Rejected requests get 400 {"message": ...} and never reach next. Accepted
// requests reach next with the sanitized values in the context (see
// FromContext), the query string reduced to declared keys and, for JSON
// bodies, the body replaced by the sanitized JSON. When the validator skips
// body validation the JSON body is forwarded byte for byte.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pattern, params := m.routeFunc(r)

		if _, err := m.v.Resolve(pattern, r.Method); err != nil {
			m.reject(w, r, pattern, err.Error())
			return
		}

		body, raw, isJSON, err := m.readBody(r)
		if err != nil {
			m.reject(w, r, pattern, err.Error())
			return
		}

		result, err := m.v.Validate(&validator.Request{
			Method:       r.Method,
			RoutePattern: pattern,
			Query:        QueryValues(r.URL.Query()),
			Params:       stringMap(params),
			Body:         body,
		})
		if err != nil {
			httputil.WriteMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		if isJSON && !m.v.SkipsBodyValidation() {
			if raw, err = json.Marshal(result.Body); err != nil {
				m.logger.Error("encoding validated body", "error", err)
				httputil.WriteMessage(w, http.StatusInternalServerError, "Failed to forward validated request")
				return
			}
		}
		next.ServeHTTP(w, rewrite(r, result, isJSON, raw))
	})
}

// HandlerFunc is Handler for a handler function.
func (m *Middleware) HandlerFunc(next http.HandlerFunc) http.Handler {
	return m.Handler(next)
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, pattern, msg string) {
	m.logger.Debug("rejected request", "method", r.Method, "route", pattern, "reason", msg)
	httputil.WriteMessage(w, http.StatusBadRequest, msg)
}

// requestError is a body decoding failure; its text is sent to the client.
type requestError string

func (e requestError) Error() string { return string(e) }

const (
	errReadBody      requestError = "Failed to read request body"
	errMalformedJSON requestError = "Request body must be valid JSON"
)

// readBody decodes a JSON request body and returns it along with the raw
// bytes. Non-JSON bodies are left unread and reported as absent.
func (m *Middleware) readBody(r *http.Request) (body any, raw []byte, isJSON bool, err error) {
	if r.Body == nil || r.Body == http.NoBody || !httputil.IsJSONMediaType(r.Header.Get("Content-Type")) {
		return nil, nil, false, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, m.maxBodySize+1))
	_ = r.Body.Close()
	if err != nil {
		return nil, nil, true, errReadBody
	}
	if int64(len(data)) > m.maxBodySize {
		return nil, nil, true, requestError(fmt.Sprintf("Request body exceeds maximum size of %d bytes", m.maxBodySize))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, data, true, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, nil, true, errMalformedJSON
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, true, errMalformedJSON
	}
	return body, data, true, nil
}

// QueryValues converts parsed query values to validator input: one value
// becomes a string, repeated keys become a []any of strings.
func QueryValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
		case 1:
			out[key] = vals[0]
		default:
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v
			}
			out[key] = list
		}
	}
	return out
}

func stringMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// rewrite returns a shallow copy of r carrying the sanitized request.
// For JSON requests body replaces the request body.
func rewrite(r *http.Request, result *validator.Result, isJSON bool, body []byte) *http.Request {
	r = r.WithContext(context.WithValue(r.Context(), resultKey{}, result))

	u := *r.URL
	u.RawQuery = encodeQuery(result.Query)
	r.URL = &u

	if isJSON {
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.ContentLength = int64(len(body))
		r.Header = r.Header.Clone()
		r.Header.Set("Content-Length", strconv.Itoa(len(body)))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}
	return r
}

func encodeQuery(query map[string]any) string {
	if len(query) == 0 {
		return ""
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		switch v := query[k].(type) {
		case []any:
			for _, item := range v {
				values.Add(k, fmt.Sprint(item))
			}
		default:
			values.Add(k, fmt.Sprint(v))
		}
	}
	return values.Encode()
}
