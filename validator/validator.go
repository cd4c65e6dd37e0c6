package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
	"github.com/JacobTheEvans/swagger-validator-middleware/schema"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
)

// Validator validates requests against a loaded contract.
// It is immutable after New and safe for concurrent use.
//
//	doc, _ := loader.Load("swagger.yaml")
//	v, err := validator.New(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := v.Validate(&validator.Request{
//	    Method:       "GET",
//	    RoutePattern: "/v1/pets/:id",
//	    Params:       map[string]any{"id": "42"},
//	})
type Validator struct {
	doc    *schema.Document
	routes *routeTable
	paths  *pathMatcherSet

	style      PlaceholderStyle
	logger     loader.Logger
	skipQuery  bool
	skipParams bool
	skipBody   bool
}

// New builds a Validator for doc, precompiling its route table.
func New(doc *schema.Document, opts ...Option) (*Validator, error) {
	if doc == nil {
		return nil, fmt.Errorf("validator: document cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	templates := make([]string, 0, len(doc.Paths))
	for template := range doc.Paths {
		templates = append(templates, template)
	}
	sort.Strings(templates)

	return &Validator{
		doc:        doc,
		routes:     newRouteTable(doc, cfg.style),
		paths:      newPathMatcherSet(doc.BasePath, templates, cfg.logger),
		style:      cfg.style,
		logger:     cfg.logger,
		skipQuery:  cfg.skipQuery,
		skipParams: cfg.skipParams,
		skipBody:   cfg.skipBody,
	}, nil
}

// Document returns the contract the validator was built from.
func (v *Validator) Document() *schema.Document {
	return v.doc
}

// PlaceholderStyle returns the style route patterns are expected in.
func (v *Validator) PlaceholderStyle() PlaceholderStyle {
	return v.style
}

// SkipsBodyValidation reports whether the validator was built with
// WithSkipBodyValidation(true).
func (v *Validator) SkipsBodyValidation() bool {
	return v.skipBody
}

// Resolve returns the operation for a host route pattern and method.
// It fails with a RouteNotFound ValidationError when nothing matches exactly.
func (v *Validator) Resolve(pattern, method string) (*schema.Operation, error) {
	return v.routes.resolve(pattern, method)
}

// Validate resolves the route, then checks the query, the path parameters
// and the body, in that order. The first violation aborts validation and is
// returned as a *valerrors.ValidationError.
func (v *Validator) Validate(req *Request) (*Result, error) {
	if req == nil {
		return nil, fmt.Errorf("validator: request cannot be nil")
	}
	result, err := v.validate(req)
	if err != nil {
		v.logRejection(req, err)
		return nil, err
	}
	return result, nil
}

func (v *Validator) validate(req *Request) (*Result, error) {
	op, err := v.routes.resolve(req.RoutePattern, req.Method)
	if err != nil {
		return nil, err
	}
	result := &Result{Operation: op}

	if v.skipQuery {
		result.Query = req.Query
	} else if result.Query, err = ValidateQuery(req.Query, op.ParametersIn(schema.InQuery)); err != nil {
		return nil, err
	}

	if v.skipParams {
		result.Params = req.Params
	} else if result.Params, err = ValidateParams(req.Params, op.ParametersIn(schema.InPath)); err != nil {
		return nil, err
	}

	body, _ := req.Body.(map[string]any)
	if v.skipBody {
		result.Body = body
		result.RawBody = req.Body
	} else if result.Body, err = ValidateBody(body, op.BodySchema(), nil); err != nil {
		return nil, err
	}

	return result, nil
}

func (v *Validator) logRejection(req *Request, err error) {
	var verr *valerrors.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	v.logger.Debug("rejected request",
		"method", req.Method,
		"route", req.RoutePattern,
		"kind", string(verr.Kind),
		"path", verr.PathString(),
	)
}

// MatchPath maps a concrete request path (e.g. "/v1/pets/42") to its host
// route pattern and extracted path parameters. Literal segments win over
// parameters when several templates match.
func (v *Validator) MatchPath(path string) (pattern string, params map[string]string, found bool) {
	template, params, found := v.paths.match(path)
	if !found {
		return "", nil, false
	}
	return RewriteTemplate(v.doc.BasePath, template, v.style), params, true
}

// Routes returns the route table sorted by pattern, then method.
func (v *Validator) Routes() []Route {
	var routes []Route
	for _, pattern := range v.routes.patterns {
		for _, op := range v.routes.byPattern[pattern].methods {
			routes = append(routes, Route{
				Method:    strings.ToUpper(op.Method),
				Pattern:   pattern,
				Operation: op,
			})
		}
	}
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}
