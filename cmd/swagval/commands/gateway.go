package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	stdhttputil "net/http/httputil"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	swagval "github.com/JacobTheEvans/swagger-validator-middleware"
	"github.com/JacobTheEvans/swagger-validator-middleware/internal/config"
	"github.com/JacobTheEvans/swagger-validator-middleware/internal/httputil"
	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
	"github.com/JacobTheEvans/swagger-validator-middleware/middleware"
	"github.com/JacobTheEvans/swagger-validator-middleware/valerrors"
	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

// EchoResponse is what the gateway answers with when no upstream is configured.
type EchoResponse struct {
	OperationID string         `json:"operationId,omitempty"`
	Query       map[string]any `json:"query"`
	Params      map[string]any `json:"params"`
	Body        map[string]any `json:"body"`
}

// NewGateway builds the validating gateway router. Every contract operation
// is mounted on a chi router behind the validation middleware; accepted
// requests go to the upstream, or are echoed back in sanitized form when no
// upstream is configured.
//
// A contract that fails to load does not fail NewGateway: every request is
// answered with 500 instead, and the cause is logged once.
func NewGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	next, err := upstreamHandler(cfg.Server.Upstream, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	mw, err := middleware.Load(ctx, cfg.Contract.Path,
		middleware.WithRouteFunc(middleware.ChiRoute),
		middleware.WithLogger(loader.NewSlogAdapter(logger)),
		middleware.WithMaxBodySize(cfg.Validation.MaxBodySize),
		middleware.WithValidatorOptions(
			validator.WithSkipQueryValidation(cfg.Validation.SkipQuery),
			validator.WithSkipParamsValidation(cfg.Validation.SkipParams),
			validator.WithSkipBodyValidation(cfg.Validation.SkipBody),
		),
	).Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		r.Handle("/", middleware.SchemaUnavailable())
		r.Handle("/*", middleware.SchemaUnavailable())
		return r, nil
	}

	routes := mw.Validator().Routes()
	validated := r.With(mw.Handler)
	for _, route := range routes {
		validated.Method(route.Method, route.Pattern, next)
	}
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	logger.Info("gateway ready",
		"contract", cfg.Contract.Path,
		"routes", len(routes),
		"upstream", cfg.Server.Upstream,
	)
	return r, nil
}

// routeNotFound answers requests that match no contract operation.
func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteMessage(w, http.StatusBadRequest, valerrors.RouteNotFoundMessage)
}

// upstreamHandler returns a reverse proxy to upstream, or the echo handler
// when upstream is empty.
func upstreamHandler(upstream string, logger *slog.Logger) (http.Handler, error) {
	if upstream == "" {
		return http.HandlerFunc(echoHandler), nil
	}

	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}

	return &stdhttputil.ReverseProxy{
		Rewrite: func(pr *stdhttputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			if pr.Out.Header.Get("User-Agent") == "" {
				pr.Out.Header.Set("User-Agent", swagval.UserAgent())
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("upstream request failed", "method", r.Method, "path", r.URL.Path, "error", err)
			httputil.WriteMessage(w, http.StatusBadGateway, "Upstream service unavailable")
		},
	}, nil
}

func echoHandler(w http.ResponseWriter, r *http.Request) {
	result, ok := middleware.FromContext(r.Context())
	if !ok {
		httputil.WriteMessage(w, http.StatusInternalServerError, "Request was not validated")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, EchoResponse{
		OperationID: result.Operation.OperationID,
		Query:       result.Query,
		Params:      result.Params,
		Body:        result.Body,
	})
}
