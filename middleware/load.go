package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/JacobTheEvans/swagger-validator-middleware/internal/httputil"
	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
)

// Pending is a middleware whose contract is still loading.
type Pending struct {
	done chan struct{}
	mw   *Middleware
	err  error
}

// Load reads the contract at path in the background and resolves to a
// Middleware once it is fully loaded and dereferenced. The load runs once
// and is never retried; a failure is logged at error level and reported by
// Wait as a *valerrors.SchemaLoadError.
//
// Install the middleware only after Wait returns:
//
//	mw, err := middleware.Load(ctx, "swagger.yaml").Wait(ctx)
//	if err != nil {
//	    mux.Handle("/", middleware.SchemaUnavailable())
//	    return
//	}
//	mux.Handle("GET /v1/pets/{id}", mw.Handler(getPet))
func Load(ctx context.Context, path string, opts ...Option) *Pending {
	p := &Pending{done: make(chan struct{})}

	cfg, err := applyOptions(opts...)
	if err != nil {
		p.err = err
		close(p.done)
		return p
	}

	go func() {
		defer close(p.done)
		if err := ctx.Err(); err != nil {
			p.err = err
			return
		}

		lopts := append([]loader.Option{
			loader.WithFilePath(path),
			loader.WithLogger(cfg.logger),
		}, cfg.loaderOpts...)
		doc, err := loader.LoadWithOptions(lopts...)
		if err != nil {
			cfg.logger.Error("failed to load API schema", "source", path, "error", err)
			p.err = err
			return
		}

		p.mw, p.err = fromDocument(doc, cfg)
		if p.err != nil {
			cfg.logger.Error("failed to build validator", "source", path, "error", p.err)
		}
	}()
	return p
}

// Done is closed when loading has finished, successfully or not.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until loading finishes or ctx is done.
func (p *Pending) Wait(ctx context.Context) (*Middleware, error) {
	select {
	case <-p.done:
		return p.mw, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Handler wraps next for use before loading completes. Until then requests
// get 503; after a failed load they get 500 with SchemaLoadMessage; after a
// successful load they are validated like Middleware.Handler.
func (p *Pending) Handler(next http.Handler) http.Handler {
	var (
		once      sync.Once
		validated http.Handler
	)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-p.done:
		default:
			httputil.WriteMessage(w, http.StatusServiceUnavailable, "API schema is still loading")
			return
		}
		if p.err != nil {
			httputil.WriteMessage(w, http.StatusInternalServerError, SchemaLoadMessage)
			return
		}
		once.Do(func() { validated = p.mw.Handler(next) })
		validated.ServeHTTP(w, r)
	})
}

// SchemaUnavailable answers every request with 500 {"message": SchemaLoadMessage}.
// The load failure itself is never sent to clients.
func SchemaUnavailable() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteMessage(w, http.StatusInternalServerError, SchemaLoadMessage)
	})
}
