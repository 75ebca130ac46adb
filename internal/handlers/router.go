package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Illia-Kh/Landing-Page-Design-sub001/internal/httpx"
)

// RouteRegistrar registers a set of routes against the provided router.
type RouteRegistrar func(r chi.Router)

type routerConfig struct {
	apiPrefix   string
	middlewares []func(http.Handler) http.Handler
	health      *HealthHandlers
	assets      http.Handler
	notFound    http.HandlerFunc

	site RouteRegistrar
	api  RouteRegistrar
}

// Option customises the router configuration before construction.
type Option func(*routerConfig)

const (
	defaultAPIPrefix  = "/api"
	defaultTimeout    = 30 * time.Second
	errorNotFoundCode = "Not found"
)

// NewRouter constructs the chi router with shared middleware, the health
// check, static assets, the JSON API group and the localized site.
func NewRouter(opts ...Option) chi.Router {
	cfg := routerConfig{
		apiPrefix: defaultAPIPrefix,
		middlewares: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Timeout(defaultTimeout),
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()

	if cfg.health == nil {
		cfg.health = NewHealthHandlers()
	}

	for _, mw := range cfg.middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	apiNotFound := func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError(errorNotFoundCode, "No route for "+req.URL.Path, http.StatusNotFound))
	}
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if cfg.notFound == nil || isAPIPath(req.URL.Path, cfg.apiPrefix) {
			apiNotFound(w, req)
			return
		}
		cfg.notFound(w, req)
	})

	r.Get("/healthz", cfg.health.Healthz)

	if cfg.assets != nil {
		r.Handle("/assets/*", http.StripPrefix("/assets", cfg.assets))
	}

	r.Route(cfg.apiPrefix, func(api chi.Router) {
		api.NotFound(apiNotFound)
		api.MethodNotAllowed(methodNotAllowed)
		if cfg.api != nil {
			cfg.api(api)
		}
	})

	if cfg.site != nil {
		r.Group(func(site chi.Router) {
			cfg.site(site)
		})
	}

	return r
}

func isAPIPath(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
}

// WithMiddlewares appends additional global middleware to the router.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithHealthHandlers overrides the handlers used for the /healthz endpoint.
func WithHealthHandlers(h *HealthHandlers) Option {
	return func(cfg *routerConfig) {
		cfg.health = h
	}
}

// WithAssets serves h under /assets/. The prefix is stripped before h runs.
func WithAssets(h http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.assets = h
	}
}

// WithNotFound renders unmatched non-API paths. Without it every miss gets
// the JSON envelope.
func WithNotFound(h http.HandlerFunc) Option {
	return func(cfg *routerConfig) {
		cfg.notFound = h
	}
}

// WithAPIRoutes configures the registrar mounted under /api.
func WithAPIRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) {
		cfg.api = reg
	}
}

// WithSiteRoutes configures the registrar for the localized HTML site.
func WithSiteRoutes(reg RouteRegistrar) Option {
	return func(cfg *routerConfig) {
		cfg.site = reg
	}
}
