package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kotoed/denizen/internal/denizen/service"
	"github.com/kotoed/denizen/internal/denizen/store"
	"github.com/kotoed/denizen/pkg/httpx"
	"github.com/kotoed/denizen/pkg/slogx"

	_ "github.com/kotoed/denizen/api/denizen" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *httpx.Metrics

	store          store.Store
	DenizenService *service.DenizenService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	metrics *httpx.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      metrics,
	}

	// The metrics middleware must wrap the mux directly to see r.Pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.metrics.Middleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerDenizens()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Kotoed Denizen Service API
//	@version		0.1.0
//	@description	Denizen accounts and the profile editor backend: profile reads, partial profile updates and password changes.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerDenizens() {
	h := &DenizenHandler{DenizenService: r.DenizenService}

	// POST /denizens - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /v1/denizens",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/denizens/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleRead),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /v1/denizens/{id}/profile",
		httpx.Chain(http.HandlerFunc(h.HandleReadProfile),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("PUT /v1/denizens/{id}/profile",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateProfile),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// PUT /password - strict rate limit by IP + denizen id to slow down guessing
	r.Mux.Handle("PUT /v1/denizens/{id}/password",
		httpx.Chain(http.HandlerFunc(h.HandleUpdatePassword),
			httpx.RateLimitByIPAndPathValue(httpx.StrictLimit, "id"),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
