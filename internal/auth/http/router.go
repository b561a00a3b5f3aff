package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"

	_ "github.com/aussiebroadwan/storefront/api/auth" // Swagger docs
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	AuthService         *service.AuthService
	VerificationService *service.VerificationService
	BootstrapService    *service.BootstrapService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	cors httpx.CORSConfig,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cors),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerVerification()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront Authentication Service API
//	@version		0.1.0
//	@description	Session based authentication for the storefront admin and customer panels.
//	@description
//	@description				Tokens are opaque and valid for 30 days. Send them as "Authorization: Bearer {token}".
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/storefront
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := NewAuthHandler(r.AuthService)

	// Both /v1/auth/login and /v1/auth?action=login reach the same handler,
	// which checks the method per action.
	r.Mux.Handle("/v1/auth/{action}", h)
	r.Mux.Handle("/v1/auth", h)

	// Empty or nested actions, e.g. /v1/auth/ or /v1/auth/users/1.
	r.Mux.Handle("/v1/auth/", errorHandler(domain.ErrUnknownAction))
}

func (r *Router) registerVerification() {
	r.Mux.Handle("POST /v1/verification", &VerificationHandler{VerificationService: r.VerificationService})
	r.Mux.Handle("/v1/verification", errorHandler(domain.ErrMethodNotAllowed))
}

func (r *Router) registerBootstrap() {
	r.Mux.Handle("POST /v1/bootstrap", &BootstrapHandler{BootstrapService: r.BootstrapService})
	r.Mux.Handle("/v1/bootstrap", errorHandler(domain.ErrMethodNotAllowed))
}

// errorHandler answers every request with err in the usual JSON shape, for
// paths the mux would otherwise reject in plain text.
func errorHandler(err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, err)
	})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
