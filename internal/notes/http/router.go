package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/notes/api/notes" // Swagger docs
	"github.com/aussiebroadwan/notes/internal/notes/service"
	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/internal/notes/telemetry"
	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/jwtx"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *telemetry.Metrics

	store       store.Store
	AuthService *service.AuthService
	NoteService *service.NoteService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      metrics,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerNotes()
	r.registerSystem()

	r.Mux.Handle("GET /metrics", r.metrics.Handler())
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Notes Service API
//	@version		0.1.0
//	@description	Personal notes behind short-lived JWT access tokens.
//	@description
//	@description				Access tokens live 15 minutes and are renewed with a 7 day refresh token via /auth/refresh. All tokens are HS256.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/notes
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern, timed under the pattern name.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	mws = append([]httpx.Middleware{r.metrics.Instrument(pattern)}, mws...)
	r.Mux.Handle(pattern, httpx.Chain(h, mws...))
}

// authn verifies the access token and counts every rejection.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.verifier, httpx.OnReject(func(_ *http.Request, err error) {
		r.metrics.TokenRejected(jwtx.KindAccess, err)
	}))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	r.handle("POST /auth/sign-in", http.HandlerFunc(h.HandleSignIn))
	r.handle("POST /auth/sign-up", http.HandlerFunc(h.HandleSignUp))
	r.handle("POST /auth/refresh", http.HandlerFunc(h.HandleRefresh))
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NoteService: r.NoteService}

	r.handle("GET /api/notes", http.HandlerFunc(h.HandleList), r.authn())
	r.handle("POST /api/notes", http.HandlerFunc(h.HandleCreate), r.authn())
	r.handle("GET /api/notes/{id}", http.HandlerFunc(h.HandleGet), r.authn())
	r.handle("PUT /api/notes/{id}", http.HandlerFunc(h.HandleUpdate), r.authn())
	r.handle("DELETE /api/notes/{id}", http.HandlerFunc(h.HandleDelete), r.authn())
}

func (r *Router) registerSystem() {
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.handle("GET /readyz", ReadyzHandler(r.buildVersion, r.store))
}
