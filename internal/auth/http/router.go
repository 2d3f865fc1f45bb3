package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/service"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/greenpepperchocolate/english-phrase/pkg/httpx"
	"github.com/greenpepperchocolate/english-phrase/pkg/jwtx"
	"github.com/greenpepperchocolate/english-phrase/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	SignupService       *service.SignupService
	VerificationService *service.VerificationService
	SessionService      *service.SessionService
	AnonymousService    *service.AnonymousService
	ResetService        *service.ResetService
	MediaService        *service.MediaService
	AccountService      *service.AccountService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMedia()
	r.registerAccount()
	r.registerSystem()
}

func (r *Router) registerAuth() {
	// Public endpoints take credentials or mint identities, so they get
	// strict per-IP limits; verify-email is cheap and idempotent.
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(&SignupHandler{SignupService: r.SignupService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /auth/verify-email",
		httpx.Chain(&VerifyEmailHandler{VerificationService: r.VerificationService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /auth/login",
		httpx.Chain(&LoginHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(&RefreshHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /auth/anonymous",
		httpx.Chain(&AnonymousHandler{AnonymousService: r.AnonymousService, SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /auth/password-reset/request",
		httpx.Chain(&PasswordResetRequestHandler{ResetService: r.ResetService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /auth/password-reset/confirm",
		httpx.Chain(&PasswordResetConfirmHandler{ResetService: r.ResetService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerMedia() {
	r.Mux.Handle("POST /media/signed-url",
		httpx.Chain(&MediaSignedURLHandler{MediaService: r.MediaService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIdentity(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAccount() {
	r.Mux.Handle("DELETE /auth/account",
		httpx.Chain(&AccountDeleteHandler{AccountService: r.AccountService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIdentity(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /contact",
		httpx.Chain(&ContactHandler{AccountService: r.AccountService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIdentity(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
