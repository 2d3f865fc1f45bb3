package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/greenpepperchocolate/english-phrase/pkg/jwtx"
	"github.com/greenpepperchocolate/english-phrase/pkg/slogx"
)

// AuthnMiddleware verifies the bearer access token and injects the identity
// into the request context. Refresh tokens are rejected here; they are only
// good at the refresh endpoint.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("jwt verify failed", "err", err)
				return
			}

			if err := claims.ValidateExpiry(); err != nil {
				writeBearerError(w, "token expired")
				return
			}

			if err := claims.ValidateUse(jwtx.UseAccess); err != nil {
				writeBearerError(w, "not an access token")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyIdentityID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyAnonymous, claims.Anonymous)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
