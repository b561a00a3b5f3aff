package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// ErrUnauthenticated is returned by a Verifier for a missing, unknown or
// expired token.
var ErrUnauthenticated = errors.New("httpx: unauthenticated")

// Verifier resolves a bearer token into the current user. The auth service
// itself and the SDK client both implement it, so product and order handlers
// can sit behind AuthnMiddleware without sharing any state with auth.
type Verifier interface {
	VerifyBearer(ctx context.Context, token string) (Principal, error)
}

// AuthnMiddleware rejects requests without a valid bearer token and stores the
// resolved Principal on the request context.
func AuthnMiddleware(v Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := BearerToken(r)
			if token == "" {
				writeBearerError(w, "token not provided")
				return
			}

			p, err := v.VerifyBearer(ctx, token)
			if err != nil {
				if !errors.Is(err, ErrUnauthenticated) {
					slogx.FromContext(ctx).Error("bearer verification failed", slogx.Err(err))
					WriteError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				writeBearerError(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
		})
	}
}

// RFC 6750 style error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, desc)
}
