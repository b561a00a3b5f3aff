package httpx

import "net/http"

// RequireAdmin must run after AuthnMiddleware. Callers whose current user row
// is not an admin get 403.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeBearerError(w, "token not provided")
				return
			}
			if !p.IsAdmin {
				WriteError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
