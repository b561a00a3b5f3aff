package httpx

import (
	"net/http"
	"strings"
)

// CORSConfig controls the headers written by CORS.
type CORSConfig struct {
	AllowedOrigin  string // "*" or a single origin
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultCORSConfig allows the admin panel and storefront, which are served
// from a different origin, to call every auth action.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigin:  "*",
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", XAuthorizationHeader, "X-Request-ID"},
	}
}

// CORS answers pre-flight requests with 204 and decorates every other
// response with the allow headers.
func CORS(cfg CORSConfig) Middleware {
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", cfg.AllowedOrigin)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Max-Age", "86400")
			if cfg.AllowedOrigin != "*" {
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
