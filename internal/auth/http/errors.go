package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuthentication:
		return http.StatusUnauthorized
	case domain.KindAuthorization:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as {"error": msg}. Internal failures are logged here
// and nowhere else, and their cause never reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind == domain.KindInternal {
		slogx.FromContext(r.Context()).Error("request failed", slogx.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if errors.Is(de, domain.ErrTokenMissing) || errors.Is(de, domain.ErrTokenInvalid) {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+de.Message+`"`)
	}
	httpx.WriteError(w, statusFor(de.Kind), de.Message)
}

// decodeBody reads the JSON body into v, reporting malformed input as a
// validation failure.
func decodeBody(r *http.Request, v any) error {
	if err := httpx.DecodeJSON(r, v); err != nil {
		return domain.Validationf("request body must be valid JSON")
	}
	return nil
}
