package httpx

import (
	"net/http"
	"strings"
)

// XAuthorizationHeader is accepted alongside Authorization. Some hosting
// proxies in front of the storefront strip the standard header.
const XAuthorizationHeader = "X-Authorization"

// BearerToken extracts the bearer credential from the request. The
// Authorization header wins over X-Authorization. A leading auth scheme such
// as "Bearer " is stripped, and a bare token is accepted as is. It returns ""
// when no token is present.
func BearerToken(r *http.Request) string {
	raw := r.Header.Get("Authorization")
	if strings.TrimSpace(raw) == "" {
		raw = r.Header.Get(XAuthorizationHeader)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if scheme, rest, ok := strings.Cut(raw, " "); ok {
		if strings.EqualFold(scheme, "Bearer") || strings.EqualFold(scheme, "Token") {
			return strings.TrimSpace(rest)
		}
		return ""
	}
	if strings.EqualFold(raw, "Bearer") {
		return ""
	}
	return raw
}
