// Package middleware holds the HTTP middleware chain pieces: session
// identity resolution, security headers, and request metrics.
package middleware

import (
	"net/http"
	"strings"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

// ResolveSessionIdentity extracts the session identity from a request.
// Precedence: the Authorization header (with an optional "Bearer " prefix
// stripped) wins over the session cookie; both absent yields "". Pure
// function, no side effects.
//
// The header path exists for cross-origin clients that cannot rely on
// third-party cookies; the cookie path serves same-origin browsers.
func ResolveSessionIdentity(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(domain.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// SessionIdentity resolves the identity once per request and stores it in
// the context for downstream handlers. Requests without an identity pass
// through; authorization is enforced at the handlers that need it.
func SessionIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity := ResolveSessionIdentity(r); identity != "" {
			r = r.WithContext(domain.WithSessionIdentity(r.Context(), identity))
		}
		next.ServeHTTP(w, r)
	})
}
