package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

func TestResolveSessionIdentityFromBearerHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	require.Equal(t, "abc123", ResolveSessionIdentity(r))
}

func TestResolveSessionIdentityFromBareHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "abc123")

	require.Equal(t, "abc123", ResolveSessionIdentity(r))
}

func TestResolveSessionIdentityFromCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: domain.SessionCookieName, Value: "cookie-id"})

	require.Equal(t, "cookie-id", ResolveSessionIdentity(r))
}

func TestResolveSessionIdentityHeaderWinsOverCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer header-id")
	r.AddCookie(&http.Cookie{Name: domain.SessionCookieName, Value: "cookie-id"})

	require.Equal(t, "header-id", ResolveSessionIdentity(r))
}

func TestResolveSessionIdentityAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.Equal(t, "", ResolveSessionIdentity(r))
}

func TestSessionIdentityMiddlewareStoresIdentityInContext(t *testing.T) {
	var got string
	h := SessionIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = domain.GetSessionIdentityFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, "abc123", got)
}

func TestSessionIdentityMiddlewarePassesThroughAnonymous(t *testing.T) {
	var got string
	called := false
	h := SessionIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		got = domain.GetSessionIdentityFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, called)
	require.Equal(t, "", got)
}
