package domain

import "errors"

// Error taxonomy of the credential core. Everything is recovered at the
// HTTP boundary and converted to a uniform "not authenticated, please
// re-login" response; token internals never leave this package.
var (
	// ErrUnauthenticated means no identity was resolved, or the resolved
	// identity has no valid or refreshable record.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrRefreshFailed means the provider rejected a token refresh
	// (revoked or expired refresh token). The cache entry is evicted so
	// the next attempt re-queries the store.
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrCallbackFailed means the authorization-code exchange with the
	// provider failed. Never retried; the in-flight identity is abandoned.
	ErrCallbackFailed = errors.New("oauth callback failed")

	// ErrStoreUnavailable means the persistence layer is unreachable.
	// Operations depending on it fail closed, never as "no record exists".
	ErrStoreUnavailable = errors.New("token store unavailable")
)
