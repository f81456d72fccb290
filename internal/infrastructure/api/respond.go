// Package api implements the REST boundary of the gateway: request
// decoding, credential resolution, and the error-to-status mapping that
// keeps token internals inside the credential core.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	googleinfra "github.com/basak2005/Google-workspace-Integration/internal/infrastructure/google"
)

const loginHint = "Not authenticated. Please login first at /auth/login"

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeUnauthenticated(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{
		Error: "not authenticated",
		Hint:  loginHint,
	})
}

// writeError converts credential-core and vendor errors to responses.
// Refresh failures and store outages fail closed as unauthenticated; the
// distinction lives in the logs, not in the response body.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrRefreshFailed):
		writeUnauthenticated(w)
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error().Err(err).Msg("Token store unavailable, failing closed")
		writeUnauthenticated(w)
	case errors.Is(err, domain.ErrCallbackFailed):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "authentication with provider failed"})
	case errors.Is(err, googleinfra.ErrUnauthorized):
		writeUnauthenticated(w)
	case errors.Is(err, googleinfra.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions for this Google API"})
	case errors.Is(err, googleinfra.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, googleinfra.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded, try again later"})
	default:
		logger.Error().Err(err).Msg("Request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// credential resolves the request's session identity to a live credential
// record, writing the 401 response itself when that fails. Handlers treat
// a false return as "response already sent".
func credential(ctx context.Context, w http.ResponseWriter, manager *application.CredentialManager, logger zerolog.Logger) (*domain.CredentialRecord, bool) {
	identity := domain.GetSessionIdentityFromContext(ctx)
	if identity == "" {
		writeUnauthenticated(w)
		return nil, false
	}

	rec, err := manager.Get(ctx, identity)
	if err != nil {
		writeError(w, logger, err)
		return nil, false
	}
	if rec == nil {
		writeUnauthenticated(w)
		return nil, false
	}
	return rec, true
}
