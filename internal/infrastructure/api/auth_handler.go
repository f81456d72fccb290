package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

// AuthHandler serves the OAuth flow and session management endpoints.
type AuthHandler struct {
	flow       *application.OAuthFlowController
	manager    *application.CredentialManager
	adminToken string
	logger     zerolog.Logger
}

// NewAuthHandler creates the auth endpoints handler. An empty adminToken
// disables the session listing endpoint entirely.
func NewAuthHandler(flow *application.OAuthFlowController, manager *application.CredentialManager, adminToken string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		flow:       flow,
		manager:    manager,
		adminToken: adminToken,
		logger:     logger,
	}
}

// Login starts the OAuth flow. With ?redirect=false the auth URL and the
// new session identity are returned as JSON instead of a 302, for
// cross-origin clients that open the URL themselves. With ?force=true a
// new flow starts even when the request already carries a valid session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("force") != "true" {
		if identity := domain.GetSessionIdentityFromContext(ctx); identity != "" {
			if rec, err := h.manager.Get(ctx, identity); err == nil && rec != nil {
				writeJSON(w, http.StatusOK, map[string]any{
					"message":       "Already authenticated",
					"authenticated": true,
					"hint":          "Use /auth/login?force=true to re-authenticate",
				})
				return
			}
		}
	}

	authURL, identity, err := h.flow.Begin(ctx)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if r.URL.Query().Get("redirect") == "false" {
		writeJSON(w, http.StatusOK, map[string]string{
			"auth_url":   authURL,
			"session_id": identity,
		})
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback finalizes the flow after the provider redirects back. The
// session identity is taken from the echoed state parameter only.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	redirect, err := h.flow.Complete(r.Context(), code, state)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	// Same-origin browsers also get the identity as a cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, redirect, http.StatusFound)
}

// Status reports whether the request's session is authenticated.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := domain.GetSessionIdentityFromContext(ctx)
	if identity == "" {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	rec, err := h.manager.Get(ctx, identity)
	if err != nil || rec == nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	resp := map[string]any{"authenticated": true}
	if rec.ExpiresAt != nil {
		resp["expiry"] = rec.ExpiresAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Success is the post-login landing endpoint.
func (h *AuthHandler) Success(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	resp := map[string]any{
		"message":           "Authentication successful",
		"status":            "logged_in",
		"session_persisted": true,
	}
	if rec.ExpiresAt != nil {
		resp["token_expiry"] = rec.ExpiresAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Logout clears the session cookie and removes the credential record from
// both cache and store. Logging out an unknown session succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if identity := domain.GetSessionIdentityFromContext(ctx); identity != "" {
		if err := h.manager.Delete(ctx, identity); err != nil {
			writeError(w, h.logger, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// ListUsers returns all stored session identities with timestamps.
// Administrative and read-only; requires the configured admin token.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if h.adminToken == "" || r.Header.Get("X-Admin-Token") != h.adminToken {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin token required"})
		return
	}

	sessions, err := h.manager.ListSessions(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if sessions == nil {
		sessions = []domain.SessionInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}
