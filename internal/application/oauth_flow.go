package application

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	"github.com/basak2005/Google-workspace-Integration/internal/ports"
)

// OAuthFlowController drives one authentication attempt: minting a session
// identity, building the provider authorization URL, and finalizing the
// flow on provider callback.
//
// The session identity rides inside the OAuth state parameter. The
// provider callback is a fresh, unauthenticated request with no cookie
// continuity guaranteed, so state is the only channel the provider
// preserves verbatim that can carry the identity back.
type OAuthFlowController struct {
	manager     *CredentialManager
	exchanger   ports.CodeExchanger
	frontendURL string
	logger      zerolog.Logger
}

// NewOAuthFlowController creates a new flow controller.
func NewOAuthFlowController(manager *CredentialManager, exchanger ports.CodeExchanger, frontendURL string, logger zerolog.Logger) *OAuthFlowController {
	return &OAuthFlowController{
		manager:     manager,
		exchanger:   exchanger,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Begin generates a fresh session identity and the authorization URL that
// embeds it as the anti-forgery state parameter.
func (f *OAuthFlowController) Begin(ctx context.Context) (authURL string, identity string, err error) {
	identity, err = domain.NewSessionIdentity()
	if err != nil {
		return "", "", err
	}
	return f.exchanger.AuthCodeURL(identity), identity, nil
}

// Complete finalizes the flow: the provider redirected back with an
// authorization code and the echoed state. The state is the only trusted
// source of the session identity. Returns the frontend URL the browser
// should be redirected to, with the identity embedded so the client can
// store it.
//
// Exchange failure surfaces as domain.ErrCallbackFailed and the in-flight
// identity is abandoned; the flow is never retried automatically.
func (f *OAuthFlowController) Complete(ctx context.Context, code, state string) (string, error) {
	if code == "" || state == "" {
		return "", fmt.Errorf("%w: missing code or state", domain.ErrCallbackFailed)
	}

	rec, err := f.exchanger.Exchange(ctx, code)
	if err != nil {
		f.logger.Error().Err(err).Msg("Failed to exchange authorization code")
		return "", fmt.Errorf("%w: %v", domain.ErrCallbackFailed, err)
	}

	rec.SessionID = state
	if err := f.manager.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCallbackFailed, err)
	}

	f.logger.Info().Msg("OAuth flow completed, credentials stored")

	redirect := fmt.Sprintf("%s?session_id=%s", f.frontendURL, url.QueryEscape(state))
	return redirect, nil
}
