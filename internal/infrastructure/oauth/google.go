// Package oauth implements the provider-facing half of the credential
// lifecycle: authorization URLs, code exchange, and token refresh against
// Google's OAuth2 endpoints.
package oauth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	"github.com/basak2005/Google-workspace-Integration/internal/ports"
)

// GoogleProvider implements CodeExchanger and TokenRefresher against the
// Google OAuth2 endpoints.
type GoogleProvider struct {
	config         *oauth2.Config
	refreshTimeout time.Duration
}

// NewGoogleProvider creates a provider client for the application's OAuth
// client. refreshTimeout bounds every outbound token-endpoint call.
func NewGoogleProvider(clientID, clientSecret, redirectURI string, scopes []string, refreshTimeout time.Duration) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		refreshTimeout: refreshTimeout,
	}
}

var (
	_ ports.CodeExchanger  = (*GoogleProvider)(nil)
	_ ports.TokenRefresher = (*GoogleProvider)(nil)
)

// AuthCodeURL builds the authorization URL. access_type=offline with
// prompt=consent forces refresh-token issuance on every login.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Exchange swaps the authorization code for tokens.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*domain.CredentialRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, p.refreshTimeout)
	defer cancel()

	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rec := &domain.CredentialRecord{
		AccessToken:   tok.AccessToken,
		RefreshToken:  tok.RefreshToken,
		TokenEndpoint: p.config.Endpoint.TokenURL,
		ClientID:      p.config.ClientID,
		ClientSecret:  p.config.ClientSecret,
		Scopes:        p.config.Scopes,
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		rec.ExpiresAt = &expiry
	}
	return rec, nil
}

// Refresh exchanges the record's refresh token for a new access token at
// the stored token endpoint. The provider may rotate the refresh token;
// if it does, the rotated one replaces the stored one.
func (p *GoogleProvider) Refresh(ctx context.Context, rec *domain.CredentialRecord) (*domain.CredentialRecord, error) {
	if rec.RefreshToken == "" {
		return nil, fmt.Errorf("credential record has no refresh token")
	}

	ctx, cancel := context.WithTimeout(ctx, p.refreshTimeout)
	defer cancel()

	cfg := &oauth2.Config{
		ClientID:     rec.ClientID,
		ClientSecret: rec.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: rec.TokenEndpoint},
	}
	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: rec.RefreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	updated := rec.Clone()
	updated.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		updated.RefreshToken = tok.RefreshToken
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		updated.ExpiresAt = &expiry
	} else {
		updated.ExpiresAt = nil
	}
	return updated, nil
}
