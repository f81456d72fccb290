package google

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

// StaticTokenSource wraps a resolved credential record's access token for
// Google API clients. It is deliberately static: refresh is the
// CredentialManager's sole responsibility, and by the time a record
// reaches an adapter it has already been refreshed if needed.
func StaticTokenSource(rec *domain.CredentialRecord) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: rec.AccessToken,
		TokenType:   "Bearer",
	})
}

// AuthenticatedClient returns an *http.Client sending the record's access
// token, for Google surfaces without a discovery-generated Go client
// (Photos Library, userinfo).
func AuthenticatedClient(ctx context.Context, rec *domain.CredentialRecord) *http.Client {
	return oauth2.NewClient(ctx, StaticTokenSource(rec))
}
