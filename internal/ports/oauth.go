package ports

import (
	"context"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

// CodeExchanger builds provider authorization URLs and finalizes the OAuth
// flow by exchanging an authorization code for a credential record.
type CodeExchanger interface {
	// AuthCodeURL returns the provider authorization URL with the given
	// anti-forgery state embedded verbatim.
	AuthCodeURL(state string) string

	// Exchange swaps the authorization code for tokens and returns the
	// resulting record (without a session identity bound yet).
	Exchange(ctx context.Context, code string) (*domain.CredentialRecord, error)
}

// TokenRefresher exchanges a record's refresh token for a new access token
// at the provider's token endpoint. Refresh is idempotent at the provider,
// so a timed-out attempt needs no compensating rollback.
type TokenRefresher interface {
	Refresh(ctx context.Context, record *domain.CredentialRecord) (*domain.CredentialRecord, error)
}
