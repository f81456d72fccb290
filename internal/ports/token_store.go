package ports

import (
	"context"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

// TokenStore defines the interface for durable credential persistence.
// One record per session identity; the store is the source of truth on
// cache miss.
type TokenStore interface {
	// Save upserts the record keyed by its session identity.
	Save(ctx context.Context, record *domain.CredentialRecord) error

	// Load returns the record for an identity, or (nil, nil) when no
	// record exists. Store unreachability is an error wrapping
	// domain.ErrStoreUnavailable, never a silent miss.
	Load(ctx context.Context, identity string) (*domain.CredentialRecord, error)

	// Delete removes the record. Deleting a non-existent identity is not
	// an error.
	Delete(ctx context.Context, identity string) error

	// ListIdentities returns all stored identities with timestamps.
	ListIdentities(ctx context.Context) ([]domain.SessionInfo, error)
}
