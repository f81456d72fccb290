package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// SessionCookieName is the cookie carrying the session identity for
// same-origin browser clients. Cross-origin clients send the identity in
// the Authorization header instead.
const SessionCookieName = "session_id"

// CredentialRecord is the durable OAuth token bundle for one session.
// Exactly one record exists per session identity; it is mutated in place
// on every refresh and deleted on logout.
type CredentialRecord struct {
	SessionID     string     `json:"session_id" bson:"session_id"`
	AccessToken   string     `json:"access_token" bson:"access_token"`
	RefreshToken  string     `json:"refresh_token,omitempty" bson:"refresh_token,omitempty"` // absent if offline access was denied
	TokenEndpoint string     `json:"token_endpoint" bson:"token_endpoint"`
	ClientID      string     `json:"client_id" bson:"client_id"`
	ClientSecret  string     `json:"client_secret" bson:"client_secret"`
	Scopes        []string   `json:"scopes" bson:"scopes"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"` // nil means unknown / never checked
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
}

// Expired reports whether the access token is past its expiry.
// An unknown expiry is treated as not expired; the vendor API will reject
// the token itself if it is stale.
func (r *CredentialRecord) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// Refreshable reports whether an expired record can be refreshed.
// An expired record without a refresh token is terminal-invalid and the
// caller must re-authenticate.
func (r *CredentialRecord) Refreshable() bool {
	return r.RefreshToken != ""
}

// Clone returns a deep copy so cached records are never shared mutable
// state across request handlers.
func (r *CredentialRecord) Clone() *CredentialRecord {
	if r == nil {
		return nil
	}
	cp := *r
	if r.ExpiresAt != nil {
		t := *r.ExpiresAt
		cp.ExpiresAt = &t
	}
	if r.Scopes != nil {
		cp.Scopes = append([]string(nil), r.Scopes...)
	}
	return &cp
}

// SessionInfo is the administrative view of a stored session: identity
// plus timestamps, no token material.
type SessionInfo struct {
	SessionID string    `json:"session_id" bson:"session_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewSessionIdentity generates an opaque capability string correlating a
// client to one credential record. 32 random bytes hex-encoded; the value
// doubles as the OAuth state parameter, so it must be unguessable.
func NewSessionIdentity() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session identity: %w", err)
	}
	return hex.EncodeToString(b), nil
}
