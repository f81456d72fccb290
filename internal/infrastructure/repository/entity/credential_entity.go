package entity

import (
	"time"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

// MongoCredentialDoc is the MongoDB document shape for one credential
// record, stored in the oauth_tokens collection keyed by session_id.
type MongoCredentialDoc struct {
	SessionID     string     `bson:"session_id"`
	AccessToken   string     `bson:"access_token"`
	RefreshToken  string     `bson:"refresh_token,omitempty"`
	TokenEndpoint string     `bson:"token_endpoint"`
	ClientID      string     `bson:"client_id"`
	ClientSecret  string     `bson:"client_secret"`
	Scopes        []string   `bson:"scopes"`
	ExpiresAt     *time.Time `bson:"expires_at,omitempty"`
	CreatedAt     time.Time  `bson:"created_at,omitempty"`
	UpdatedAt     time.Time  `bson:"updated_at"`
}

// MongoCredentialDocFromDomain converts a domain record to its document.
func MongoCredentialDocFromDomain(rec *domain.CredentialRecord) *MongoCredentialDoc {
	return &MongoCredentialDoc{
		SessionID:     rec.SessionID,
		AccessToken:   rec.AccessToken,
		RefreshToken:  rec.RefreshToken,
		TokenEndpoint: rec.TokenEndpoint,
		ClientID:      rec.ClientID,
		ClientSecret:  rec.ClientSecret,
		Scopes:        rec.Scopes,
		ExpiresAt:     rec.ExpiresAt,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

// ToDomain converts the document back to a domain record.
func (d *MongoCredentialDoc) ToDomain() *domain.CredentialRecord {
	return &domain.CredentialRecord{
		SessionID:     d.SessionID,
		AccessToken:   d.AccessToken,
		RefreshToken:  d.RefreshToken,
		TokenEndpoint: d.TokenEndpoint,
		ClientID:      d.ClientID,
		ClientSecret:  d.ClientSecret,
		Scopes:        d.Scopes,
		ExpiresAt:     d.ExpiresAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
