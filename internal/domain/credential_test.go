package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpired(t *testing.T) {
	now := time.Now()

	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	require.True(t, (&CredentialRecord{ExpiresAt: &past}).Expired(now))
	require.False(t, (&CredentialRecord{ExpiresAt: &future}).Expired(now))
	require.False(t, (&CredentialRecord{}).Expired(now), "unknown expiry is not expired")
}

func TestRefreshable(t *testing.T) {
	require.True(t, (&CredentialRecord{RefreshToken: "rt"}).Refreshable())
	require.False(t, (&CredentialRecord{}).Refreshable())
}

func TestCloneIsDeep(t *testing.T) {
	exp := time.Now()
	rec := &CredentialRecord{
		SessionID: "abc",
		Scopes:    []string{"a", "b"},
		ExpiresAt: &exp,
	}

	cp := rec.Clone()
	cp.Scopes[0] = "mutated"
	*cp.ExpiresAt = exp.Add(time.Hour)

	require.Equal(t, "a", rec.Scopes[0])
	require.True(t, rec.ExpiresAt.Equal(exp))
}

func TestCloneNilReceiver(t *testing.T) {
	var rec *CredentialRecord
	require.Nil(t, rec.Clone())
}

func TestNewSessionIdentity(t *testing.T) {
	id1, err := NewSessionIdentity()
	require.NoError(t, err)
	require.Len(t, id1, 64)

	id2, err := NewSessionIdentity()
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)
}
