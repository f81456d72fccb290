package application

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

type fakeExchanger struct {
	exchangeErr error
	gotCode     string
}

func (e *fakeExchanger) AuthCodeURL(state string) string {
	return "https://provider.example/auth?state=" + url.QueryEscape(state)
}

func (e *fakeExchanger) Exchange(_ context.Context, code string) (*domain.CredentialRecord, error) {
	e.gotCode = code
	if e.exchangeErr != nil {
		return nil, e.exchangeErr
	}
	return &domain.CredentialRecord{
		AccessToken:  "exchanged-token",
		RefreshToken: "exchanged-refresh",
	}, nil
}

func newFlow(t *testing.T, exchanger *fakeExchanger) (*OAuthFlowController, *CredentialManager) {
	t.Helper()
	manager := NewCredentialManager(newFakeStore(), &fakeRefresher{}, zerolog.Nop())
	return NewOAuthFlowController(manager, exchanger, "http://localhost:5173", zerolog.Nop()), manager
}

func TestBeginEmbedsIdentityAsState(t *testing.T) {
	flow, _ := newFlow(t, &fakeExchanger{})

	authURL, identity, err := flow.Begin(context.Background())
	require.NoError(t, err)
	require.Len(t, identity, 64)
	require.Contains(t, authURL, "state="+identity)
}

func TestBeginMintsDistinctIdentities(t *testing.T) {
	flow, _ := newFlow(t, &fakeExchanger{})

	_, id1, err := flow.Begin(context.Background())
	require.NoError(t, err)
	_, id2, err := flow.Begin(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)
}

func TestCompleteBindsRecordToStateIdentity(t *testing.T) {
	exchanger := &fakeExchanger{}
	flow, manager := newFlow(t, exchanger)

	redirect, err := flow.Complete(context.Background(), "the-code", "the-state")
	require.NoError(t, err)
	require.Equal(t, "the-code", exchanger.gotCode)
	require.True(t, strings.HasPrefix(redirect, "http://localhost:5173?session_id="))

	rec, err := manager.Get(context.Background(), "the-state")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "exchanged-token", rec.AccessToken)
	require.Equal(t, "the-state", rec.SessionID)
}

func TestCompleteMissingParamsFails(t *testing.T) {
	flow, _ := newFlow(t, &fakeExchanger{})

	_, err := flow.Complete(context.Background(), "", "state")
	require.ErrorIs(t, err, domain.ErrCallbackFailed)

	_, err = flow.Complete(context.Background(), "code", "")
	require.ErrorIs(t, err, domain.ErrCallbackFailed)
}

func TestCompleteExchangeFailure(t *testing.T) {
	exchanger := &fakeExchanger{exchangeErr: errors.New("invalid_grant")}
	flow, manager := newFlow(t, exchanger)

	_, err := flow.Complete(context.Background(), "bad-code", "the-state")
	require.ErrorIs(t, err, domain.ErrCallbackFailed)

	// No credential may exist for an identity whose flow failed.
	rec, err := manager.Get(context.Background(), "the-state")
	require.NoError(t, err)
	require.Nil(t, rec)
}
