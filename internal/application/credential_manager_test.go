package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
)

type fakeStore struct {
	mu      sync.Mutex
	records map[string]*domain.CredentialRecord
	loadErr error
	saveErr error
	saves   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*domain.CredentialRecord)}
}

func (s *fakeStore) Save(_ context.Context, rec *domain.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.records[rec.SessionID] = rec.Clone()
	return nil
}

func (s *fakeStore) Load(_ context.Context, identity string) (*domain.CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.records[identity].Clone(), nil
}

func (s *fakeStore) Delete(_ context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, identity)
	return nil
}

func (s *fakeStore) ListIdentities(_ context.Context) ([]domain.SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.SessionInfo
	for _, rec := range s.records {
		out = append(out, domain.SessionInfo{SessionID: rec.SessionID})
	}
	return out, nil
}

type fakeRefresher struct {
	calls  int32
	err    error
	delay  time.Duration
	result func(rec *domain.CredentialRecord) *domain.CredentialRecord
}

func (r *fakeRefresher) Refresh(_ context.Context, rec *domain.CredentialRecord) (*domain.CredentialRecord, error) {
	atomic.AddInt32(&r.calls, 1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.result != nil {
		return r.result(rec), nil
	}
	updated := rec.Clone()
	updated.AccessToken = "refreshed-token"
	exp := time.Now().Add(time.Hour)
	updated.ExpiresAt = &exp
	return updated, nil
}

func validRecord(identity string) *domain.CredentialRecord {
	exp := time.Now().Add(time.Hour)
	return &domain.CredentialRecord{
		SessionID:    identity,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    &exp,
	}
}

func expiredRecord(identity string) *domain.CredentialRecord {
	rec := validRecord(identity)
	exp := time.Now().Add(-time.Minute)
	rec.ExpiresAt = &exp
	return rec
}

func newManager(store *fakeStore, refresher *fakeRefresher) *CredentialManager {
	return NewCredentialManager(store, refresher, zerolog.Nop())
}

func TestGetUnknownIdentityReturnsNil(t *testing.T) {
	m := newManager(newFakeStore(), &fakeRefresher{})

	rec, err := m.Get(context.Background(), "nobody")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestGetEmptyIdentityReturnsNil(t *testing.T) {
	m := newManager(newFakeStore(), &fakeRefresher{})

	rec, err := m.Get(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestPutThenGetReturnsRecord(t *testing.T) {
	store := newFakeStore()
	m := newManager(store, &fakeRefresher{})

	require.NoError(t, m.Put(context.Background(), validRecord("abc")))

	rec, err := m.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "access-token", rec.AccessToken)
}

func TestPutWithoutIdentityFails(t *testing.T) {
	m := newManager(newFakeStore(), &fakeRefresher{})

	err := m.Put(context.Background(), &domain.CredentialRecord{AccessToken: "x"})
	require.Error(t, err)
}

func TestGetSurvivesRestartViaStore(t *testing.T) {
	store := newFakeStore()
	m1 := newManager(store, &fakeRefresher{})
	require.NoError(t, m1.Put(context.Background(), validRecord("abc")))

	// A fresh manager on the same store simulates a process restart.
	m2 := newManager(store, &fakeRefresher{})
	rec, err := m2.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "access-token", rec.AccessToken)
}

func TestDeleteRemovesRecordAndIsIdempotent(t *testing.T) {
	store := newFakeStore()
	m := newManager(store, &fakeRefresher{})
	require.NoError(t, m.Put(context.Background(), validRecord("abc")))

	require.NoError(t, m.Delete(context.Background(), "abc"))
	require.NoError(t, m.Delete(context.Background(), "abc"))

	rec, err := m.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestExpiredRecordIsRefreshedAndPersisted(t *testing.T) {
	store := newFakeStore()
	refresher := &fakeRefresher{}
	m := newManager(store, refresher)
	require.NoError(t, m.Put(context.Background(), expiredRecord("abc")))

	rec, err := m.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "refreshed-token", rec.AccessToken)
	require.False(t, rec.Expired(time.Now()))

	// The refreshed token must be durable, not cache-only.
	stored, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "refreshed-token", stored.AccessToken)
}

func TestRefreshFailureEvictsAndReturnsError(t *testing.T) {
	store := newFakeStore()
	refresher := &fakeRefresher{err: errors.New("invalid_grant")}
	m := newManager(store, refresher)
	require.NoError(t, m.Put(context.Background(), expiredRecord("abc")))

	rec, err := m.Get(context.Background(), "abc")
	require.ErrorIs(t, err, domain.ErrRefreshFailed)
	require.Nil(t, rec)
}

func TestExpiredWithoutRefreshTokenNoNetworkCall(t *testing.T) {
	store := newFakeStore()
	refresher := &fakeRefresher{}
	m := newManager(store, refresher)

	rec := expiredRecord("abc")
	rec.RefreshToken = ""
	require.NoError(t, m.Put(context.Background(), rec))

	got, err := m.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, int32(0), atomic.LoadInt32(&refresher.calls))
}

func TestConcurrentRefreshCollapsesToOneCall(t *testing.T) {
	store := newFakeStore()
	refresher := &fakeRefresher{delay: 50 * time.Millisecond}
	m := newManager(store, refresher)
	require.NoError(t, m.Put(context.Background(), expiredRecord("abc")))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := m.Get(context.Background(), "abc")
			require.NoError(t, err)
			require.NotNil(t, rec)
			require.Equal(t, "refreshed-token", rec.AccessToken)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&refresher.calls))
}

func TestStoreFailureSurfacesError(t *testing.T) {
	store := newFakeStore()
	store.loadErr = domain.ErrStoreUnavailable
	m := newManager(store, &fakeRefresher{})

	_, err := m.Get(context.Background(), "abc")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestPutStoreFailureEvictsCache(t *testing.T) {
	store := newFakeStore()
	m := newManager(store, &fakeRefresher{})
	require.NoError(t, m.Put(context.Background(), validRecord("abc")))

	store.saveErr = domain.ErrStoreUnavailable
	err := m.Put(context.Background(), validRecord("abc"))
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	// Cache must not serve a record the store did not accept.
	store.saveErr = nil
	store.mu.Lock()
	delete(store.records, "abc")
	store.mu.Unlock()

	rec, err := m.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestCachedRecordIsNotSharedMutableState(t *testing.T) {
	store := newFakeStore()
	m := newManager(store, &fakeRefresher{})
	require.NoError(t, m.Put(context.Background(), validRecord("abc")))

	rec1, err := m.Get(context.Background(), "abc")
	require.NoError(t, err)
	rec1.AccessToken = "mutated"

	rec2, err := m.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "access-token", rec2.AccessToken)
}

func TestUnknownExpiryIsServedAsIs(t *testing.T) {
	store := newFakeStore()
	refresher := &fakeRefresher{}
	m := newManager(store, refresher)

	rec := validRecord("abc")
	rec.ExpiresAt = nil
	require.NoError(t, m.Put(context.Background(), rec))

	got, err := m.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, int32(0), atomic.LoadInt32(&refresher.calls))
}
