package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	"github.com/basak2005/Google-workspace-Integration/internal/ports"
)

var (
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credential_cache_lookups_total",
		Help: "Credential cache lookups by result.",
	}, []string{"result"})

	refreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credential_refreshes_total",
		Help: "Token refresh attempts by result.",
	}, []string{"result"})
)

// CredentialManager orchestrates credential lookup, expiry checking,
// refresh-on-demand, and persistence. It is the only component that
// mutates token state; service adapters never refresh on their own.
//
// The in-memory cache is owned by the instance and shared by all
// concurrent request handlers; the token store is the source of truth on
// cache miss. Concurrent refreshes of the same identity are collapsed
// into a single provider call per process.
type CredentialManager struct {
	store     ports.TokenStore
	refresher ports.TokenRefresher
	logger    zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*domain.CredentialRecord
	group singleflight.Group
}

// NewCredentialManager creates a manager backed by the given store and
// refresher.
func NewCredentialManager(store ports.TokenStore, refresher ports.TokenRefresher, logger zerolog.Logger) *CredentialManager {
	return &CredentialManager{
		store:     store,
		refresher: refresher,
		logger:    logger,
		cache:     make(map[string]*domain.CredentialRecord),
	}
}

// Get returns a live credential for the identity, refreshing it first if
// expired. Returns (nil, nil) when the identity is unknown or the record
// is terminal-invalid (expired without a refresh token); the caller must
// re-authenticate. A failed refresh evicts the cache entry and returns
// domain.ErrRefreshFailed rather than silently handing back a stale token.
func (m *CredentialManager) Get(ctx context.Context, identity string) (*domain.CredentialRecord, error) {
	if identity == "" {
		return nil, nil
	}

	rec := m.cached(identity)
	if rec != nil {
		cacheLookups.WithLabelValues("hit").Inc()
	} else {
		cacheLookups.WithLabelValues("miss").Inc()
		var err error
		rec, err = m.store.Load(ctx, identity)
		if err != nil {
			m.logger.Error().Err(err).Msg("Failed to load credentials from store")
			return nil, err
		}
		if rec == nil {
			return nil, nil
		}
	}

	if !rec.Expired(time.Now()) {
		m.setCache(rec)
		return rec, nil
	}

	if !rec.Refreshable() {
		// Terminal-invalid: expired and no refresh token. No network call.
		m.evict(identity)
		return nil, nil
	}

	refreshed, err := m.refresh(ctx, identity, rec)
	if err != nil {
		m.evict(identity)
		refreshes.WithLabelValues("failure").Inc()
		m.logger.Warn().Err(err).Msg("Token refresh failed, session must re-authenticate")
		return nil, fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err)
	}
	refreshes.WithLabelValues("success").Inc()
	return refreshed, nil
}

// refresh collapses concurrent refreshes of one identity into a single
// provider call. Callers that lost the race reuse the winner's record.
func (m *CredentialManager) refresh(ctx context.Context, identity string, rec *domain.CredentialRecord) (*domain.CredentialRecord, error) {
	v, err, _ := m.group.Do(identity, func() (interface{}, error) {
		// Another flight may have refreshed while this caller waited.
		if cached := m.cached(identity); cached != nil && !cached.Expired(time.Now()) {
			return cached, nil
		}

		updated, err := m.refresher.Refresh(ctx, rec)
		if err != nil {
			return nil, err
		}
		updated.SessionID = identity
		if err := m.Put(ctx, updated); err != nil {
			return nil, err
		}
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CredentialRecord), nil
}

// Put writes the record through to the store, then updates the cache.
// Store-then-cache ordering keeps the two convergent on the success path.
func (m *CredentialManager) Put(ctx context.Context, rec *domain.CredentialRecord) error {
	if rec.SessionID == "" {
		return fmt.Errorf("credential record has no session identity")
	}
	if err := m.store.Save(ctx, rec); err != nil {
		m.evict(rec.SessionID)
		return err
	}
	m.setCache(rec)
	return nil
}

// Delete removes the record from cache and store. Idempotent.
func (m *CredentialManager) Delete(ctx context.Context, identity string) error {
	m.evict(identity)
	return m.store.Delete(ctx, identity)
}

// ListSessions returns every stored identity with timestamps.
func (m *CredentialManager) ListSessions(ctx context.Context) ([]domain.SessionInfo, error) {
	return m.store.ListIdentities(ctx)
}

func (m *CredentialManager) cached(identity string) *domain.CredentialRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache[identity].Clone()
}

func (m *CredentialManager) setCache(rec *domain.CredentialRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[rec.SessionID] = rec.Clone()
}

func (m *CredentialManager) evict(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, identity)
}
