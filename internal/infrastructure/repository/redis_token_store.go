package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	"github.com/basak2005/Google-workspace-Integration/internal/ports"
)

const redisKeyPrefix = "oauth_tokens:"

// RedisTokenStore implements TokenStore on Redis for deployments that do
// not run MongoDB. Records are stored as JSON under oauth_tokens:<id>
// with no TTL; logout is the only reaper, matching the Mongo backend.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a new Redis token store.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

var _ ports.TokenStore = (*RedisTokenStore)(nil)

// Save upserts the credential record, preserving created_at on update.
func (s *RedisTokenStore) Save(ctx context.Context, rec *domain.CredentialRecord) error {
	cp := rec.Clone()
	cp.UpdatedAt = time.Now()
	if cp.CreatedAt.IsZero() {
		existing, err := s.Load(ctx, rec.SessionID)
		if err != nil {
			return err
		}
		if existing != nil {
			cp.CreatedAt = existing.CreatedAt
		} else {
			cp.CreatedAt = cp.UpdatedAt
		}
	}

	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+rec.SessionID, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: failed to save credentials: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Load retrieves the record for an identity, (nil, nil) when absent.
func (s *RedisTokenStore) Load(ctx context.Context, identity string) (*domain.CredentialRecord, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+identity).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load credentials: %v", domain.ErrStoreUnavailable, err)
	}

	var rec domain.CredentialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return &rec, nil
}

// Delete removes the record. Missing identities are not an error.
func (s *RedisTokenStore) Delete(ctx context.Context, identity string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+identity).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete credentials: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// ListIdentities scans the key space and returns identities with
// timestamps only.
func (s *RedisTokenStore) ListIdentities(ctx context.Context) ([]domain.SessionInfo, error) {
	var sessions []domain.SessionInfo

	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		identity := strings.TrimPrefix(iter.Val(), redisKeyPrefix)
		rec, err := s.Load(ctx, identity)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		sessions = append(sessions, domain.SessionInfo{
			SessionID: rec.SessionID,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to scan identities: %v", domain.ErrStoreUnavailable, err)
	}

	return sessions, nil
}
