package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, StoreMongo, cfg.TokenStore)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, 5*time.Second, cfg.StoreTimeout)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	require.Equal(t, "http://localhost:8080/auth/callback", cfg.RedirectURI())
}

func TestLoadRequiresGoogleCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_STORE", "dynamo")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRedisBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreRedis, cfg.TokenStore)
	require.Equal(t, "redis.internal:6379", cfg.RedisAddr)
	require.Equal(t, 3, cfg.RedisDB)
}

func TestLoadParsesCORSList(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORSAllowedOrigins)
}

func TestScopesExcludeKeep(t *testing.T) {
	for _, scope := range GoogleScopes {
		require.NotContains(t, scope, "keep")
	}
}
