package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.7, cfg.Matching.ItemWeight)
	assert.Equal(t, 0.3, cfg.Matching.ProviderWeight)
	assert.Equal(t, 50, cfg.Matching.MinScore)
	assert.Equal(t, "root:root@tcp(localhost:3306)/spacematch?parseTime=true&charset=utf8mb4&loc=UTC", cfg.DSN())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("GRPC_PORT", "6000")
	t.Setenv("MATCH_ITEM_WEIGHT", "0.6")
	t.Setenv("MATCH_PROVIDER_WEIGHT", "0.4")
	t.Setenv("MATCH_REJECT_POLICY", "provider")
	t.Setenv("SWIPE_CACHE_TTL", "30s")
	t.Setenv("MYSQL_DSN", "u:p@tcp(db:3306)/x")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "6000", cfg.GRPC.Port)
	assert.InDelta(t, 0.6, cfg.Matching.ItemWeight, 1e-9)
	assert.Equal(t, "provider", cfg.Matching.RejectPolicy)
	assert.Equal(t, 30*time.Second, cfg.Cache.SwipeTTL)
	assert.Equal(t, "u:p@tcp(db:3306)/x", cfg.DSN())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feed:\n  default_limit: 5\nlog:\n  format: json\n"), 0o600))
	t.Setenv(PathEnvVar, path)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Feed.DefaultLimit)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := Default()
	cfg.Matching.ItemWeight = 0.9
	assert.ErrorContains(t, cfg.Validate(), "sum to 1.0")

	cfg = Default()
	cfg.Matching.RejectPolicy = "nobody"
	assert.Error(t, cfg.Validate())
}
