package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DEDUCE_RULES", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Store, cfg.Store)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Empty(t, cfg.Rules)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(`
rules: ./catalog.yaml
max_sweeps: 50
store:
  backend: redis
  redis:
    addr: redis:6379
    prefix: "app:"
    ttl: 1h
http:
  port: "9090"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./catalog.yaml", cfg.Rules)
	assert.Equal(t, 50, cfg.MaxSweeps)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "app:", cfg.Store.Redis.Prefix)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "warn", cfg.LogLevel, "unset keys keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	require.NoError(t, os.WriteFile(path, []byte("store: [oops"), 0644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: s3\n"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DEDUCE_RULES":      "rules/",
		"DEDUCE_LOG_LEVEL":  "debug",
		"DEDUCE_REDIS_ADDR": "cache:6379",
	}
	cfg := Default()
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "rules/", cfg.Rules)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
}
