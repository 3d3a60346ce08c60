package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigPath, "PORT", "API_BASE_URL", "CACHE_ENABLED", "REDIS_HOST", "REDIS_PORT",
		"REDIS_PASSWORD", "REDIS_DB", "REDIS_TTL", "NOTIFY_WS_URL", "STORAGE_PATH", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticketkini.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
api:
  base_url: https://api.ticketkini.test
cache:
  enabled: false
  ttl: 90s
notify:
  url: wss://api.ticketkini.test
  ping_interval: 15s
  backoff:
    floor: 2s
    cap: 20s
    max_attempts: 3
log:
  level: debug
  format: json
`), 0o600))

	clearEnv(t)
	t.Setenv("PORT", "7070")
	t.Setenv("REDIS_TTL", "2m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port, "env beats file")
	assert.Equal(t, "https://api.ticketkini.test", cfg.API.BaseURL)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "wss://api.ticketkini.test", cfg.Notify.URL)
	assert.Equal(t, 15*time.Second, cfg.Notify.PingInterval)
	assert.Equal(t, 3, cfg.Notify.Backoff.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Notify.Backoff.Floor)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "localhost", cfg.Cache.Host, "unset keys keep defaults")
}

func TestLoadUsesEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  path: /tmp/tk.db\n"), 0o600))
	clearEnv(t)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tk.db", cfg.Storage.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBadEnvValuesKeepFileValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_TTL", "soon")
	t.Setenv("REDIS_DB", "x")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 0, cfg.Cache.DB)
}
