package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: shareit
  environment: test
http:
  port: 8081
database:
  path: /tmp/shareit-test.db
logging:
  level: debug
rate_limit:
  requests: 5
  window: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "shareit", cfg.App.Name)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "/tmp/shareit-test.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 30, cfg.RateLimit.Window)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/shareit-test.db
monitoring:
  prometheus_enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 9090, cfg.Monitoring.PrometheusPort)
	assert.Equal(t, "exports", cfg.Exports.Path)
	assert.NotZero(t, cfg.RateLimit.Requests)
	assert.NotZero(t, cfg.RateLimit.Window)
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/tmp/expanded.db")

	path := writeConfig(t, `
database:
  path: ${TEST_DB_PATH}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/expanded.db", cfg.Database.Path)
}

func TestValidate(t *testing.T) {
	t.Run("missing database path", func(t *testing.T) {
		path := writeConfig(t, `
http:
  port: 8080
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid port", func(t *testing.T) {
		path := writeConfig(t, `
http:
  port: 99999
database:
  path: /tmp/shareit-test.db
`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("no/such/config.yaml")
	assert.Error(t, err)
}
