// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, env var expansion, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rlnd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.StorageDir)
	assert.Equal(t, filepath.Join("data", DBName), cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
storage_dir: /var/lib/rlnd
database:
  max_conns: 4
  busy_timeout: 5s
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/rlnd", cfg.StorageDir)
	assert.Equal(t, filepath.Join("/var/lib/rlnd", DBName), cfg.Database.Path, "db path defaults into storage_dir")
	assert.Equal(t, 4, cfg.Database.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("RLN_TEST_DIR", "/tmp/rlnd-env")
	path := writeConfig(t, "storage_dir: ${RLN_TEST_DIR}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rlnd-env", cfg.StorageDir)
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
database:
  busy_timeout: soon
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_NegativeMaxConns(t *testing.T) {
	path := writeConfig(t, `
database:
  max_conns: -1
`)

	_, err := Load(path)
	assert.Error(t, err)
}
