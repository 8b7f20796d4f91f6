package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "reports", cfg.ReportRoot)
	assert.Equal(t, "playbooks", cfg.PlaybookDir)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MERAUDIT_API_KEY", "env-key")
	t.Setenv("MERAUDIT_REPORT_ROOT", "/var/reports")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "/var/reports", cfg.ReportRoot)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meraudit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_key: file-key
base_url: http://localhost:8080/api/v1
timeout: 30s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meraudit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: file-key\n"), 0o644))
	t.Setenv("MERAUDIT_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestVendorKeyFallback(t *testing.T) {
	t.Setenv("MERAKI_DASHBOARD_API_KEY", "vendor-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "vendor-key", cfg.APIKey)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
