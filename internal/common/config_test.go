package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.GetTimeout())
	assert.Equal(t, "data", cfg.Storage.DataPath)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cryptonav.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment = "production"

[server]
port = 9090

[api]
base_url = "http://api.internal:8000"
timeout = "5s"
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://api.internal:8000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.GetTimeout())
	// Untouched sections keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_MissingFileIsSkipped(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport=1"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_EnvOverridesWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cryptonav.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9090

[api]
base_url = "http://from-file:8000"
`), 0644))

	t.Setenv("CRYPTONAV_PORT", "7070")
	t.Setenv("CRYPTONAV_API_URL", "http://from-env:8000")
	t.Setenv("CRYPTONAV_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://from-env:8000", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestGetTimeout_InvalidFallsBack(t *testing.T) {
	api := APIConfig{Timeout: "not-a-duration"}
	assert.Equal(t, 30*time.Second, api.GetTimeout())
}
