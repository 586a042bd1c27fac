package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FOODCOURT_API_URL", "")
	t.Setenv("FOODCOURT_HOME", "")
	t.Setenv("FOODCOURT_LOG_LEVEL", "")
	t.Setenv("FOODCOURT_HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, ".foodcourt", filepath.Base(cfg.StateDir))
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOODCOURT_API_URL", "https://api.example.test/")
	t.Setenv("FOODCOURT_HOME", dir)
	t.Setenv("FOODCOURT_LOG_LEVEL", "debug")
	t.Setenv("FOODCOURT_HTTP_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, filepath.Join(dir, "session.json"), cfg.SessionPath())
	assert.Equal(t, filepath.Join(dir, "foodcourt.log"), cfg.LogPath())
}

func TestHTTPTimeoutFallbacks(t *testing.T) {
	t.Setenv("FOODCOURT_HOME", t.TempDir())

	t.Setenv("FOODCOURT_HTTP_TIMEOUT_SECONDS", "soon")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.HTTPTimeoutSeconds, "unparseable value falls back to default")

	t.Setenv("FOODCOURT_HTTP_TIMEOUT_SECONDS", "0")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.HTTPTimeout(), "zero disables the timeout")
}
