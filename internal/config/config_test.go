package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8081/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 100, cfg.DropdownSize)
	assert.Equal(t, 1000, cfg.MaxPageSize)
	assert.Equal(t, "vi", cfg.Language)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_base_url: https://pos.example.com/api/v1
poll_interval: 5s
low_stock_threshold: 3
page_size: 25
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://pos.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 3, cfg.LowStockThreshold)
	assert.Equal(t, 25, cfg.PageSize)
	// Untouched fields keep defaults.
	assert.Equal(t, "vi", cfg.Language)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().APIBaseURL, cfg.APIBaseURL)
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: https://file.example.com\n"), 0o600))

	t.Setenv("POS_API_URL", "https://env.example.com")
	t.Setenv("POS_POLL_INTERVAL", "2s")
	t.Setenv("POS_LANGUAGE", "en")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, "en", cfg.Language)
}

func TestBadDurationEnvIgnored(t *testing.T) {
	t.Setenv("POS_POLL_INTERVAL", "soon")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
}
