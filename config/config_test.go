package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Contains(t, cfg.Datasets.PricesURL, "preise_df.xlsx")
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 2*time.Second, cfg.RetryDelay())
	assert.Equal(t, 3, cfg.Datasets.MaxRetries)
	assert.True(t, cfg.Snapshots.Enabled)
}

func TestLoadConfig_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://example.org")
	t.Setenv("PRICES_URL", "data/preise.xlsx")
	t.Setenv("FETCH_RETRY_DELAY", "0")
	t.Setenv("SNAPSHOT_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.org"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "data/preise.xlsx", cfg.Datasets.PricesURL)
	assert.Equal(t, time.Duration(0), cfg.RetryDelay())
	assert.False(t, cfg.Snapshots.Enabled)
}

func TestLoadConfig_InvalidNumber(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FETCH_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
