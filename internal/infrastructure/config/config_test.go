package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybnd/monizze-csv/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "monizze.csv", cfg.RecordPath)
	assert.Equal(t, 3, cfg.FetchRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchRetryInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.ExcludePatterns())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MONIZZE_RECORD_PATH", "/data/history.csv")
	t.Setenv("MONIZZE_FETCH_RETRIES", "5")
	t.Setenv("MONIZZE_LOG_LEVEL", "debug")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "/data/history.csv", cfg.RecordPath)
	assert.Equal(t, 5, cfg.FetchRetries)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
record: /home/me/monizze.csv
labels:
  emv: Meal
  eco: Eco
exclude:
  - "^gift$"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/home/me/monizze.csv", cfg.RecordPath)
	assert.Equal(t, "Meal", cfg.Label("emv"))
	assert.Equal(t, "snk", cfg.Label("snk"), "unknown codes fall back to themselves")

	require.Len(t, cfg.ExcludePatterns(), 1)
	assert.True(t, cfg.ExcludePatterns()[0].MatchString("gift"))
	assert.False(t, cfg.ExcludePatterns()[0].MatchString("giftish"))
}

func TestLoadRejectsBadExcludePattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exclude:\n  - \"[\"\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingConfigFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
