package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/retailgrid/internal/config"
	"github.com/roach88/retailgrid/internal/source"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, source.DefaultURL, cfg.Source.URL)
	assert.Equal(t, source.DefaultRefresh, cfg.Source.Refresh.Std())
	assert.NotEmpty(t, cfg.Cache.Dir)
	assert.Equal(t, filepath.Join(cfg.Cache.Dir, "snapshots.db"), cfg.DatabasePath())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  url: https://example.test/sales.xlsx
  refresh: 6h
cache:
  dir: /tmp/retailgrid-test
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/sales.xlsx", cfg.Source.URL)
	assert.Equal(t, 6*time.Hour, cfg.Source.Refresh.Std())
	assert.Equal(t, "/tmp/retailgrid-test", cfg.Cache.Dir)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  dir: /tmp/x\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, source.DefaultURL, cfg.Source.URL)
	assert.Equal(t, "/tmp/x", cfg.Cache.Dir)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
