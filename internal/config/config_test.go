package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.BaseDir)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, "frontend", cfg.FrontendDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compass.yaml")
	data := `
base_dir: /srv/compass
listen_addr: ":9000"
log:
  level: debug
  file: /var/log/compass.log
  max_size_mb: 10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/compass", cfg.BaseDir)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/log/compass.log", cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)

	// keys the file omits keep their defaults
	assert.Equal(t, "frontend", cfg.FrontendDir)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COMPASS_LISTEN_ADDR", ":7777")
	t.Setenv("COMPASS_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.ListenAddr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestConfig_DerivedPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/srv/compass"}

	assert.Equal(t, filepath.Join("/srv/compass", "data"), cfg.DataDir())
	assert.Equal(t, filepath.Join("/srv/compass", "data", "problems.json"), cfg.ProblemsFile())
	assert.Equal(t, filepath.Join("/srv/compass", "data", "contests.json"), cfg.ContestsFile())
	assert.Equal(t, filepath.Join("/srv/compass", "data", "solutions"), cfg.SolutionsDir())
	assert.Equal(t, filepath.Join("/srv/compass", ".git_config.json"), cfg.SyncConfigFile())
}
