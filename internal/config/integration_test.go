package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenka29/Hackathon-NCSU/internal/config"
)

func TestGlobalConfig(t *testing.T) {
	isolate(t)

	cfg := config.GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, config.OutputTable, config.GetDefaultOutputFormat())
	assert.Same(t, cfg, config.GetGlobalConfig())

	config.ResetGlobalConfigForTest()
	assert.NotSame(t, cfg, config.GetGlobalConfig())
}

func TestSetGlobalConfig(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.Service.MaxConcurrency = 9

	config.SetGlobalConfig(cfg)

	assert.Same(t, cfg, config.GetGlobalConfig())
	assert.Equal(t, 9, config.GetServiceConfig().MaxConcurrency)
}

func TestGetConfigDir_DefaultsToHome(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv(config.EnvHome, "")
	t.Setenv("HOME", tmpHome)
	t.Setenv("USERPROFILE", tmpHome)

	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpHome, ".scamflight"), dir)

	require.NoError(t, config.EnsureConfigDir())
	stat, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())

	path, err := config.GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)
}

func TestEnsureLogDir(t *testing.T) {
	home := isolate(t)

	require.NoError(t, config.EnsureLogDir())

	stat, err := os.Stat(filepath.Join(home, "logs"))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
	assert.Equal(t, config.GetLoggingConfig().File, filepath.Join(home, "logs", "scamflight.log"))
}
