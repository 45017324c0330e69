package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avenka29/Hackathon-NCSU/internal/config"
)

// isolate points SCAMFLIGHT_HOME at a temp dir and clears every override.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, key := range []string{
		config.EnvServiceURL,
		config.EnvTimeout,
		config.EnvLogLevel,
		config.EnvLogFormat,
		config.EnvOutputFormat,
		config.EnvProjectDir,
	} {
		t.Setenv(key, "")
	}
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
