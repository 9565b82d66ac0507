package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingExplicitFileErrors(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadEmptyPathFallsBackToDefaults(t *testing.T) {
	// Run from a temp dir so no stray config.yaml is picked up
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
analyzer:
  max_parallel_files: 2
  cross_file_checks: false
predictor:
  min_probability: 0.5
logging:
  level: debug
`), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Analyzer.MaxParallelFiles)
	assert.False(t, cfg.Analyzer.CrossFileChecks)
	assert.InDelta(t, 0.5, cfg.Predictor.MinProbability, 0.001)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults
	assert.Equal(t, 3, cfg.Healer.MaxIterations)
	assert.True(t, cfg.Store.Enabled)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("WEBGUARD_TEST_LEVEL", "warn")
	os.Unsetenv("WEBGUARD_TEST_STORE")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: ${WEBGUARD_TEST_LEVEL}
store:
  path: ${WEBGUARD_TEST_STORE:-/tmp/fallback.db}
`), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/fallback.db", cfg.Store.Path)
}

func TestExpandEnvUnsetWithoutDefault(t *testing.T) {
	os.Unsetenv("WEBGUARD_TEST_MISSING")

	out := expandEnv("value: ${WEBGUARD_TEST_MISSING}")
	assert.Equal(t, "value: ", out)
}
