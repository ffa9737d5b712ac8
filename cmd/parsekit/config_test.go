package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigOverlaysTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".parsekit.toml")
	contents := "build_cfg = false\ncolor = \"always\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.False(t, cfg.BuildCFG)
	require.Equal(t, "always", cfg.Color)
}

func TestLoadConfigRejectsInvalidColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".parsekit.toml")
	require.NoError(t, os.WriteFile(path, []byte(`color = "purple"`), 0o644))

	_, err := loadConfig(path)
	require.Error(t, err)
}
