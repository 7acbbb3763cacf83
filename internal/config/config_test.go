package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "punchclock.db", cfg.Storage.SQLiteFile)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.NotEmpty(t, cfg.Tracking.InactiveTitles)
	assert.Contains(t, cfg.Tracking.InactiveTitles, "i3lock")
	assert.Equal(t, "2006-01-02 15:04", cfg.Display.TimeFormat)
}

func TestLoadOrCreateAt_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadOrCreateAt(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// The file now exists and loads back to the same values.
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Storage.SQLiteFile, again.Storage.SQLiteFile)
	assert.Equal(t, cfg.Tracking.InactiveTitles, again.Tracking.InactiveTitles)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  sqlite_file: custom.db\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.db", cfg.Storage.SQLiteFile)
	// Unset sections fall back to defaults.
	assert.NotEmpty(t, cfg.Tracking.InactiveTitles)
	assert.Equal(t, "2006-01-02 15:04", cfg.Display.TimeFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDBPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Path = "/tmp/punchclock-test"
	cfg.Storage.SQLiteFile = "log.db"

	got, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/punchclock-test", "log.db"), got)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/.config/punchclock")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "punchclock"), got)

	got, err = expandPath("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)
}
