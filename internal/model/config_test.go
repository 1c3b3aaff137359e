package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabasePath(), cfg.DatabasePath)
	assert.Empty(t, cfg.DefaultUser)
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	want := &Config{
		DatabasePath: filepath.Join(dir, "crm.db"),
		DefaultUser:  "user-123",
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want.DatabasePath, got.DatabasePath)
	assert.Equal(t, want.DefaultUser, got.DefaultUser)
}
