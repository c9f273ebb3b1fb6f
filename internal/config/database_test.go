package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDatabasePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "penny", "penny.db"), DefaultDatabasePath())

	t.Setenv("XDG_DATA_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "penny", "penny.db"), DefaultDatabasePath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "budgets", "penny.db"), ExpandPath("~/budgets/penny.db"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/var/lib/penny.db", ExpandPath("/var/lib/penny.db"))
	assert.Empty(t, ExpandPath(""))

	t.Setenv("PENNY_DIR", "/data")
	assert.Equal(t, "/data/penny.db", ExpandPath("$PENNY_DIR/penny.db"))
}
