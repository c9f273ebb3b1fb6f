// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath returns the default SQLite database location,
// honoring XDG_DATA_HOME when set.
func DefaultDatabasePath() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "penny", "penny.db")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "penny.db"
	}
	return filepath.Join(home, ".local", "share", "penny", "penny.db")
}

// ExpandPath expands a leading ~ and $VAR environment variables in a
// file path, so config values like "~/budgets/penny.db" work.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
