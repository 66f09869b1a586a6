package utils

import (
	"os"
	"path/filepath"
)

// DefaultHomeDir is ~/.dentaldesk, or a temp-dir fallback when $HOME is unset.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dentaldesk")
	}
	return filepath.Join(home, ".dentaldesk")
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
