// Package dotdir resolves the per-user directory that holds the
// directus-auth configuration files.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DirName is the directory created under the user's home.
	DirName = ".directus-auth"

	// EnvDir overrides the directory when no explicit override is given.
	EnvDir = "DIRECTUS_AUTH_DIR"
)

// Manager resolves the config directory. The zero value is usable.
type Manager struct {
	// homeDir is swapped in tests.
	homeDir func() (string, error)
}

// NewManager creates a Manager that resolves against the real home directory.
func NewManager() *Manager {
	return &Manager{homeDir: os.UserHomeDir}
}

// Target returns the config directory using, in order: override,
// $DIRECTUS_AUTH_DIR, then ~/.directus-auth. The directory is not created.
func (m *Manager) Target(override string) (string, error) {
	if dir := strings.TrimSpace(override); dir != "" {
		return filepath.Clean(dir), nil
	}

	if dir := strings.TrimSpace(os.Getenv(EnvDir)); dir != "" {
		return filepath.Clean(dir), nil
	}

	homeDir := m.homeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}

	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}

	return filepath.Join(home, DirName), nil
}
