package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfigPath names the environment variable holding the default config path.
const EnvConfigPath = "EVBUS_CONFIG"

// DefaultPath returns the config path from EVBUS_CONFIG, or "" when unset.
func DefaultPath() string { return os.Getenv(EnvConfigPath) }

// expandHome replaces a leading "~" or "~/" with the user's home directory.
// "~user" forms are returned unchanged.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
