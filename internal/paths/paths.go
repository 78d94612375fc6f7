package paths

import (
	"os"
	"path/filepath"
)

// GetRemuxHome returns REMUX_HOME or ~/.remux default
func GetRemuxHome() string {
	remuxHome := os.Getenv("REMUX_HOME")
	if remuxHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".remux"
		}
		return filepath.Join(homeDir, ".remux")
	}
	return ExpandPath(remuxHome)
}

// GetDBPath returns $REMUX_HOME/history.db
func GetDBPath() string {
	return filepath.Join(GetRemuxHome(), "history.db")
}

// GetConfigPath returns $REMUX_HOME/config.yaml
func GetConfigPath() string {
	return filepath.Join(GetRemuxHome(), "config.yaml")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
