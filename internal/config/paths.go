package config

import (
	"os"
	"path/filepath"
)

// GetHome returns PD_HOME or ~/.prime-directive
func GetHome() string {
	home := os.Getenv("PD_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".prime-directive"
		}
		return filepath.Join(homeDir, ".prime-directive")
	}
	return ExpandPath(home)
}

// GetRegistryPath returns PD_CONFIG or $PD_HOME/registry.yaml
func GetRegistryPath() string {
	if p := os.Getenv("PD_CONFIG"); p != "" {
		return ExpandPath(p)
	}
	return filepath.Join(GetHome(), "registry.yaml")
}

// GetDBPath returns $PD_HOME/data/prime.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "data", "prime.db")
}

// GetLogPath returns $PD_HOME/logs/pd.log
func GetLogPath() string {
	return filepath.Join(GetHome(), "logs", "pd.log")
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
