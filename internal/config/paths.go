package config

import (
	"os"
	"path/filepath"
)

// Environment variables that locate composer files.
const (
	EnvConfig = "COMPOSER_CONFIG"
	EnvHome   = "COMPOSER_HOME"
)

// Paths contains standard filesystem paths for composer.
type Paths struct {
	// ConfigFile is the path to the config file (~/.composer/config.yaml).
	ConfigFile string

	// CatalogDir is the default catalog directory (~/.composer/catalog).
	CatalogDir string

	// HomeDir is the composer home directory (~/.composer).
	HomeDir string
}

// DefaultPaths returns the default paths for composer. COMPOSER_HOME
// relocates the home directory.
func DefaultPaths() (*Paths, error) {
	home := os.Getenv(EnvHome)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".composer")
	}

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		CatalogDir: filepath.Join(home, "catalog"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If COMPOSER_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}

// FileExists reports whether a file exists at path.
func FileExists(path string) (bool, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
