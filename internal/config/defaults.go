package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults are the optional file-backed defaults layered under the flags.
// Any flag explicitly set on the command line wins over these.
type Defaults struct {
	// InstallDir is the default install directory.
	InstallDir string `toml:"install_dir"`

	// Host is the default release feed API base URL.
	Host string `toml:"host"`

	// Quiet suppresses progress output by default.
	Quiet bool `toml:"quiet"`
}

// DetectDefaultsPath returns ~/.config/binget/config.toml if it exists, or
// empty string if it does not (caller should use built-in defaults).
func DetectDefaultsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	path := filepath.Join(homeDir, ".config", "binget", "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}

	return ""
}

// LoadDefaults reads the defaults file at path. A missing file is not an
// error; it simply yields zero defaults.
func LoadDefaults(path string) (*Defaults, error) {
	if path == "" {
		return &Defaults{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Defaults{}, nil
		}
		return nil, fmt.Errorf("failed to read defaults file %s: %w", path, err)
	}

	var d Defaults
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse defaults file %s: %w", path, err)
	}

	return &d, nil
}
