// Package paths provides centralized path handling for skilldock.
// It resolves the user's home directory, expands home-relative
// configuration values and locates the XDG config and state directories.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/skilldock/skilldock/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for skilldock
	EnvConfigDir = "SKILLDOCK_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for skilldock-specific files
	AppDirName = "skilldock"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "skilldock.log"
)

// Paths resolves well-known locations against the invoking user's home.
type Paths struct {
	home      string
	xdgConfig string
	xdgState  string
}

// New resolves the home directory and XDG locations. Fails if no home
// directory can be determined, since every consumer path convention is
// home-relative.
func New() (*Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &Paths{home: home}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = p.Expand(configDir)
	} else if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		p.xdgConfig = filepath.Join(configHome, AppDirName)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// XDG does not guarantee StateHome on every platform, so check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		p.xdgState = filepath.Join(home, ".local", "state", AppDirName)
	}

	return p, nil
}

// Home returns the resolved home directory.
func (p *Paths) Home() string {
	return p.home
}

// Expand resolves a configured path against the home directory. Absolute
// paths pass through; "~/x" and bare relative paths are home-relative.
func (p *Paths) Expand(path string) string {
	switch {
	case path == "":
		return p.home
	case path == "~":
		return p.home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(p.home, path[2:])
	case filepath.IsAbs(path):
		return filepath.Clean(path)
	default:
		return filepath.Join(p.home, path)
	}
}

// ConfigDir returns the skilldock configuration directory.
func (p *Paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFilePath returns the path of the optional user configuration file.
func (p *Paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// StateDir returns the skilldock state directory.
func (p *Paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path to the skilldock log file.
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
