// Package paths resolves where ldmark keeps its configuration and entity
// data.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDir is the per-application directory name under platform roots.
const appDir = "ldmark"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".ldmark"
	DefaultDataDirName   = ".ldmark-db"
)

// Environment variables that override the defaults.
const (
	EnvConfigDir = "LDMARK_CONFIG_DIR"
	EnvDataDir   = "LDMARK_DATA_DIR"
)

// ConfigFileName is the viper config file inside the config directory.
const ConfigFileName = "config.yaml"

// platformDir holds the lookups tests override.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform configuration directory:
// $XDG_CONFIG_HOME/ldmark or ~/.config/ldmark on Linux, os.UserConfigDir
// elsewhere.
func DefaultConfigDir() (string, error) {
	return platformDefault("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform data directory:
// $XDG_DATA_HOME/ldmark or ~/.local/share/ldmark on Linux, the same
// directory as DefaultConfigDir elsewhere.
func DefaultDataDir() (string, error) {
	return platformDefault("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func platformDefault(xdgVar, homeRel string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDir), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appDir), nil
}

// ResolveConfigDir applies flag > LDMARK_CONFIG_DIR > DefaultConfigDir.
// Explicit values are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstNonEmpty(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies flag > config file data_dir > LDMARK_DATA_DIR >
// ./.ldmark-db. Explicit values are made absolute.
func ResolveDataDir(flag, configValue string) (string, error) {
	if dir := firstNonEmpty(flag, configValue, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the config file path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
