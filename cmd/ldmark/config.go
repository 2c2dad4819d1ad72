// Config loading for the ldmark CLI.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/ldmark/internal/paths"
	"github.com/mesh-intelligence/ldmark/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "LDMARK"

	cfgKeyDataDir    = "data_dir"
	cfgKeyListenAddr = "listen_addr"
	cfgKeyAuthToken  = "auth_token"
	cfgKeyLogLevel   = "log_level"
	cfgKeyLogPretty  = "log_pretty"
	cfgKeySync       = "sync"

	defaultListenAddr = "127.0.0.1:8080"
	defaultLogLevel   = "info"
)

// configHeader precedes the YAML body of every config.yaml the CLI writes.
const configHeader = `# ldmark configuration
# Environment variables LDMARK_LISTEN_ADDR, LDMARK_AUTH_TOKEN, LDMARK_LOG_LEVEL,
# LDMARK_LOG_PRETTY and LDMARK_SYNC override the values below.
# data_dir is overridden by --data-dir and falls back to LDMARK_DATA_DIR.

`

// settings is the effective CLI configuration.
type settings struct {
	DataDir    string `yaml:"data_dir,omitempty"`
	ListenAddr string `yaml:"listen_addr"`
	AuthToken  string `yaml:"auth_token,omitempty"`
	LogLevel   string `yaml:"log_level"`
	LogPretty  bool   `yaml:"log_pretty"`
	Sync       string `yaml:"sync"`
}

func defaultSettings() settings {
	return settings{
		ListenAddr: defaultListenAddr,
		LogLevel:   defaultLogLevel,
		Sync:       types.SyncImmediate,
	}
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	def := defaultSettings()
	v.SetDefault(cfgKeyListenAddr, def.ListenAddr)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyLogPretty, def.LogPretty)
	v.SetDefault(cfgKeySync, def.Sync)

	// data_dir has its own precedence in internal/paths, so only the other
	// keys read the environment here.
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyListenAddr, cfgKeyAuthToken, cfgKeyLogLevel, cfgKeyLogPretty, cfgKeySync} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// settingsFrom extracts the effective settings from v.
func settingsFrom(v *viper.Viper) settings {
	return settings{
		DataDir:    v.GetString(cfgKeyDataDir),
		ListenAddr: v.GetString(cfgKeyListenAddr),
		AuthToken:  v.GetString(cfgKeyAuthToken),
		LogLevel:   v.GetString(cfgKeyLogLevel),
		LogPretty:  v.GetBool(cfgKeyLogPretty),
		Sync:       v.GetString(cfgKeySync),
	}
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes the default settings to config.yaml unless
// the file already exists.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return writeConfigFile(path, defaultSettings())
}

// writeConfigFile encodes s as YAML under the standard header.
func writeConfigFile(path string, s settings) error {
	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
