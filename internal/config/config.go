// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppName names the config and data directories.
const AppName = "themeswitch"

// TokenEnv overrides the service token from the config file.
const TokenEnv = "THEMESWITCH_TOKEN"

// Default configuration values.
const (
	DefaultTimeout = "10s"
	DefaultFormat  = "plain"
)

// Config represents the themeswitch configuration.
type Config struct {
	Service ServiceConfig `toml:"service"`
	Theme   ThemeConfig   `toml:"theme"`
	TUI     TUIConfig     `toml:"tui"`
	State   StateConfig   `toml:"state"`
	Output  OutputConfig  `toml:"output"`
}

// ServiceConfig points at the remote user service.
type ServiceConfig struct {
	BaseURL string `toml:"base_url"` // Empty = offline, nothing is sent
	Token   string `toml:"token"`
	Timeout string `toml:"timeout"` // Go duration string
}

// ThemeConfig holds registry and provider settings.
type ThemeConfig struct {
	Registry string `toml:"registry"` // Path to a TOML registry (empty = bundled)
	Default  string `toml:"default"`  // Initial theme when no session exists (empty = system)
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp  bool   `toml:"show_help"`
	ShowIcons bool   `toml:"show_icons"`
	Clipboard string `toml:"clipboard"` // Empty = auto-detect (wl-copy, xclip, xsel)
}

// StateConfig holds local state settings.
type StateConfig struct {
	Path string `toml:"path"` // Session cache file (empty = data dir default)
}

// OutputConfig holds defaults for non-interactive commands.
type OutputConfig struct {
	Format string `toml:"format"` // plain, json, yaml, dmenu
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Timeout: DefaultTimeout,
		},
		TUI: TUIConfig{
			ShowHelp:  true,
			ShowIcons: true,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName, "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName)
}

// SessionPath returns the session cache path, honouring [state].path.
func (c *Config) SessionPath() string {
	if c.State.Path != "" {
		return c.State.Path
	}
	return filepath.Join(DataPath(), "session.json")
}

// ServiceTimeout parses [service].timeout, falling back to the default.
func (c *Config) ServiceTimeout() (time.Duration, error) {
	raw := c.Service.Timeout
	if raw == "" {
		raw = DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid service timeout %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid service timeout %q: must be positive", raw)
	}
	return d, nil
}

// Online reports whether a user service is configured.
func (c *Config) Online() bool {
	return c.Service.BaseURL != ""
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if token := os.Getenv(TokenEnv); token != "" {
		cfg.Service.Token = token
	}

	if _, err := cfg.ServiceTimeout(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	// The file may carry a token.
	return os.WriteFile(path, data, 0600)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}
