package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "", cfg.Service.BaseURL)
	assert.Equal(t, "10s", cfg.Service.Timeout)
	assert.Equal(t, "", cfg.Theme.Registry)
	assert.Equal(t, "", cfg.Theme.Default)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.True(t, cfg.TUI.ShowIcons)
	assert.Equal(t, "plain", cfg.Output.Format)
	assert.False(t, cfg.Online())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Service.Timeout, cfg.Service.Timeout)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[service]
base_url = "https://app.example.com"
token = "file-token"
timeout = "3s"

[theme]
registry = "/etc/themeswitch/registry.toml"
default = "dark"

[tui]
show_help = false
show_icons = false
clipboard = "wl-copy -n"

[state]
path = "/tmp/session.json"

[output]
format = "yaml"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://app.example.com", cfg.Service.BaseURL)
	assert.Equal(t, "file-token", cfg.Service.Token)
	assert.True(t, cfg.Online())
	timeout, err := cfg.ServiceTimeout()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, timeout)
	assert.Equal(t, "/etc/themeswitch/registry.toml", cfg.Theme.Registry)
	assert.Equal(t, "dark", cfg.Theme.Default)
	assert.False(t, cfg.TUI.ShowHelp)
	assert.False(t, cfg.TUI.ShowIcons)
	assert.Equal(t, "wl-copy -n", cfg.TUI.Clipboard)
	assert.Equal(t, "/tmp/session.json", cfg.SessionPath())
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[theme]
default = "light"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Theme.Default)
	assert.Equal(t, "10s", cfg.Service.Timeout)
	assert.True(t, cfg.TUI.ShowHelp)
}

func TestLoadConfig_TokenFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[service]\ntoken = \"file-token\"\n"), 0644))

	t.Setenv(TokenEnv, "env-token")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Service.Token)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[service]\ntimeout = \"soon\"\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_ServiceTimeout(t *testing.T) {
	tests := []struct {
		raw      string
		expected time.Duration
		wantErr  bool
	}{
		{"", 10 * time.Second, false},
		{"250ms", 250 * time.Millisecond, false},
		{"-1s", 0, true},
		{"0s", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Service.Timeout = tt.raw
			d, err := cfg.ServiceTimeout()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Service.BaseURL = "https://app.example.com"
	cfg.Theme.Default = "dark-contrast"

	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com", loaded.Service.BaseURL)
	assert.Equal(t, "dark-contrast", loaded.Theme.Default)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/themeswitch/config.toml", ConfigPath())
}

func TestDataPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	assert.Equal(t, "/custom/data/themeswitch", DataPath())
}

func TestSessionPathDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	assert.Equal(t, "/custom/data/themeswitch/session.json", DefaultConfig().SessionPath())
}

func TestEnsureDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	require.NoError(t, EnsureDataDir())

	info, err := os.Stat(filepath.Join(dir, "themeswitch"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
