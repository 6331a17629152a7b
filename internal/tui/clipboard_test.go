package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/themeswitch/internal/config"
)

func TestDetectClipboardCommand(t *testing.T) {
	available := func(bins ...string) func(string) (string, error) {
		return func(name string) (string, error) {
			for _, b := range bins {
				if b == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		}
	}

	configured := config.DefaultConfig()
	configured.TUI.Clipboard = "custom-copy --stdin"

	tests := []struct {
		name     string
		cfg      *config.Config
		lookPath func(string) (string, error)
		expected string
	}{
		{"configured wins", configured, available("wl-copy"), "custom-copy --stdin"},
		{"wayland", nil, available("wl-copy", "xclip"), "wl-copy"},
		{"x11 xclip", config.DefaultConfig(), available("xclip", "xsel"), "xclip -selection clipboard"},
		{"x11 xsel", nil, available("xsel"), "xsel --clipboard --input"},
		{"macos", nil, available("pbcopy"), "pbcopy"},
		{"none", nil, available(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectClipboardCommand(tt.cfg, tt.lookPath))
		})
	}
}
