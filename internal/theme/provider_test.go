package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvider(t *testing.T) {
	p := NewProvider(SystemTheme)
	assert.True(t, p.IsSystem())
	assert.Equal(t, "", p.Theme())

	p.SetTheme("dark")
	assert.False(t, p.IsSystem())
	assert.Equal(t, "dark", p.Theme())
}

func TestProvider_Resolved(t *testing.T) {
	r := MustDefaultRegistry()

	tests := []struct {
		name       string
		theme      string
		systemDark bool
		expected   string
	}{
		{"explicit dark", "dark", false, TypeDark},
		{"explicit light ignores system", "light", true, TypeLight},
		{"custom uses registry type", "custom", true, TypeLight},
		{"system dark", SystemTheme, true, TypeDark},
		{"system light", SystemTheme, false, TypeLight},
		{"unknown falls back to system", "gone", true, TypeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(tt.theme)
			assert.Equal(t, tt.expected, p.Resolved(r, tt.systemDark))
		})
	}
}
