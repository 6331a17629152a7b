// Package output provides output formatters for themes and the session theme.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/themeswitch/internal/model"
	"github.com/jmylchreest/themeswitch/internal/theme"
)

// Formatter formats registry entries and the session theme for output.
type Formatter interface {
	// FormatThemes writes the registry entries. active marks the current theme.
	FormatThemes(w io.Writer, themes []theme.Descriptor, active string) error

	// FormatCurrent writes the current theme selection.
	FormatCurrent(w io.Writer, current Current) error
}

// Current is the active theme as reported by `get`.
type Current struct {
	Value     string           `json:"value" yaml:"value"`
	Label     string           `json:"label" yaml:"label"`
	Type      string           `json:"type,omitempty" yaml:"type,omitempty"`
	Theme     *model.UserTheme `json:"theme,omitempty" yaml:"theme,omitempty"`
	UpdatedAt int64            `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewCurrent describes value against the registry, attaching the session
// theme when a user is signed in.
func NewCurrent(r *theme.Registry, value string, u *model.User) Current {
	c := Current{
		Value: value,
		Label: r.Label(value),
	}
	if d, ok := r.Lookup(value); ok {
		c.Type = d.Type
	}
	if u != nil {
		t := u.Theme
		c.Theme = &t
		c.UpdatedAt = u.UpdatedAt
	}
	return c
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatDmenu  FormatType = "dmenu"
	FormatJSON   FormatType = "json"
	FormatYAML   FormatType = "yaml"
	FormatPlain  FormatType = "plain"
	FormatValues FormatType = "values"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(s); f {
	case FormatDmenu, FormatJSON, FormatYAML, FormatPlain, FormatValues:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want plain, json, yaml, dmenu or values)", s)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatValues:
		return NewValuesFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Custom template for dmenu/plain format
	ShowIndex bool   // Show 1-based index prefix
	ShowType  bool   // Show light/dark
	ShowIcon  bool   // Show icon colors
	Separator string // Field separator for dmenu format
	Marker    string // Prefix for the active theme
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowType:  true,
		Separator: " | ",
		Marker:    "*",
	}
}
