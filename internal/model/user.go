// Package model defines the core data structures for themeswitch.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// CustomThemeValue is the registry value that opens the custom theme editor.
const CustomThemeValue = "custom"

// Defaults substituted into a custom theme draft for empty fields.
const (
	DefaultBackground        = "#0d101b"
	DefaultText              = "#c5c5c5"
	DefaultPrimary           = "#3f76ff"
	DefaultSidebarBackground = "#0d101b"
	DefaultSidebarText       = "#c5c5c5"

	// EmptyPalette is what the service stores when no palette was ever set.
	EmptyPalette = ",,,,"
	// DefaultPalette replaces EmptyPalette in a custom theme draft.
	DefaultPalette = "#0d101b,#c5c5c5,#3f76ff,#0d101b,#c5c5c5"
)

// PaletteSize is the number of colors in a palette string.
const PaletteSize = 5

// UserTheme is the theme sub-object of a user profile.
type UserTheme struct {
	Theme             string `json:"theme" yaml:"theme"`
	Background        string `json:"background" yaml:"background"`
	Text              string `json:"text" yaml:"text"`
	Primary           string `json:"primary" yaml:"primary"`
	SidebarBackground string `json:"sidebarBackground" yaml:"sidebar_background"`
	SidebarText       string `json:"sidebarText" yaml:"sidebar_text"`
	Palette           string `json:"palette" yaml:"palette"`
	DarkPalette       bool   `json:"darkPalette" yaml:"dark_palette"`
}

// CustomTheme is a draft handed to the custom theme editor.
// It has the same shape as UserTheme but every color is populated.
type CustomTheme UserTheme

// User is the signed-in user's profile as returned by the user service.
type User struct {
	ID          string    `json:"id" yaml:"id"`
	Email       string    `json:"email,omitempty" yaml:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Theme       UserTheme `json:"theme" yaml:"theme"`
	UpdatedAt   int64     `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// UserUpdate is a partial profile update. Only the theme is sent by this module.
type UserUpdate struct {
	Theme *UserTheme `json:"theme,omitempty"`
}

// Validation errors.
var (
	ErrInvalidColor   = errors.New("invalid hex color")
	ErrInvalidPalette = errors.New("palette must contain 5 comma-separated colors")
)

// WithTheme returns a copy of t with the selected theme value replaced.
func (t UserTheme) WithTheme(value string) UserTheme {
	t.Theme = value
	return t
}

// Colors returns the palette split into its individual colors.
func (t UserTheme) Colors() []string {
	return strings.Split(t.Palette, ",")
}

// CustomDraft builds the custom theme draft from the current theme,
// substituting defaults for any empty field.
func (t UserTheme) CustomDraft() CustomTheme {
	palette := t.Palette
	if palette == EmptyPalette {
		palette = DefaultPalette
	}

	return CustomTheme{
		Theme:             CustomThemeValue,
		Background:        orDefault(t.Background, DefaultBackground),
		Text:              orDefault(t.Text, DefaultText),
		Primary:           orDefault(t.Primary, DefaultPrimary),
		SidebarBackground: orDefault(t.SidebarBackground, DefaultSidebarBackground),
		SidebarText:       orDefault(t.SidebarText, DefaultSidebarText),
		Palette:           palette,
		DarkPalette:       false,
	}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// Validate checks that every color in the draft is a hex color and that the
// palette holds exactly PaletteSize colors.
func (c CustomTheme) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"background", c.Background},
		{"text", c.Text},
		{"primary", c.Primary},
		{"sidebarBackground", c.SidebarBackground},
		{"sidebarText", c.SidebarText},
	}
	for _, f := range fields {
		if err := ValidateColor(f.value); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}

	colors := UserTheme(c).Colors()
	if len(colors) != PaletteSize {
		return ErrInvalidPalette
	}
	for i, color := range colors {
		if err := ValidateColor(color); err != nil {
			return fmt.Errorf("palette[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateColor reports whether s parses as a #rgb or #rrggbb color.
func ValidateColor(s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return nil
}

// UpdatedAtTime returns the last profile update as a time.Time.
func (u *User) UpdatedAtTime() time.Time {
	if u.UpdatedAt == 0 {
		return time.Time{}
	}
	return time.Unix(u.UpdatedAt, 0)
}

// Clone creates a copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
