package theme

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Color scheme types a descriptor can declare.
const (
	TypeLight = "light"
	TypeDark  = "dark"
)

// SystemLabel is shown when the active theme is not in the registry.
const SystemLabel = "System Preference"

// Icon is the two-tone swatch drawn next to a theme's label.
type Icon struct {
	Border string `toml:"border" json:"border" yaml:"border"`
	Color1 string `toml:"color1" json:"color1" yaml:"color1"`
	Color2 string `toml:"color2" json:"color2" yaml:"color2"`
}

// Descriptor describes one selectable theme.
type Descriptor struct {
	Value string `toml:"value" json:"value" yaml:"value"`
	Label string `toml:"label" json:"label" yaml:"label"`
	Type  string `toml:"type" json:"type" yaml:"type"`
	Icon  Icon   `toml:"icon" json:"icon" yaml:"icon"`
}

// Registry is an ordered, immutable list of theme descriptors.
type Registry struct {
	themes []Descriptor
	index  map[string]int
}

type registryFile struct {
	Themes []Descriptor `toml:"themes"`
}

// Registry errors.
var (
	ErrUnknownTheme  = errors.New("unknown theme")
	ErrEmptyRegistry = errors.New("registry has no themes")
)

// NewRegistry builds a registry from descriptors, keeping their order.
func NewRegistry(themes []Descriptor) (*Registry, error) {
	if len(themes) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		themes: make([]Descriptor, len(themes)),
		index:  make(map[string]int, len(themes)),
	}
	copy(r.themes, themes)

	for i, d := range r.themes {
		if d.Value == "" {
			return nil, fmt.Errorf("theme %d: value is required", i)
		}
		if _, dup := r.index[d.Value]; dup {
			return nil, fmt.Errorf("theme %q: duplicate value", d.Value)
		}
		if d.Type != TypeLight && d.Type != TypeDark {
			return nil, fmt.Errorf("theme %q: type must be %q or %q, got %q", d.Value, TypeLight, TypeDark, d.Type)
		}
		if d.Label == "" {
			r.themes[i].Label = d.Value
		}
		r.index[d.Value] = i
	}

	return r, nil
}

// ParseRegistry parses a TOML registry document.
func ParseRegistry(data []byte) (*Registry, error) {
	var f registryFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return NewRegistry(f.Themes)
}

// LoadRegistry loads a registry from path. An empty path returns the bundled
// registry.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	return ParseRegistry(data)
}

// All returns a copy of the descriptors in registry order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.themes))
	copy(out, r.themes)
	return out
}

// Len returns the number of themes.
func (r *Registry) Len() int {
	return len(r.themes)
}

// Values returns the theme values in registry order.
func (r *Registry) Values() []string {
	values := make([]string, len(r.themes))
	for i, d := range r.themes {
		values[i] = d.Value
	}
	return values
}

// Lookup finds a descriptor by value.
func (r *Registry) Lookup(value string) (Descriptor, bool) {
	idx, ok := r.index[value]
	if !ok {
		return Descriptor{}, false
	}
	return r.themes[idx], true
}

// Get is Lookup with an error for unknown values.
func (r *Registry) Get(value string) (Descriptor, error) {
	d, ok := r.Lookup(value)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownTheme, value)
	}
	return d, nil
}

// IndexOf returns the position of value in the registry, or -1.
func (r *Registry) IndexOf(value string) int {
	if idx, ok := r.index[value]; ok {
		return idx
	}
	return -1
}

// Label returns the display label for value, or SystemLabel when value is
// empty or unknown.
func (r *Registry) Label(value string) string {
	if d, ok := r.Lookup(value); ok {
		return d.Label
	}
	return SystemLabel
}
