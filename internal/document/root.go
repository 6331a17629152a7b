// Package document models the style declarations on the root element that
// the rest of the UI reads its colors from.
package document

import (
	"sort"
	"strings"
	"sync"
)

// ColorSchemeProperty is the property hinting native widgets at light or dark styling.
const ColorSchemeProperty = "color-scheme"

// Property is a single style declaration.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Root is the root element's inline style. It is safe for concurrent use.
type Root struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewRoot creates an empty root element.
func NewRoot() *Root {
	return &Root{props: make(map[string]string)}
}

// SetProperty sets a style property. An empty value removes it.
func (r *Root) SetProperty(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if value == "" {
		delete(r.props, name)
		return
	}
	r.props[name] = value
}

// RemoveProperty removes a style property.
func (r *Root) RemoveProperty(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.props, name)
}

// RemoveWithPrefix removes every property whose name starts with prefix and
// returns how many were removed.
func (r *Root) RemoveWithPrefix(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for name := range r.props {
		if strings.HasPrefix(name, prefix) {
			delete(r.props, name)
			removed++
		}
	}
	return removed
}

// Property returns a property value and whether it is set.
func (r *Root) Property(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.props[name]
	return v, ok
}

// ColorScheme returns the color-scheme hint, or "" when unset.
func (r *Root) ColorScheme() string {
	v, _ := r.Property(ColorSchemeProperty)
	return v
}

// SetColorScheme sets the color-scheme hint.
func (r *Root) SetColorScheme(scheme string) {
	r.SetProperty(ColorSchemeProperty, scheme)
}

// Properties returns all properties sorted by name.
func (r *Root) Properties() []Property {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Property, 0, len(r.props))
	for name, value := range r.props {
		out = append(out, Property{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// CSS renders the properties as a :root rule.
func (r *Root) CSS() string {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	for _, p := range r.Properties() {
		sb.WriteString("  ")
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Value)
		sb.WriteString(";\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}
