package core

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/themeswitch/internal/theme"
)

// LookupByIndex finds a theme by its index (1-based for user-friendliness).
// Returns false if index is out of bounds.
func LookupByIndex(themes []theme.Descriptor, index int) (theme.Descriptor, bool) {
	idx := index - 1
	if idx < 0 || idx >= len(themes) {
		return theme.Descriptor{}, false
	}
	return themes[idx], true
}

// LookupByLabel finds a theme by label, ignoring case.
func LookupByLabel(themes []theme.Descriptor, label string) (theme.Descriptor, bool) {
	for _, d := range themes {
		if strings.EqualFold(d.Label, label) {
			return d, true
		}
	}
	return theme.Descriptor{}, false
}

// Resolve turns user input into a theme value. It accepts a value, a
// 1-based index or a label, tried in that order. Unresolved input is
// returned unchanged so the caller reports it as unknown.
func Resolve(themes []theme.Descriptor, input string) string {
	input = strings.TrimSpace(input)

	for _, d := range themes {
		if d.Value == input {
			return d.Value
		}
	}

	if idx, err := strconv.Atoi(input); err == nil {
		if d, ok := LookupByIndex(themes, idx); ok {
			return d.Value
		}
	}

	if d, ok := LookupByLabel(themes, input); ok {
		return d.Value
	}

	return input
}
