// Package core provides filtering and lookup over registry entries.
package core

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/themeswitch/internal/theme"
)

// FilterOptions specifies criteria for filtering themes.
type FilterOptions struct {
	Type   string // light or dark (empty = all)
	Search string // case-insensitive substring of value or label
	Limit  int    // maximum results (0 = unlimited)
}

// ParseType validates a theme type filter.
func ParseType(s string) (string, error) {
	switch t := strings.ToLower(strings.TrimSpace(s)); t {
	case "", theme.TypeLight, theme.TypeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme type %q (want %s or %s)", s, theme.TypeLight, theme.TypeDark)
	}
}

// Filter returns the themes matching opts, keeping registry order.
func Filter(themes []theme.Descriptor, opts FilterOptions) []theme.Descriptor {
	result := make([]theme.Descriptor, 0, len(themes))

	for _, d := range themes {
		if opts.Type != "" && d.Type != opts.Type {
			continue
		}
		if !matches(d, opts.Search) {
			continue
		}

		result = append(result, d)

		if opts.Limit > 0 && len(result) >= opts.Limit {
			break
		}
	}

	return result
}

func matches(d theme.Descriptor, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(d.Value), term) ||
		strings.Contains(strings.ToLower(d.Label), term)
}
