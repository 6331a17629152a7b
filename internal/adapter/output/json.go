package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/themeswitch/internal/theme"
)

// JSONFormatter formats themes as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// themeEntry is a descriptor with its active flag.
type themeEntry struct {
	theme.Descriptor `yaml:",inline"`
	Active           bool `json:"active" yaml:"active"`
}

func entries(themes []theme.Descriptor, active string) []themeEntry {
	out := make([]themeEntry, len(themes))
	for i, d := range themes {
		out[i] = themeEntry{Descriptor: d, Active: d.Value == active}
	}
	return out
}

// FormatThemes writes themes as a JSON array.
func (f *JSONFormatter) FormatThemes(w io.Writer, themes []theme.Descriptor, active string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries(themes, active))
}

// FormatCurrent writes the current selection as a JSON object.
func (f *JSONFormatter) FormatCurrent(w io.Writer, c Current) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(c)
}
