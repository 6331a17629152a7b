package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/themeswitch/internal/theme"
)

// ValuesFormatter outputs just the theme values, one per line.
// Useful for piping to other commands (e.g., themeswitch set).
type ValuesFormatter struct{}

// NewValuesFormatter creates a new values formatter.
func NewValuesFormatter() *ValuesFormatter {
	return &ValuesFormatter{}
}

// FormatThemes writes theme values to the writer, one per line.
func (f *ValuesFormatter) FormatThemes(w io.Writer, themes []theme.Descriptor, _ string) error {
	for _, d := range themes {
		if _, err := fmt.Fprintln(w, d.Value); err != nil {
			return err
		}
	}
	return nil
}

// FormatCurrent writes the active value.
func (f *ValuesFormatter) FormatCurrent(w io.Writer, c Current) error {
	_, err := fmt.Fprintln(w, c.Value)
	return err
}
