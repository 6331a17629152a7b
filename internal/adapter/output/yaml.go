package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themeswitch/internal/theme"
)

// YAMLFormatter formats themes as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// FormatThemes writes themes as a YAML sequence.
func (f *YAMLFormatter) FormatThemes(w io.Writer, themes []theme.Descriptor, active string) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(entries(themes, active)); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatCurrent writes the current selection as a YAML document.
func (f *YAMLFormatter) FormatCurrent(w io.Writer, c Current) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return err
	}
	return encoder.Close()
}
