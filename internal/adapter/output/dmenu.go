package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/themeswitch/internal/theme"
)

// DmenuFormatter formats themes for dmenu/rofi/fuzzel.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	return &DmenuFormatter{
		opts:     opts,
		template: parseTemplate("dmenu", opts.Template),
	}
}

// FormatThemes writes themes in dmenu format (one per line). The value is
// always the first field so a picked line can be cut back to it.
func (f *DmenuFormatter) FormatThemes(w io.Writer, themes []theme.Descriptor, active string) error {
	for i, d := range themes {
		line := f.formatLine(i+1, d, d.Value == active)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (f *DmenuFormatter) formatLine(index int, d theme.Descriptor, active bool) string {
	if f.template != nil {
		var buf strings.Builder
		data := templateData{Index: index, Theme: d, Active: active}
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	parts := []string{d.Value, d.Label}
	if f.opts.ShowType {
		parts = append(parts, d.Type)
	}
	if active {
		parts = append(parts, "active")
	}
	return strings.Join(parts, sep)
}

// FormatCurrent writes the active value on a single line.
func (f *DmenuFormatter) FormatCurrent(w io.Writer, c Current) error {
	_, err := fmt.Fprintln(w, c.Value)
	return err
}
