package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/themeswitch/internal/model"
	"github.com/jmylchreest/themeswitch/internal/theme"
)

// PlainFormatter formats themes as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{
		opts:     opts,
		template: parseTemplate("plain", opts.Template),
	}
}

// FormatThemes writes one theme per line, marking the active one.
func (f *PlainFormatter) FormatThemes(w io.Writer, themes []theme.Descriptor, active string) error {
	for i, d := range themes {
		if err := f.formatTheme(w, i+1, d, d.Value == active); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatTheme(w io.Writer, index int, d theme.Descriptor, active bool) error {
	if f.template != nil {
		data := templateData{Index: index, Theme: d, Active: active}
		if err := f.template.Execute(w, data); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder
	sb.WriteString(marker(f.opts, active))

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}

	sb.WriteString(fmt.Sprintf("%-16s %s", d.Value, d.Label))

	if f.opts.ShowType {
		sb.WriteString(fmt.Sprintf(" (%s)", d.Type))
	}

	if f.opts.ShowIcon {
		sb.WriteString(fmt.Sprintf(" [%s %s %s]", d.Icon.Border, d.Icon.Color1, d.Icon.Color2))
	}

	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatCurrent writes the active theme and, with a session, its colors.
func (f *PlainFormatter) FormatCurrent(w io.Writer, c Current) error {
	var sb strings.Builder

	value := c.Value
	if value == theme.SystemTheme {
		value = "system"
	}
	sb.WriteString(fmt.Sprintf("theme:   %s (%s)\n", value, c.Label))

	if c.Theme != nil {
		t := c.Theme
		if t.Palette != "" {
			sb.WriteString(fmt.Sprintf("palette: %s\n", t.Palette))
		}
		if t.Theme == model.CustomThemeValue {
			sb.WriteString(fmt.Sprintf("colors:  background=%s text=%s primary=%s sidebar=%s/%s dark=%t\n",
				t.Background, t.Text, t.Primary, t.SidebarBackground, t.SidebarText, t.DarkPalette))
		}
		sb.WriteString(fmt.Sprintf("updated: %s\n", relativeTime(c.UpdatedAt)))
	} else {
		sb.WriteString("session: none\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
