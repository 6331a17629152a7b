package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themeswitch/internal/model"
)

// Editor field order.
const (
	fieldBackground = iota
	fieldText
	fieldPrimary
	fieldSidebarBackground
	fieldSidebarText
	fieldPalette
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Background",
	"Text",
	"Primary",
	"Sidebar background",
	"Sidebar text",
	"Palette",
}

// editor edits a custom theme draft.
type editor struct {
	inputs [fieldCount]textinput.Model
	focus  int
	dark   bool
	err    string
}

func newEditor(d model.CustomTheme) editor {
	values := [fieldCount]string{
		d.Background,
		d.Text,
		d.Primary,
		d.SidebarBackground,
		d.SidebarText,
		d.Palette,
	}

	var e editor
	for i := range e.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 7
		if i == fieldPalette {
			in.CharLimit = 64
			in.Width = 8*model.PaletteSize - 1
		} else {
			in.Width = 7
		}
		in.SetValue(values[i])
		e.inputs[i] = in
	}
	e.inputs[0].Focus()
	e.dark = d.DarkPalette
	return e
}

// draft returns the values currently entered.
func (e editor) draft() model.CustomTheme {
	return model.CustomTheme{
		Theme:             model.CustomThemeValue,
		Background:        e.value(fieldBackground),
		Text:              e.value(fieldText),
		Primary:           e.value(fieldPrimary),
		SidebarBackground: e.value(fieldSidebarBackground),
		SidebarText:       e.value(fieldSidebarText),
		Palette:           strings.ReplaceAll(e.value(fieldPalette), " ", ""),
		DarkPalette:       e.dark,
	}
}

func (e editor) value(field int) string {
	return strings.TrimSpace(e.inputs[field].Value())
}

func (e *editor) setFocus(i int) tea.Cmd {
	e.inputs[e.focus].Blur()
	e.focus = (i + fieldCount) % fieldCount
	return e.inputs[e.focus].Focus()
}

func (e *editor) next() tea.Cmd { return e.setFocus(e.focus + 1) }
func (e *editor) prev() tea.Cmd { return e.setFocus(e.focus - 1) }

func (e *editor) toggleDark() {
	e.dark = !e.dark
}

func (e editor) update(msg tea.Msg) (editor, tea.Cmd) {
	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	e.err = ""
	return e, cmd
}

func (e editor) view() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Width(20)
	focusStyle := labelStyle.Foreground(lipgloss.Color("10"))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Custom Theme") + "\n")

	for i, in := range e.inputs {
		style := labelStyle
		if i == e.focus {
			style = focusStyle
		}
		sb.WriteString(style.Render(fieldLabels[i]))
		sb.WriteString(in.View())

		if i == fieldPalette {
			for _, c := range strings.Split(e.value(fieldPalette), ",") {
				sb.WriteString(" " + swatch(strings.TrimSpace(c)))
			}
		} else {
			sb.WriteString(" " + swatch(e.value(i)))
		}
		sb.WriteString("\n")
	}

	check := "[ ]"
	if e.dark {
		check = "[x]"
	}
	sb.WriteString(labelStyle.Render("Dark palette") + check + "\n")

	if e.err != "" {
		sb.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(e.err) + "\n")
	}

	return sb.String()
}

// swatch draws a small block of color, or a placeholder for invalid input.
func swatch(hex string) string {
	if model.ValidateColor(hex) != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("??")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// iconSwatch draws a theme icon: two colors inside a bordered cell.
func iconSwatch(border, color1, color2 string) string {
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(border))
	return fmt.Sprintf("%s%s%s%s",
		edge.Render("▐"),
		lipgloss.NewStyle().Background(lipgloss.Color(color1)).Render(" "),
		lipgloss.NewStyle().Background(lipgloss.Color(color2)).Render(" "),
		edge.Render("▌"),
	)
}
