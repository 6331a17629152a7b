package theme

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/themeswitch/internal/document"
	"github.com/jmylchreest/themeswitch/internal/model"
)

// CustomVariablePrefix prefixes every variable set by ApplyCustomVariables.
const CustomVariablePrefix = "--color-"

// Shades lists the generated shade steps. 100 is the base color; lower steps
// are tints toward white and higher steps are shades toward black.
var Shades = []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 200, 300, 400, 500, 600, 700, 800, 900}

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{R: 0, G: 0, B: 0}
)

// CustomVariableName returns the variable name for a key and shade,
// e.g. "--color-primary-100".
func CustomVariableName(key string, shade int) string {
	return fmt.Sprintf("%s%s-%d", CustomVariablePrefix, key, shade)
}

// ShadeValues computes the "r, g, b" value of every shade for a base color.
func ShadeValues(hex string) (map[int]string, error) {
	base, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidColor, hex)
	}

	out := make(map[int]string, len(Shades))
	for _, shade := range Shades {
		var c colorful.Color
		switch {
		case shade < 100:
			c = base.BlendRgb(white, float64(100-shade)/100)
		case shade > 100:
			c = base.BlendRgb(black, float64(shade-100)/1000)
		default:
			c = base
		}
		r, g, b := c.Clamped().RGB255()
		out[shade] = fmt.Sprintf("%d, %d, %d", r, g, b)
	}
	return out, nil
}

// ApplyCustomVariables writes the shade variables for a custom theme onto
// root. Nothing is written if any color is invalid.
func ApplyCustomVariables(root *document.Root, t model.CustomTheme) error {
	keys := []struct {
		name  string
		value string
	}{
		{"background", t.Background},
		{"text", t.Text},
		{"primary", t.Primary},
		{"sidebar-background", t.SidebarBackground},
		{"sidebar-text", t.SidebarText},
	}

	computed := make(map[string]string, len(keys)*len(Shades))
	for _, k := range keys {
		shades, err := ShadeValues(k.value)
		if err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
		for shade, value := range shades {
			computed[CustomVariableName(k.name, shade)] = value
		}
	}

	for name, value := range computed {
		root.SetProperty(name, value)
	}
	return nil
}

// UnsetCustomVariables removes every custom color variable from root.
func UnsetCustomVariables(root *document.Root) {
	root.RemoveWithPrefix(CustomVariablePrefix)
}

// CustomVariables lists the custom color variables currently set on root.
func CustomVariables(root *document.Root) []document.Property {
	var out []document.Property
	for _, p := range root.Properties() {
		if strings.HasPrefix(p.Name, CustomVariablePrefix) {
			out = append(out, p)
		}
	}
	return out
}
