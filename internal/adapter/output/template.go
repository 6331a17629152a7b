package output

import (
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/themeswitch/internal/theme"
)

// templateData provides data for custom templates.
type templateData struct {
	Index  int
	Theme  theme.Descriptor
	Active bool
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"reltime": func(ts int64) string {
			return relativeTime(ts)
		},
	}
}

func parseTemplate(name, text string) *template.Template {
	if text == "" {
		return nil
	}
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return nil
	}
	return tmpl
}

// relativeTime returns a human-readable relative time string.
func relativeTime(timestamp int64) string {
	if timestamp == 0 {
		return "never"
	}
	return humanize.Time(time.Unix(timestamp, 0))
}

func marker(opts FormatterOptions, active bool) string {
	if opts.Marker == "" {
		return ""
	}
	if active {
		return opts.Marker + " "
	}
	return strings.Repeat(" ", len(opts.Marker)+1)
}
