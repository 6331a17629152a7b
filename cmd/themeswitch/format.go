package main

import (
	"github.com/jmylchreest/themeswitch/internal/adapter/output"
)

// createFormatter resolves the output format, falling back to the config default.
func createFormatter(format, template string) (output.Formatter, error) {
	if format == "" {
		format = cfg.Output.Format
	}
	ft, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = template
	opts.ShowIcon = cfg.TUI.ShowIcons && ft == output.FormatPlain

	return output.NewFormatter(ft, opts), nil
}
