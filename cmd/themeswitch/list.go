package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/core"
	"github.com/jmylchreest/themeswitch/internal/document"
)

var listOpts struct {
	format   string
	template string

	themeType string
	search    string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Long: `List the themes in the registry, marking the active one.

Examples:
  # Pick a theme with fuzzel and apply it
  themeswitch list --format dmenu | fuzzel -d | themeswitch set

  # Machine readable
  themeswitch list --format json

  # Dark themes only
  themeswitch list --type dark`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "",
		"Output format (plain, json, yaml, dmenu, values; default from config)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for plain/dmenu output")
	listCmd.Flags().StringVarP(&listOpts.themeType, "type", "t", "",
		"Only list light or dark themes")
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Only list themes whose value or label contains this")
}

func runList(cmd *cobra.Command, args []string) error {
	formatter, err := createFormatter(listOpts.format, listOpts.template)
	if err != nil {
		return err
	}

	themeType, err := core.ParseType(listOpts.themeType)
	if err != nil {
		return err
	}

	sw := newSwitcher(document.NewRoot(), nil)
	sw.Mount()

	v := sw.View()
	themes := core.Filter(v.Options, core.FilterOptions{
		Type:   themeType,
		Search: listOpts.search,
	})
	return formatter.FormatThemes(cmd.OutOrStdout(), themes, v.Value)
}
