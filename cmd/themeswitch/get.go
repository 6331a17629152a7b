package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/adapter/output"
	"github.com/jmylchreest/themeswitch/internal/document"
)

var getOpts struct {
	format string
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current theme",
	Long: `Show the active theme and, when signed in, the theme stored on the
user profile and when it was last updated.`,
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOpts.format, "format", "f", "",
		"Output format (plain, json, yaml, dmenu, values; default from config)")
}

func runGet(cmd *cobra.Command, args []string) error {
	formatter, err := createFormatter(getOpts.format, "")
	if err != nil {
		return err
	}

	ensureSession(cmd.Context())

	sw := newSwitcher(document.NewRoot(), nil)
	sw.Mount()

	current := output.NewCurrent(sw.Registry(), sw.View().Value, sessionStore.User())
	return formatter.FormatCurrent(cmd.OutOrStdout(), current)
}
