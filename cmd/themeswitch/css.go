package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/document"
)

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the root element styles for the current theme",
	Long: `Print the root element's style declarations for the current theme as a
CSS :root block: the color-scheme and, for a saved custom theme, the
--color-* shade variables.

Example:
  themeswitch css > theme.css`,
	RunE: runCSS,
}

func init() {
	rootCmd.AddCommand(cssCmd)
}

func runCSS(cmd *cobra.Command, args []string) error {
	ensureSession(cmd.Context())

	root := document.NewRoot()
	sw := newSwitcher(root, nil)
	sw.Mount()

	_, err := fmt.Fprint(cmd.OutOrStdout(), root.CSS())
	return err
}
