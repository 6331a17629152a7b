package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/document"
	"github.com/jmylchreest/themeswitch/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive theme picker",
	Long: `Launch the interactive terminal theme picker.

The TUI provides:
  - The list of available themes with their color swatches
  - The current theme and color scheme
  - An editor for the custom theme
  - Live updates when another process changes the session
  - Live reload of a user theme registry file

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       Apply the highlighted theme
  e           Edit the custom theme
  /           Filter themes
  y           Copy the resulting CSS to the clipboard
  r           Refresh the session from the user service
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	drafts := tui.NewDraftSlot()
	sw := newSwitcher(document.NewRoot(), drafts.Set)

	return tui.Run(ctx, tui.RunOptions{
		Config:       cfg,
		Switcher:     sw,
		Store:        sessionStore,
		Drafts:       drafts,
		SessionPath:  sessionPath,
		RegistryPath: cfg.Theme.Registry,
		Logger:       logger,
	})
}
