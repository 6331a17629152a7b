package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themeswitch/internal/document"
	"github.com/jmylchreest/themeswitch/internal/model"
	"github.com/jmylchreest/themeswitch/internal/store"
)

var customOpts struct {
	format string

	save              bool
	background        string
	text              string
	primary           string
	sidebarBackground string
	sidebarText       string
	palette           string
	dark              bool
}

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Show or save the custom theme",
	Long: `Show the custom theme draft for the signed-in user, with defaults filled
in for any color that was never set.

With --save, the given colors are merged into the draft, validated, applied
and stored on the user profile.

Examples:
  themeswitch custom --format yaml
  themeswitch custom --save --primary '#ff5151' --dark`,
	RunE: runCustom,
}

func init() {
	rootCmd.AddCommand(customCmd)

	f := customCmd.Flags()
	f.StringVarP(&customOpts.format, "format", "f", "json", "Output format (json, yaml)")
	f.BoolVar(&customOpts.save, "save", false, "Save the custom theme")
	f.StringVar(&customOpts.background, "background", "", "Background color")
	f.StringVar(&customOpts.text, "text", "", "Text color")
	f.StringVar(&customOpts.primary, "primary", "", "Primary color")
	f.StringVar(&customOpts.sidebarBackground, "sidebar-background", "", "Sidebar background color")
	f.StringVar(&customOpts.sidebarText, "sidebar-text", "", "Sidebar text color")
	f.StringVar(&customOpts.palette, "palette", "", "Five comma-separated palette colors")
	f.BoolVar(&customOpts.dark, "dark", false, "Use a dark palette")
}

func runCustom(cmd *cobra.Command, args []string) error {
	ensureSession(cmd.Context())

	u := sessionStore.User()
	if u == nil {
		return store.ErrNoSession
	}

	d := u.Theme.CustomDraft()
	if !customOpts.save {
		return writeDraft(cmd.OutOrStdout(), d)
	}

	applyFlags(cmd, &d)

	sw := newSwitcher(document.NewRoot(), nil)
	sw.Mount()
	if err := sw.SaveCustomTheme(d); err != nil {
		return fmt.Errorf("failed to save custom theme: %w", err)
	}
	return writeDraft(cmd.OutOrStdout(), d)
}

func applyFlags(cmd *cobra.Command, d *model.CustomTheme) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("background", &d.Background, customOpts.background)
	set("text", &d.Text, customOpts.text)
	set("primary", &d.Primary, customOpts.primary)
	set("sidebar-background", &d.SidebarBackground, customOpts.sidebarBackground)
	set("sidebar-text", &d.SidebarText, customOpts.sidebarText)
	set("palette", &d.Palette, customOpts.palette)
	if cmd.Flags().Changed("dark") {
		d.DarkPalette = customOpts.dark
	}
}

func writeDraft(w io.Writer, d model.CustomTheme) error {
	switch customOpts.format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", customOpts.format)
	}
}
