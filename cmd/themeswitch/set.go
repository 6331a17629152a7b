package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/core"
	"github.com/jmylchreest/themeswitch/internal/document"
)

var setOpts struct {
	stdin bool
}

var setCmd = &cobra.Command{
	Use:   "set [theme]",
	Short: "Apply a theme",
	Long: `Apply a theme from the registry, given by value, 1-based index or label.

The local session is updated immediately and the change is sent to the user
service; the command waits for that request before exiting. A failed request
is logged and not retried.

The theme may also be read from stdin, which accepts a line produced by
'themeswitch list --format dmenu'.

Examples:
  themeswitch set dark
  themeswitch set 2
  themeswitch set "Dark High Contrast"
  themeswitch list --format dmenu | fuzzel -d | themeswitch set --stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().BoolVar(&setOpts.stdin, "stdin", false,
		"Read the theme from stdin")
}

func runSet(cmd *cobra.Command, args []string) error {
	var value string
	switch {
	case len(args) == 1:
		value = args[0]
	case setOpts.stdin:
		line, err := readLine(cmd.InOrStdin())
		if err != nil {
			return err
		}
		value = line
	default:
		return fmt.Errorf("no theme given")
	}
	value = parseDmenuSelection(value)

	ensureSession(cmd.Context())

	sw := newSwitcher(document.NewRoot(), nil)
	sw.Mount()

	value = core.Resolve(sw.Registry().All(), value)
	if err := sw.Select(value); err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(sw.Registry().Values(), ", "))
	}

	if !sessionStore.HasSession() {
		logger.Warn("no user session, theme not saved", "theme", value)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", sw.View().Label)
	return nil
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return "", fmt.Errorf("no theme on stdin")
}

// parseDmenuSelection extracts the theme value from a dmenu line.
// Input could be the full line: "dark | Dark | dark | active"
// or just a value.
func parseDmenuSelection(selection string) string {
	selection = strings.TrimSpace(selection)
	value, _, _ := strings.Cut(selection, "|")
	return strings.TrimSpace(value)
}
