// Package main provides the CLI entrypoint for themeswitch.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themeswitch/internal/config"
	"github.com/jmylchreest/themeswitch/internal/document"
	"github.com/jmylchreest/themeswitch/internal/model"
	"github.com/jmylchreest/themeswitch/internal/store"
	"github.com/jmylchreest/themeswitch/internal/switcher"
	"github.com/jmylchreest/themeswitch/internal/theme"
	"github.com/jmylchreest/themeswitch/internal/userservice"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		stateFile  string
		configPath string
	}
	logger *slog.Logger

	registry     *theme.Registry
	sessionStore *store.Store
	sessionPath  string

	// remote is nil when no user service is configured.
	client *userservice.Client
	remote *userservice.Async
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "themeswitch",
	Short: "Pick and persist your UI theme",
	Long: `themeswitch lets a signed-in user pick a visual theme, including a
custom theme with their own colors, and stores the choice on their profile.

The choice is applied locally straight away and sent to the user service in
the background. Without a configured service the choice is only cached
locally.

Running themeswitch without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		registry, err = theme.LoadRegistry(cfg.Theme.Registry)
		if err != nil {
			return fmt.Errorf("failed to load theme registry: %w", err)
		}

		var fetcher store.Fetcher
		if cfg.Online() {
			timeout, err := cfg.ServiceTimeout()
			if err != nil {
				return err
			}
			client = userservice.NewClient(cfg.Service.BaseURL, cfg.Service.Token, timeout)
			remote = userservice.NewAsync(client, logger)
			fetcher = client
		} else {
			logger.Debug("no user service configured, running offline")
		}

		sessionPath = globalOpts.stateFile
		if sessionPath == "" {
			if err := config.EnsureDataDir(); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			sessionPath = cfg.SessionPath()
		}

		persistence, err := store.NewJSONPersistence(sessionPath)
		if err != nil {
			return fmt.Errorf("failed to initialize persistence: %w", err)
		}

		sessionStore = store.NewStore(persistence, fetcher)
		sessionStore.SetLogger(logger)

		if err := sessionStore.Hydrate(); err != nil {
			logger.Warn("failed to hydrate session from disk", "error", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		// Let fire-and-forget profile updates finish before exiting.
		if remote != nil {
			remote.Wait()
		}
		if sessionStore != nil {
			return sessionStore.Close()
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.stateFile, "state-file", "",
		"Path to session cache (default: ~/.local/share/themeswitch/session.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/themeswitch/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newSwitcher builds a mounted switcher showing the session's theme, or the
// configured default when signed out.
func newSwitcher(root *document.Root, setPreloaded func(model.CustomTheme)) *switcher.Switcher {
	var session switcher.Session
	if sessionStore != nil {
		session = sessionStore
	}

	var updater switcher.RemoteUpdater
	if remote != nil {
		updater = remote
	}

	sw := switcher.New(switcher.Config{
		Registry:     registry,
		Provider:     theme.NewProvider(theme.SystemTheme),
		Session:      session,
		Remote:       updater,
		Root:         root,
		SetPreloaded: setPreloaded,
		Logger:       logger,
	})

	initial := cfg.Theme.Default
	if sessionStore != nil {
		if u := sessionStore.User(); u != nil && u.Theme.Theme != "" {
			initial = u.Theme.Theme
		}
	}
	sw.Adopt(initial)

	return sw
}
