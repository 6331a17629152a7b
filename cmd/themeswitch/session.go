package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the cached user session",
}

var sessionRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch the signed-in user from the user service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if client == nil {
			return fmt.Errorf("no user service configured; set [service].base_url")
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), client.Client.Timeout)
		defer cancel()
		if err := sessionStore.Revalidate(ctx); err != nil {
			return fmt.Errorf("failed to refresh session: %w", err)
		}
		u := sessionStore.User()
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", displayName(u.DisplayName, u.Email, u.ID))
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the cached user session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessionStore.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session cleared")
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionRefreshCmd, sessionClearCmd)
	rootCmd.AddCommand(sessionCmd)
}

// ensureSession fetches the user from the service when nothing is cached.
// Failing to do so is not fatal: the theme is then shown but not persisted.
func ensureSession(ctx context.Context) {
	if client == nil || sessionStore.HasSession() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, client.Client.Timeout)
	defer cancel()

	if err := sessionStore.Revalidate(ctx); err != nil {
		logger.Warn("failed to load user session", "error", err)
	}
}

func displayName(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return "unknown user"
}
