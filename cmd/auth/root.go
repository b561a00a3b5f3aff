package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the auth service CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storefront-auth",
		Short: "Storefront authentication service",
		Long: `Session based authentication for the storefront admin and customer panels.

Configuration is read from the environment (AUTH_DATABASE_DRIVER,
AUTH_DATABASE_FILE, AUTH_DATABASE_URL, PORT, BOOTSTRAP_TOKEN, ...).`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
