package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/storefront/internal/auth/app"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  `Apply pending migrations, then serve the auth API until SIGINT or SIGTERM.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			application, err := app.New(app.LoadConfig())
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}
