package main

import (
	"github.com/kerem-kaynak/redmane/internal/config"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// InitContext migrates on startup.
			ctx, err := config.InitContext()
			if err != nil {
				return err
			}
			defer closeContext(ctx)

			ctx.Logger.Info("Database schema is up to date")
			return nil
		},
	}
}
