package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seedstore_backend/platform/config"
	"seedstore_backend/platform/db"
)

func newMigrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}
			if err := db.RunMigrations(cmd.Context(), cfg, dir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "migrations directory (default MIGRATIONS_DIR)")
	return cmd
}
