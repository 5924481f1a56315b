package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seedctl",
		Short:         "SeedStore operator tools",
		Long:          "seedctl applies database migrations, loads the demo catalog and previews chat search criteria.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newExtractCmd())
	return root
}
