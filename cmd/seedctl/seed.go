package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"seedstore_backend/internal/catalog"
	"seedstore_backend/internal/seed"
	"seedstore_backend/platform/config"
	"seedstore_backend/platform/db"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog",
		Long:  "Inserts the demo categories, manufacturers and products. Entries that already exist by name are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logger.New(cfg.Env)

			pool, err := db.NewPool(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			catalogModule := catalog.NewModule(pool, nil, cfg.GetMinioBucketProductImages(), validator.New(), log)
			res, err := seed.New(catalogModule.Service(), log).Run(cmd.Context(), seed.DefaultSample())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
