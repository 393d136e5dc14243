package main

import (
	"fmt"

	"github.com/aevon-lab/bestsellers/internal/core/storage/postgres"
	"github.com/aevon-lab/bestsellers/internal/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the Postgres schema",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.Type != "postgres" {
			return fmt.Errorf("migrate requires database.type postgres, got %q", cfg.Database.Type)
		}

		adapter, err := postgres.NewAdapter(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return err
		}
		defer adapter.Close()

		switch args[0] {
		case "up":
			return migrations.Up(adapter.DB(), true)
		case "down":
			return migrations.Down(adapter.DB())
		}
		return fmt.Errorf("unknown migrate direction %q (want up or down)", args[0])
	},
}
