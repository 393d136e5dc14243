package main

import (
	"context"
	"fmt"
	"log/slog"

	corecfg "github.com/aevon-lab/bestsellers/internal/core/config"
	"github.com/aevon-lab/bestsellers/internal/core/storage"
	"github.com/aevon-lab/bestsellers/internal/core/storage/memory"
	"github.com/aevon-lab/bestsellers/internal/core/storage/postgres"
	"github.com/aevon-lab/bestsellers/internal/migrations"
	"github.com/aevon-lab/bestsellers/internal/server"
)

// backend bundles the two storage ports with their lifecycle.
type backend struct {
	ledger  storage.SalesLedger
	catalog storage.Catalog
	// health is nil for the in-memory store.
	health server.HealthChecker
	close  func() error
}

func openBackend(ctx context.Context, dbCfg corecfg.DatabaseConfig) (*backend, error) {
	switch dbCfg.Type {
	case "memory":
		store := memory.NewStore()
		if dbCfg.SeedFile != "" {
			seeded, err := memory.LoadSeedFile(dbCfg.SeedFile)
			if err != nil {
				return nil, err
			}
			store = seeded
		}
		slog.Info("[Storage] Using in-memory store", "seed_file", dbCfg.SeedFile)
		return &backend{
			ledger:  store,
			catalog: store,
			close:   func() error { return nil },
		}, nil

	case "postgres":
		adapter, err := postgres.NewAdapter(dbCfg.DSN, dbCfg.MaxOpenConns, dbCfg.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(adapter.DB(), dbCfg.AutoMigrate); err != nil {
			adapter.Close()
			return nil, err
		}
		if err := adapter.ValidateSchema(ctx); err != nil {
			adapter.Close()
			return nil, err
		}
		return &backend{
			ledger:  postgres.NewSalesAdapter(adapter.DB()),
			catalog: postgres.NewCatalogAdapter(adapter.DB()),
			health:  adapter,
			close:   adapter.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported database type %q", dbCfg.Type)
}
