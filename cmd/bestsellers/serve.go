package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/bestsellers/internal/aggregation"
	v1 "github.com/aevon-lab/bestsellers/internal/api/v1"
	"github.com/aevon-lab/bestsellers/internal/cache"
	"github.com/aevon-lab/bestsellers/internal/projection"
	"github.com/aevon-lab/bestsellers/internal/recompute"
	"github.com/aevon-lab/bestsellers/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the recompute scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// 1. Initialize Storage
		store, err := openBackend(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer store.close()

		// 2. Initialize Aggregation over the sales ledger
		aggregator := aggregation.NewAggregator(store.ledger, cfg.Ranking.EpochTime())

		// 3. Initialize Recompute job and scheduler
		job := recompute.NewJob(store.catalog, aggregator, cfg.Policy, recompute.JobParameter{
			WorkerCount:  cfg.Recompute.WorkerCount,
			WriteTimeout: cfg.Recompute.WriteTimeoutDuration(),
		})
		scheduler, err := recompute.NewScheduler(job, recompute.SchedulerParameter{
			Interval:   cfg.Recompute.IntervalDuration(),
			RunAt:      cfg.Recompute.RunAt,
			RunOnStart: cfg.Recompute.RunOnStart,
			Timeout:    cfg.Recompute.TimeoutDuration(),
		})
		if err != nil {
			return err
		}

		// 4. Initialize Result cache
		resultCache := cache.New[*v1.BestSellersResponse](cache.Options{
			TTL:     cfg.Cache.TTLDuration(),
			Shards:  cfg.Cache.Shards,
			SoftCap: cfg.Cache.SoftCap,
		})

		// 5. Initialize Projection (query API)
		projectionSvc := projection.NewService(aggregator, store.catalog, resultCache, scheduler, projection.ServiceParameter{
			DefaultPageSize:  cfg.Query.DefaultPageSize,
			MaxPageSize:      cfg.Query.MaxPageSize,
			Timeout:          cfg.Query.TimeoutDuration(),
			RecomputeTimeout: cfg.Recompute.TimeoutDuration(),
		})

		// 6. Initialize Server
		srv := server.New(cfg.Server.Addr(), store.health, cfg.Server.Mode)
		srv.TrackRecompute(job)
		projectionSvc.RegisterRoutes(srv.Engine)

		// 7. Start background work
		go resultCache.StartSweeper(ctx, cfg.Cache.SweepIntervalDuration())

		if cfg.Recompute.Enabled {
			go func() {
				if err := scheduler.Start(ctx); err != nil {
					slog.Error("Scheduler stopped with error", "error", err)
				}
			}()
		} else {
			slog.Info("Recompute scheduler disabled by config")
		}

		// Signal handler triggers the shutdown sequence below.
		go func() {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			select {
			case <-quit:
				slog.Info("Signal received, shutting down...")
				cancel()
			case <-ctx.Done():
			}
		}()

		// HTTP server blocks until ctx is cancelled.
		if err := srv.Run(ctx); err != nil {
			slog.Error("Server stopped with error", "error", err)
		}

		slog.Info("Shutdown complete")
		return nil
	},
}
