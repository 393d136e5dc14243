package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/aevon-lab/bestsellers/internal/aggregation"
	"github.com/aevon-lab/bestsellers/internal/projection"
	"github.com/aevon-lab/bestsellers/internal/recompute"
	"github.com/spf13/cobra"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Run one full best-seller recompute and print its summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openBackend(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer store.close()

		aggregator := aggregation.NewAggregator(store.ledger, cfg.Ranking.EpochTime())
		job := recompute.NewJob(store.catalog, aggregator, cfg.Policy, recompute.JobParameter{
			WorkerCount:  cfg.Recompute.WorkerCount,
			WriteTimeout: cfg.Recompute.WriteTimeoutDuration(),
		})

		summary, runErr := job.RunFullRecompute(ctx)
		if runErr != nil && !errors.Is(runErr, recompute.ErrPartialRecompute) {
			return runErr
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(projection.NewRecomputeResponse(summary)); err != nil {
			return err
		}
		// A partial run still printed its summary but exits non-zero.
		return runErr
	},
}
