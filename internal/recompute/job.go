// Package recompute rebuilds the persisted best-seller state from all-time sales.
package recompute

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aevon-lab/bestsellers/internal/aggregation"
	"github.com/aevon-lab/bestsellers/internal/core/ranking"
	"github.com/aevon-lab/bestsellers/internal/core/sales"
	"github.com/aevon-lab/bestsellers/internal/core/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkerCount  = 8
	defaultWriteTimeout = 30 * time.Second
)

// Trigger records what started a run.
type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerScheduled Trigger = "scheduled"
	TriggerStartup   Trigger = "startup"
)

// JobParameter controls write parallelism and the budget of detached writes.
type JobParameter struct {
	WorkerCount  int
	WriteTimeout time.Duration
}

// DefaultJobParameter returns the defaults used when config leaves values unset.
func DefaultJobParameter() JobParameter {
	return JobParameter{
		WorkerCount:  defaultWorkerCount,
		WriteTimeout: defaultWriteTimeout,
	}
}

func (p JobParameter) normalized() JobParameter {
	n := p
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	if n.WriteTimeout <= 0 {
		n.WriteTimeout = defaultWriteTimeout
	}
	return n
}

// WriteFailure is one product whose ranking state could not be written.
type WriteFailure struct {
	ProductID string
	Rank      int
	Err       error
}

// Summary describes one recompute run.
type Summary struct {
	RunID           string
	Trigger         Trigger
	StartedAt       time.Time
	FinishedAt      time.Time
	CatalogSize     int
	RankedProducts  int
	Threshold       int64
	ThresholdRank   int
	BestSellers     int
	ProductsReset   int64
	ProductsUpdated int
	ProductsSkipped int
	Failures        []WriteFailure
	Interrupted     bool
	PolicyVersion   string
}

// Partial reports whether some best-seller writes did not land.
func (s Summary) Partial() bool {
	return len(s.Failures) > 0 || s.Interrupted
}

// Status is "completed" or "partial".
func (s Summary) Status() string {
	if s.Partial() {
		return "partial"
	}
	return "completed"
}

// Job performs the full recompute. Only one run executes at a time per Job.
type Job struct {
	catalog    storage.Catalog
	aggregator *aggregation.Aggregator
	policy     ranking.Policy
	params     JobParameter
	running    atomic.Bool
	nowFn      func() time.Time
}

func NewJob(
	catalog storage.Catalog,
	aggregator *aggregation.Aggregator,
	policy ranking.Policy,
	params JobParameter,
) *Job {
	return &Job{
		catalog:    catalog,
		aggregator: aggregator,
		policy:     policy,
		params:     params.normalized(),
		nowFn:      func() time.Time { return time.Now().UTC() },
	}
}

// Running reports whether a run is in flight.
func (j *Job) Running() bool {
	return j.running.Load()
}

// RunFullRecompute runs a manually triggered recompute.
func (j *Job) RunFullRecompute(ctx context.Context) (Summary, error) {
	return j.Run(ctx, TriggerManual)
}

// Run ranks every product on all-time delivered sales, clears the ranking state
// of the whole catalog and writes rank and flag for each best seller.
//
// Failures while reading abort before anything is written. Once the reset has
// started, individual write failures are collected and reported through a
// *PartialRecomputeError alongside the summary. Cancelling ctx stops new writes
// but lets the reset and in-flight writes finish.
func (j *Job) Run(ctx context.Context, trigger Trigger) (Summary, error) {
	if !j.running.CompareAndSwap(false, true) {
		return Summary{}, ErrRecomputeInProgress
	}
	defer j.running.Store(false)

	summary := Summary{
		RunID:         uuid.NewString(),
		Trigger:       trigger,
		StartedAt:     j.nowFn(),
		PolicyVersion: j.policy.Fingerprint,
	}
	log := slog.With("run_id", summary.RunID, "trigger", trigger)
	log.Info("[RankingJob] Starting full recompute")

	// 1. Read catalog size and all-time metrics
	productIDs, err := j.catalog.ListAllProductIDs(ctx)
	if err != nil {
		log.Error("[RankingJob] Failed to list catalog", "error", err)
		return j.finish(summary), sales.NewDataSourceError("list catalog products", err)
	}
	summary.CatalogSize = len(productIDs)

	metrics, err := j.aggregator.Aggregate(ctx, sales.WindowAllTime, sales.Filters{})
	if err != nil {
		log.Error("[RankingJob] Aggregation failed, nothing written", "error", err)
		return j.finish(summary), err
	}

	// 2. Rank and apply the best-seller policy
	ranked := ranking.Rank(metrics, ranking.DefaultMinSales)
	applied := j.policy.Apply(ranked, summary.CatalogSize)
	summary.RankedProducts = len(ranked)
	summary.Threshold, summary.ThresholdRank, _ = j.policy.Threshold(ranked, summary.CatalogSize)

	winners := make([]sales.RankedEntry, 0)
	for _, e := range applied {
		if e.IsBestSeller {
			winners = append(winners, e)
		}
	}
	summary.BestSellers = len(winners)

	log.Info("[RankingJob] Ranked catalog",
		"catalog_size", summary.CatalogSize,
		"ranked", summary.RankedProducts,
		"threshold", summary.Threshold,
		"threshold_rank", summary.ThresholdRank,
		"best_sellers", summary.BestSellers)

	if err := ctx.Err(); err != nil {
		log.Warn("[RankingJob] Cancelled before reset, nothing written", "error", err)
		return j.finish(summary), fmt.Errorf("recompute cancelled before reset: %w", err)
	}

	// 3. Reset every product; runs to completion even if ctx is cancelled now
	resetCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), j.params.WriteTimeout)
	reset, err := j.catalog.ResetRankingState(resetCtx)
	cancel()
	if err != nil {
		log.Error("[RankingJob] Failed to reset ranking state", "error", err)
		return j.finish(summary), sales.NewDataSourceError("reset ranking state", err)
	}
	summary.ProductsReset = reset

	// 4. Write best sellers; starts only after the reset has returned
	j.applyWinners(ctx, log, winners, &summary)

	summary = j.finish(summary)
	log.Info("[RankingJob] Full recompute finished",
		"status", summary.Status(),
		"reset", summary.ProductsReset,
		"updated", summary.ProductsUpdated,
		"failed", len(summary.Failures),
		"skipped", summary.ProductsSkipped,
		"duration_ms", summary.FinishedAt.Sub(summary.StartedAt).Milliseconds())

	if summary.Partial() {
		return summary, &PartialRecomputeError{
			Failed:      len(summary.Failures),
			Updated:     summary.ProductsUpdated,
			Skipped:     summary.ProductsSkipped,
			Interrupted: summary.Interrupted,
		}
	}
	return summary, nil
}

func (j *Job) applyWinners(ctx context.Context, log *slog.Logger, winners []sales.RankedEntry, summary *Summary) {
	var (
		g           errgroup.Group
		mu          sync.Mutex
		failures    []WriteFailure
		updated     atomic.Int64
		skipped     atomic.Int64
		interrupted atomic.Bool
	)
	g.SetLimit(j.params.WorkerCount)

	for i, entry := range winners {
		if ctx.Err() != nil {
			interrupted.Store(true)
			skipped.Add(int64(len(winners) - i))
			break
		}

		g.Go(func() error {
			// A slot may free up after cancellation.
			if ctx.Err() != nil {
				interrupted.Store(true)
				skipped.Add(1)
				return nil
			}

			writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), j.params.WriteTimeout)
			defer cancel()

			if err := j.catalog.UpdateRankingState(writeCtx, entry.ProductID, entry.Rank, true); err != nil {
				log.Error("[RankingJob] Failed to write ranking state",
					"product_id", entry.ProductID,
					"rank", entry.Rank,
					"error", err)
				mu.Lock()
				failures = append(failures, WriteFailure{ProductID: entry.ProductID, Rank: entry.Rank, Err: err})
				mu.Unlock()
				return nil
			}
			updated.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failures, func(i, k int) bool { return failures[i].Rank < failures[k].Rank })
	summary.Failures = failures
	summary.ProductsUpdated = int(updated.Load())
	summary.ProductsSkipped = int(skipped.Load())
	summary.Interrupted = interrupted.Load()
	if summary.Interrupted {
		log.Warn("[RankingJob] Cancelled during apply, remaining writes skipped",
			"skipped", summary.ProductsSkipped)
	}
}

func (j *Job) finish(s Summary) Summary {
	s.FinishedAt = j.nowFn()
	return s
}
