package recompute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	defaultInterval = 24 * time.Hour
	defaultRunAt    = "00:00"
	defaultTimeout  = 30 * time.Minute
)

// SchedulerParameter configures when scheduled runs fire.
type SchedulerParameter struct {
	// Interval between runs. Ticks are aligned to RunAt (UTC, "HH:MM").
	Interval   time.Duration
	RunAt      string
	RunOnStart bool
	// Timeout bounds each scheduled run.
	Timeout time.Duration
}

func (p SchedulerParameter) normalized() SchedulerParameter {
	n := p
	if n.Interval <= 0 {
		n.Interval = defaultInterval
	}
	if n.RunAt == "" {
		n.RunAt = defaultRunAt
	}
	if n.Timeout <= 0 {
		n.Timeout = defaultTimeout
	}
	return n
}

// ParseRunAt parses an "HH:MM" time of day.
func ParseRunAt(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid run_at %q (want HH:MM): %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Scheduler fires the recompute job on a fixed, wall-clock aligned cadence.
type Scheduler struct {
	job        *Job
	params     SchedulerParameter
	offset     time.Duration
	nowFn      func() time.Time
	afterFn    func(d time.Duration) <-chan time.Time
	onComplete func(Summary, error)
}

func NewScheduler(job *Job, params SchedulerParameter) (*Scheduler, error) {
	params = params.normalized()
	offset, err := ParseRunAt(params.RunAt)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		job:     job,
		params:  params,
		offset:  offset,
		nowFn:   func() time.Time { return time.Now().UTC() },
		afterFn: time.After,
	}, nil
}

// NextRun returns the first aligned tick strictly after now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(s.offset)
	for next.Add(-s.params.Interval).After(now) {
		next = next.Add(-s.params.Interval)
	}
	for !next.After(now) {
		next = next.Add(s.params.Interval)
	}
	return next
}

// Start blocks running scheduled recomputes until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	slog.Info("[Scheduler] Starting recompute scheduler",
		"interval", s.params.Interval,
		"run_at", s.params.RunAt,
		"run_on_start", s.params.RunOnStart,
		"timeout", s.params.Timeout,
	)

	if s.params.RunOnStart {
		s.runOnce(ctx, TriggerStartup)
	}

	for {
		next := s.NextRun(s.nowFn())
		slog.Debug("[Scheduler] Next recompute scheduled", "at", next)

		select {
		case <-s.afterFn(next.Sub(s.nowFn())):
			s.runOnce(ctx, TriggerScheduled)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

// Trigger runs a recompute synchronously for an operator.
func (s *Scheduler) Trigger(ctx context.Context) (Summary, error) {
	return s.job.Run(ctx, TriggerManual)
}

func (s *Scheduler) runOnce(ctx context.Context, trigger Trigger) {
	runCtx, cancel := context.WithTimeout(ctx, s.params.Timeout)
	defer cancel()

	summary, err := s.job.Run(runCtx, trigger)
	switch {
	case err == nil:
	case errors.Is(err, ErrRecomputeInProgress):
		slog.Info("[Scheduler] Skipping tick, recompute already running", "trigger", trigger)
	case errors.Is(err, ErrPartialRecompute):
		slog.Warn("[Scheduler] Recompute partially applied", "run_id", summary.RunID, "error", err)
	default:
		slog.Error("[Scheduler] Recompute failed", "trigger", trigger, "error", err)
	}

	if s.onComplete != nil {
		s.onComplete(summary, err)
	}
}
