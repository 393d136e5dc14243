package recompute

import (
	"errors"
	"fmt"
)

// ErrRecomputeInProgress is returned when a full recompute is already running.
var ErrRecomputeInProgress = errors.New("recompute already in progress")

// ErrPartialRecompute matches any *PartialRecomputeError.
var ErrPartialRecompute = errors.New("recompute partially applied")

// PartialRecomputeError reports a run that reset all ranking state but did not
// write every best-seller flag.
type PartialRecomputeError struct {
	Failed      int
	Updated     int
	Skipped     int
	Interrupted bool
}

func (e *PartialRecomputeError) Error() string {
	return fmt.Sprintf("recompute partially applied: %d updated, %d failed, %d skipped, interrupted=%t",
		e.Updated, e.Failed, e.Skipped, e.Interrupted)
}

func (e *PartialRecomputeError) Is(target error) bool {
	return target == ErrPartialRecompute
}
