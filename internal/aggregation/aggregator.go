// Package aggregation turns delivered sales into per-product metrics for a
// time window.
package aggregation

import (
	"context"
	"log/slog"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/sales"
	"github.com/aevon-lab/bestsellers/internal/core/storage"
)

// Aggregator resolves a window to an absolute interval and asks the ledger for
// grouped metrics. It holds no state between calls.
type Aggregator struct {
	ledger storage.SalesLedger
	epoch  time.Time
	nowFn  func() time.Time
}

// NewAggregator creates an Aggregator. A zero epoch falls back to sales.DefaultEpoch.
func NewAggregator(ledger storage.SalesLedger, epoch time.Time) *Aggregator {
	if epoch.IsZero() {
		epoch = sales.DefaultEpoch
	}
	return &Aggregator{
		ledger: ledger,
		epoch:  epoch.UTC(),
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// Epoch is the start of the all-time window.
func (a *Aggregator) Epoch() time.Time {
	return a.epoch
}

// Aggregate returns one metric per product with delivered sales inside window.
// No qualifying sales yields an empty slice. Ledger failures come back as
// *sales.DataSourceError.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	window sales.Window,
	filters sales.Filters,
) ([]sales.ProductMetric, error) {
	_, _, metrics, err := a.AggregateRange(ctx, window, filters)
	return metrics, err
}

// AggregateRange is Aggregate that also reports the resolved interval.
func (a *Aggregator) AggregateRange(
	ctx context.Context,
	window sales.Window,
	filters sales.Filters,
) (from, to time.Time, metrics []sales.ProductMetric, err error) {
	from, to, err = window.Range(a.nowFn(), a.epoch)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	started := time.Now()
	metrics, err = a.ledger.AggregateDelivered(ctx, from, to, filters)
	if err != nil {
		slog.Error("[Aggregator] Failed to aggregate sales",
			"window", window,
			"vendor_id", filters.VendorID,
			"category_id", filters.CategoryID,
			"error", err)
		return from, to, nil, sales.NewDataSourceError("aggregate delivered sales", err)
	}
	if metrics == nil {
		metrics = []sales.ProductMetric{}
	}

	slog.Debug("[Aggregator] Aggregated sales",
		"window", window,
		"from", from,
		"to", to,
		"vendor_id", filters.VendorID,
		"category_id", filters.CategoryID,
		"products", len(metrics),
		"duration_ms", time.Since(started).Milliseconds())

	return from, to, metrics, nil
}
