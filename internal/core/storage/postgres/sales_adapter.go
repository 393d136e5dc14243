package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/sales"
	"github.com/aevon-lab/bestsellers/internal/core/storage"
	"github.com/shopspring/decimal"
)

var _ storage.SalesLedger = (*SalesAdapter)(nil)

// SalesAdapter reads per-product aggregates from the sales table.
type SalesAdapter struct {
	db *sql.DB
}

func NewSalesAdapter(db *sql.DB) *SalesAdapter {
	return &SalesAdapter{db: db}
}

// AggregateDelivered groups delivered sales with occurred_at in [from, to] by product.
// Rows come back ordered by product_id so equal-ranked products stay stable.
func (a *SalesAdapter) AggregateDelivered(
	ctx context.Context,
	from, to time.Time,
	filters sales.Filters,
) ([]sales.ProductMetric, error) {
	query, args := aggregateQuery(from.UTC(), to.UTC(), filters)

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	defer rows.Close()

	metrics := make([]sales.ProductMetric, 0)
	for rows.Next() {
		var (
			m          sales.ProductMetric
			revenueStr string
		)
		if err := rows.Scan(
			&m.ProductID,
			&m.TotalQuantitySold,
			&revenueStr,
			&m.UniqueBuyerCount,
			&m.FirstSaleAt,
			&m.LastSaleAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sales aggregate: %w", err)
		}

		revenue, err := decimal.NewFromString(revenueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse revenue for product %s: %w", m.ProductID, err)
		}
		m.TotalRevenue = revenue
		m.FirstSaleAt = m.FirstSaleAt.UTC()
		m.LastSaleAt = m.LastSaleAt.UTC()

		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales aggregates: %w", err)
	}

	return metrics, nil
}
