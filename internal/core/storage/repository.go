package storage

import (
	"context"
	"errors"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/sales"
)

// ErrProductNotFound is returned when a catalog product does not exist.
var ErrProductNotFound = errors.New("product not found")

// Product is the slice of a catalog product the ranking engine reads, plus the
// ranking state it owns.
type Product struct {
	ID         string
	Name       string
	VendorID   string
	CategoryID string
	RankingState
	RankingUpdatedAt *time.Time
}

// RankingState is the pair of fields persisted on each product by the full
// recompute. Between runs it is stable and read without locking.
type RankingState struct {
	BestSellerRank *int
	IsBestSeller   bool
}

// SalesLedger is the read-only view of the order subsystem.
type SalesLedger interface {
	// AggregateDelivered groups delivered sales with occurred_at in [from, to]
	// by product, narrowed by filters. Rows come back ordered by product ID so the
	// same call always yields the same order. No qualifying sales is an empty slice.
	AggregateDelivered(ctx context.Context, from, to time.Time, filters sales.Filters) ([]sales.ProductMetric, error)
}

// Catalog is the catalog subsystem as seen by the ranking engine. The engine
// writes only the ranking state; every other product column belongs to the catalog.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (Product, error)

	// GetProducts returns the products that exist among ids, keyed by ID.
	GetProducts(ctx context.Context, ids []string) (map[string]Product, error)

	// ListAllProductIDs returns every product ID in the catalog, in ID order.
	ListAllProductIDs(ctx context.Context) ([]string, error)

	// ResetRankingState clears rank and flag on every product and returns how
	// many rows changed.
	ResetRankingState(ctx context.Context) (int64, error)

	// UpdateRankingState writes rank and flag for one product.
	// Returns ErrProductNotFound when the product no longer exists.
	UpdateRankingState(ctx context.Context, id string, rank int, isBestSeller bool) error

	// ListBestSellers pages through flagged products ordered by rank, together
	// with the total number of flagged products.
	ListBestSellers(ctx context.Context, limit, offset int) ([]Product, int, error)
}
