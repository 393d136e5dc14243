package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/storage"
	"github.com/lib/pq"
)

var _ storage.Catalog = (*CatalogAdapter)(nil)

// CatalogAdapter reads products and writes their persisted ranking columns.
type CatalogAdapter struct {
	db    *sql.DB
	nowFn func() time.Time
}

func NewCatalogAdapter(db *sql.DB) *CatalogAdapter {
	return &CatalogAdapter{
		db:    db,
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (storage.Product, error) {
	var (
		p         storage.Product
		rank      sql.NullInt64
		updatedAt sql.NullTime
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.VendorID,
		&p.CategoryID,
		&rank,
		&p.IsBestSeller,
		&updatedAt,
	); err != nil {
		return storage.Product{}, err
	}
	if rank.Valid {
		r := int(rank.Int64)
		p.BestSellerRank = &r
	}
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		p.RankingUpdatedAt = &t
	}
	return p, nil
}

func (a *CatalogAdapter) GetProduct(ctx context.Context, id string) (storage.Product, error) {
	p, err := scanProduct(a.db.QueryRowContext(ctx, queryGetProduct, id))
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Product{}, fmt.Errorf("product %s: %w", id, storage.ErrProductNotFound)
	}
	if err != nil {
		return storage.Product{}, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return p, nil
}

// GetProducts loads the given products in one round trip. Unknown IDs are absent from the map.
func (a *CatalogAdapter) GetProducts(ctx context.Context, ids []string) (map[string]storage.Product, error) {
	products := make(map[string]storage.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	rows, err := a.db.QueryContext(ctx, queryGetProducts, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

func (a *CatalogAdapter) ListAllProductIDs(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, queryListAllProductIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product ids: %w", err)
	}
	return ids, nil
}

// ResetRankingState clears rank and flag on every product and returns the rows changed.
func (a *CatalogAdapter) ResetRankingState(ctx context.Context) (int64, error) {
	res, err := a.db.ExecContext(ctx, queryResetRankingState, a.nowFn())
	if err != nil {
		return 0, fmt.Errorf("failed to reset ranking state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read reset row count: %w", err)
	}
	return n, nil
}

// UpdateRankingState writes the ranking columns of a single product.
func (a *CatalogAdapter) UpdateRankingState(ctx context.Context, id string, rank int, isBestSeller bool) error {
	res, err := a.db.ExecContext(ctx, queryUpdateRankingState, id, rank, isBestSeller, a.nowFn())
	if err != nil {
		return fmt.Errorf("failed to update ranking state for %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update row count for %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("product %s: %w", id, storage.ErrProductNotFound)
	}
	return nil
}

// ListBestSellers pages through flagged products ordered by persisted rank.
func (a *CatalogAdapter) ListBestSellers(ctx context.Context, limit, offset int) ([]storage.Product, int, error) {
	var total int
	if err := a.db.QueryRowContext(ctx, queryCountBestSellers).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count best sellers: %w", err)
	}

	products := make([]storage.Product, 0, limit)
	if total == 0 || offset >= total {
		return products, total, nil
	}

	rows, err := a.db.QueryContext(ctx, queryListBestSellers, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list best sellers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan best seller: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate best sellers: %w", err)
	}
	return products, total, nil
}
