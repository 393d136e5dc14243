// Package memory holds an in-process implementation of the storage ports.
// It backs tests and database.type=memory deployments.
package memory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/sales"
	"github.com/aevon-lab/bestsellers/internal/core/storage"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	_ storage.SalesLedger = (*Store)(nil)
	_ storage.Catalog     = (*Store)(nil)
)

// Store keeps products and sales in maps guarded by a single RWMutex.
// Aggregation follows the same rules as the Postgres adapter: delivered only,
// inclusive window, filters joined through the product row.
type Store struct {
	mu       sync.RWMutex
	products map[string]storage.Product
	sales    []sales.SaleRecord
	nextID   int64
	nowFn    func() time.Time
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]storage.Product),
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}

// PutProduct inserts or replaces a catalog product.
func (s *Store) PutProduct(p storage.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// AddSale appends a sale record and returns its assigned ID.
func (s *Store) AddSale(rec sales.SaleRecord) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec.ID = s.nextID
	s.sales = append(s.sales, rec)
	return rec.ID
}

func (s *Store) AggregateDelivered(
	ctx context.Context,
	from, to time.Time,
	filters sales.Filters,
) ([]sales.ProductMetric, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type acc struct {
		metric sales.ProductMetric
		buyers map[string]struct{}
	}
	byProduct := make(map[string]*acc)

	for _, rec := range s.sales {
		if !rec.Status.Countable() {
			continue
		}
		if rec.OccurredAt.Before(from) || rec.OccurredAt.After(to) {
			continue
		}
		p, ok := s.products[rec.ProductID]
		if !ok {
			continue
		}
		if filters.VendorID != "" && p.VendorID != filters.VendorID {
			continue
		}
		if filters.CategoryID != "" && p.CategoryID != filters.CategoryID {
			continue
		}

		a, ok := byProduct[rec.ProductID]
		if !ok {
			a = &acc{
				metric: sales.ProductMetric{
					ProductID:    rec.ProductID,
					TotalRevenue: decimal.Zero,
					FirstSaleAt:  rec.OccurredAt,
					LastSaleAt:   rec.OccurredAt,
				},
				buyers: make(map[string]struct{}),
			}
			byProduct[rec.ProductID] = a
		}
		a.metric.TotalQuantitySold += rec.Quantity
		a.metric.TotalRevenue = a.metric.TotalRevenue.Add(rec.Revenue())
		a.buyers[rec.BuyerID] = struct{}{}
		if rec.OccurredAt.Before(a.metric.FirstSaleAt) {
			a.metric.FirstSaleAt = rec.OccurredAt
		}
		if rec.OccurredAt.After(a.metric.LastSaleAt) {
			a.metric.LastSaleAt = rec.OccurredAt
		}
	}

	metrics := make([]sales.ProductMetric, 0, len(byProduct))
	for _, a := range byProduct {
		a.metric.UniqueBuyerCount = int64(len(a.buyers))
		metrics = append(metrics, a.metric)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].ProductID < metrics[j].ProductID })
	return metrics, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (storage.Product, error) {
	if err := ctx.Err(); err != nil {
		return storage.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return storage.Product{}, fmt.Errorf("product %s: %w", id, storage.ErrProductNotFound)
	}
	return p, nil
}

func (s *Store) GetProducts(ctx context.Context, ids []string) (map[string]storage.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]storage.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *Store) ListAllProductIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) ResetRankingState(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	var changed int64
	for id, p := range s.products {
		if p.BestSellerRank == nil && !p.IsBestSeller {
			continue
		}
		p.RankingState = storage.RankingState{}
		p.RankingUpdatedAt = &now
		s.products[id] = p
		changed++
	}
	return changed, nil
}

func (s *Store) UpdateRankingState(ctx context.Context, id string, rank int, isBestSeller bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("product %s: %w", id, storage.ErrProductNotFound)
	}
	now := s.nowFn()
	r := rank
	p.RankingState = storage.RankingState{BestSellerRank: &r, IsBestSeller: isBestSeller}
	p.RankingUpdatedAt = &now
	s.products[id] = p
	return nil
}

func (s *Store) ListBestSellers(ctx context.Context, limit, offset int) ([]storage.Product, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	flagged := make([]storage.Product, 0)
	for _, p := range s.products {
		if p.IsBestSeller {
			flagged = append(flagged, p)
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		ri, rj := rankOrMax(flagged[i]), rankOrMax(flagged[j])
		if ri != rj {
			return ri < rj
		}
		return flagged[i].ID < flagged[j].ID
	})

	total := len(flagged)
	if offset >= total {
		return []storage.Product{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return flagged[offset:end], total, nil
}

func rankOrMax(p storage.Product) int {
	if p.BestSellerRank == nil {
		return int(^uint(0) >> 1)
	}
	return *p.BestSellerRank
}

// seedFile is the YAML layout accepted by LoadSeedFile.
type seedFile struct {
	Products []struct {
		ID         string `yaml:"id"`
		Name       string `yaml:"name"`
		VendorID   string `yaml:"vendor_id"`
		CategoryID string `yaml:"category_id"`
	} `yaml:"products"`
	Sales []struct {
		OrderID    string    `yaml:"order_id"`
		ProductID  string    `yaml:"product_id"`
		BuyerID    string    `yaml:"buyer_id"`
		Quantity   int64     `yaml:"quantity"`
		UnitPrice  string    `yaml:"unit_price"`
		Status     string    `yaml:"status"`
		OccurredAt time.Time `yaml:"occurred_at"`
	} `yaml:"sales"`
}

// LoadSeedFile builds a Store from a YAML fixture of products and sales.
func LoadSeedFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	store := NewStore()
	for _, p := range seed.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("seed file %s: product without id", path)
		}
		store.PutProduct(storage.Product{
			ID:         p.ID,
			Name:       p.Name,
			VendorID:   p.VendorID,
			CategoryID: p.CategoryID,
		})
	}
	for i, s := range seed.Sales {
		price, err := decimal.NewFromString(s.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("seed file %s: sale %d: invalid unit_price %q: %w", path, i, s.UnitPrice, err)
		}
		status := sales.OrderStatus(s.Status)
		if status == "" {
			status = sales.StatusDelivered
		}
		store.AddSale(sales.SaleRecord{
			OrderID:    s.OrderID,
			ProductID:  s.ProductID,
			BuyerID:    s.BuyerID,
			Quantity:   s.Quantity,
			UnitPrice:  price,
			Status:     status,
			OccurredAt: s.OccurredAt.UTC(),
		})
	}
	return store, nil
}
