package projection

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/aevon-lab/bestsellers/internal/aggregation"
	v1 "github.com/aevon-lab/bestsellers/internal/api/v1"
	"github.com/aevon-lab/bestsellers/internal/cache"
	"github.com/aevon-lab/bestsellers/internal/core/ranking"
	"github.com/aevon-lab/bestsellers/internal/core/sales"
	"github.com/aevon-lab/bestsellers/internal/core/storage"
	"github.com/aevon-lab/bestsellers/internal/recompute"
	"github.com/shopspring/decimal"
)

// Recomputer runs the full recompute on demand.
type Recomputer interface {
	Trigger(ctx context.Context) (recompute.Summary, error)
}

// ResultCache is the cache used for ad-hoc query responses.
type ResultCache = cache.ResultCache[*v1.BestSellersResponse]

// Service is the read path for best-seller queries. It owns no state besides
// the injected cache.
type Service struct {
	aggregator *aggregation.Aggregator
	catalog    storage.Catalog
	cache      *ResultCache
	recomputer Recomputer
	params     ServiceParameter
	nowFn      func() time.Time
}

// NewService creates a query service. recomputer may be nil, in which case the
// recompute endpoint is not registered.
func NewService(
	aggregator *aggregation.Aggregator,
	catalog storage.Catalog,
	resultCache *ResultCache,
	recomputer Recomputer,
	params ServiceParameter,
) *Service {
	return &Service{
		aggregator: aggregator,
		catalog:    catalog,
		cache:      resultCache,
		recomputer: recomputer,
		params:     params.normalized(),
		nowFn:      func() time.Time { return time.Now().UTC() },
	}
}

// Query returns one page of ranked products, from cache when a live entry exists.
func (s *Service) Query(ctx context.Context, req QueryRequest) (*v1.BestSellersResponse, error) {
	q, err := s.normalize(req)
	if err != nil {
		return nil, err
	}
	key := q.cacheKey()

	if entry, ok := s.cache.Get(key); ok {
		slog.Debug("[Query] Cache hit", "key", key)
		return fromCache(entry, s.nowFn()), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.params.Timeout)
	defer cancel()

	resp, err := s.compute(ctx, q, key)
	if err != nil {
		return nil, err
	}
	// A result computed after the deadline is not cached.
	if err := ctx.Err(); err != nil {
		return nil, sales.NewDataSourceError("query best sellers", err)
	}

	s.cache.Put(key, resp)
	return resp, nil
}

// Refresh recomputes a query bypassing the cache and stores it with ttl.
// A non-positive ttl uses the cache default.
func (s *Service) Refresh(ctx context.Context, req QueryRequest, ttl time.Duration) (*v1.BestSellersResponse, error) {
	q, err := s.normalize(req)
	if err != nil {
		return nil, err
	}
	key := q.cacheKey()

	ctx, cancel := context.WithTimeout(ctx, s.params.Timeout)
	defer cancel()

	resp, err := s.compute(ctx, q, key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, sales.NewDataSourceError("refresh best sellers", err)
	}

	entry := s.cache.PutWithTTL(key, resp, ttl)
	slog.Info("[Query] Cache entry refreshed", "key", key, "ttl", entry.TTL)
	return resp, nil
}

// ListBestSellers pages through the products flagged by the last full recompute.
func (s *Service) ListBestSellers(ctx context.Context, limit, offset int) (*v1.PersistedBestSellersResponse, error) {
	limit = s.clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(ctx, s.params.Timeout)
	defer cancel()

	products, total, err := s.catalog.ListBestSellers(ctx, limit, offset)
	if err != nil {
		return nil, sales.NewDataSourceError("list persisted best sellers", err)
	}

	items := make([]v1.PersistedBestSeller, 0, len(products))
	for _, p := range products {
		item := v1.PersistedBestSeller{
			ProductID:        p.ID,
			Name:             p.Name,
			VendorID:         p.VendorID,
			CategoryID:       p.CategoryID,
			RankingUpdatedAt: p.RankingUpdatedAt,
		}
		if p.BestSellerRank != nil {
			item.BestSellerRank = *p.BestSellerRank
		}
		items = append(items, item)
	}

	return &v1.PersistedBestSellersResponse{
		Items: items,
		Pagination: v1.Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore(offset, limit, total),
		},
	}, nil
}

// RunFullRecompute triggers the recompute through the injected Recomputer.
// The run ignores ctx cancellation and is bounded by RecomputeTimeout instead.
func (s *Service) RunFullRecompute(ctx context.Context) (recompute.Summary, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.params.RecomputeTimeout)
	defer cancel()
	return s.recomputer.Trigger(ctx)
}

// CacheStats exposes the result cache for operators.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// InvalidateCache drops key, or every entry when key is empty, and returns the count removed.
func (s *Service) InvalidateCache(key string) int {
	if key == "" {
		n := s.cache.InvalidateAll()
		slog.Info("[Query] Cache cleared", "removed", n)
		return n
	}
	if s.cache.Invalidate(key) {
		slog.Info("[Query] Cache entry invalidated", "key", key)
		return 1
	}
	return 0
}

func (s *Service) normalize(req QueryRequest) (normalizedQuery, error) {
	window, err := sales.ParseWindow(req.Period)
	if err != nil {
		return normalizedQuery{}, err
	}

	limit := s.clampLimit(req.Limit)

	var offset int
	if req.Offset != nil {
		offset = *req.Offset
	} else {
		page := req.Page
		if page < 0 {
			page = 0
		}
		if page > math.MaxInt/limit {
			offset = math.MaxInt
		} else {
			offset = page * limit
		}
	}
	if offset < 0 {
		offset = 0
	}

	minSales := req.MinSales
	if minSales < ranking.DefaultMinSales {
		minSales = ranking.DefaultMinSales
	}

	return normalizedQuery{
		window: window,
		limit:  limit,
		offset: offset,
		filters: sales.Filters{
			VendorID:   strings.TrimSpace(req.VendorID),
			CategoryID: strings.TrimSpace(req.CategoryID),
		},
		minSales: minSales,
	}, nil
}

func (s *Service) clampLimit(limit int) int {
	switch {
	case limit == 0:
		return s.params.DefaultPageSize
	case limit < 1:
		return 1
	case limit > s.params.MaxPageSize:
		return s.params.MaxPageSize
	default:
		return limit
	}
}

func (s *Service) compute(ctx context.Context, q normalizedQuery, key string) (*v1.BestSellersResponse, error) {
	from, to, metrics, err := s.aggregator.AggregateRange(ctx, q.window, q.filters)
	if err != nil {
		return nil, err
	}

	ranked := ranking.Rank(metrics, q.minSales)
	page := pageOf(ranked, q.offset, q.limit)

	products := map[string]storage.Product{}
	if len(page) > 0 {
		ids := make([]string, len(page))
		for i, e := range page {
			ids[i] = e.ProductID
		}
		products, err = s.catalog.GetProducts(ctx, ids)
		if err != nil {
			slog.Error("[Query] Failed to load catalog products", "key", key, "error", err)
			return nil, sales.NewDataSourceError("load catalog products", err)
		}
	}

	items := make([]v1.BestSellerItem, 0, len(page))
	for _, e := range page {
		items = append(items, toItem(e, products[e.ProductID]))
	}

	total := len(ranked)
	return &v1.BestSellersResponse{
		Items: items,
		Pagination: v1.Pagination{
			Total:   total,
			Limit:   q.limit,
			Offset:  q.offset,
			HasMore: hasMore(q.offset, q.limit, total),
		},
		Stats: summarize(ranked, from, to),
		Meta: v1.Meta{
			Period: string(q.window),
			Filters: v1.QueryFilters{
				VendorID:   q.filters.VendorID,
				CategoryID: q.filters.CategoryID,
				MinSales:   q.minSales,
			},
			CacheKey:    key,
			GeneratedAt: s.nowFn(),
		},
	}, nil
}

// hasMore reports offset+limit < total without overflowing on huge offsets.
func hasMore(offset, limit, total int) bool {
	return offset < total && limit < total-offset
}

func pageOf(ranked []sales.RankedEntry, offset, limit int) []sales.RankedEntry {
	if offset >= len(ranked) {
		return nil
	}
	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end]
}

func toItem(e sales.RankedEntry, p storage.Product) v1.BestSellerItem {
	item := v1.BestSellerItem{
		Rank:              e.Rank,
		ProductID:         e.ProductID,
		Name:              p.Name,
		VendorID:          p.VendorID,
		CategoryID:        p.CategoryID,
		TotalQuantitySold: e.TotalQuantitySold,
		TotalRevenue:      e.TotalRevenue,
		UniqueBuyerCount:  e.UniqueBuyerCount,
		FirstSaleAt:       e.FirstSaleAt,
		LastSaleAt:        e.LastSaleAt,
		IsBestSeller:      p.IsBestSeller,
		BestSellerRank:    p.BestSellerRank,
	}
	if avg, ok := e.AverageUnitPrice(); ok {
		item.AverageUnitPrice = &avg
	}
	return item
}

// summarize totals every ranked entry, not only the page.
func summarize(ranked []sales.RankedEntry, from, to time.Time) v1.Stats {
	stats := v1.Stats{
		TotalProducts: len(ranked),
		TotalRevenue:  decimal.Zero,
		Window:        v1.TimeWindow{From: from, To: to},
	}
	for _, e := range ranked {
		stats.TotalRevenue = stats.TotalRevenue.Add(e.TotalRevenue)
		stats.TotalQuantity += e.TotalQuantitySold
		stats.TotalUniqueBuyers += e.UniqueBuyerCount
	}
	return stats
}

// fromCache returns a copy of the cached response annotated with its age.
// The cached value itself is never modified.
func fromCache(entry cache.Entry[*v1.BestSellersResponse], now time.Time) *v1.BestSellersResponse {
	resp := *entry.Value
	resp.Meta.Cached = true
	resp.Meta.CacheAgeSeconds = entry.Age(now).Seconds()
	return &resp
}
