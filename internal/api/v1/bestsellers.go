package v1

import (
	"time"

	"github.com/shopspring/decimal"
)

// BestSellerItem is one ranked product in a query response.
type BestSellerItem struct {
	Rank              int              `json:"rank"`
	ProductID         string           `json:"productId"`
	Name              string           `json:"name,omitempty"`
	VendorID          string           `json:"vendorId,omitempty"`
	CategoryID        string           `json:"categoryId,omitempty"`
	TotalQuantitySold int64            `json:"totalQuantitySold"`
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	AverageUnitPrice  *decimal.Decimal `json:"averageUnitPrice,omitempty"`
	UniqueBuyerCount  int64            `json:"uniqueBuyerCount"`
	FirstSaleAt       time.Time        `json:"firstSaleAt"`
	LastSaleAt        time.Time        `json:"lastSaleAt"`

	// IsBestSeller and BestSellerRank come from the persisted catalog state
	// written by the last full recompute, not from this query's ranking.
	IsBestSeller   bool `json:"isBestSeller"`
	BestSellerRank *int `json:"bestSellerRank,omitempty"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// TimeWindow is the resolved, inclusive interval a query aggregated over.
type TimeWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Stats summarise every product that matched, not only the returned page.
type Stats struct {
	TotalProducts     int             `json:"totalProducts"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalQuantity     int64           `json:"totalQuantity"`
	TotalUniqueBuyers int64           `json:"totalUniqueBuyers"`
	Window            TimeWindow      `json:"window"`
}

type QueryFilters struct {
	VendorID   string `json:"vendorId,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	MinSales   int64  `json:"minSales"`
}

type Meta struct {
	Period          string       `json:"period"`
	Filters         QueryFilters `json:"filters"`
	CacheKey        string       `json:"cacheKey"`
	Cached          bool         `json:"cached"`
	CacheAgeSeconds float64      `json:"cacheAgeSeconds,omitempty"`
	GeneratedAt     time.Time    `json:"generatedAt"`
}

// BestSellersResponse is the envelope returned by GET /v1/bestsellers.
type BestSellersResponse struct {
	Items      []BestSellerItem `json:"items"`
	Pagination Pagination       `json:"pagination"`
	Stats      Stats            `json:"stats"`
	Meta       Meta             `json:"meta"`
}

// PersistedBestSeller is a product flagged by the last full recompute.
type PersistedBestSeller struct {
	ProductID        string     `json:"productId"`
	Name             string     `json:"name"`
	VendorID         string     `json:"vendorId"`
	CategoryID       string     `json:"categoryId"`
	BestSellerRank   int        `json:"bestSellerRank"`
	RankingUpdatedAt *time.Time `json:"rankingUpdatedAt,omitempty"`
}

type PersistedBestSellersResponse struct {
	Items      []PersistedBestSeller `json:"items"`
	Pagination Pagination            `json:"pagination"`
}

type RecomputeFailure struct {
	ProductID string `json:"productId"`
	Rank      int    `json:"rank"`
	Error     string `json:"error"`
}

// RecomputeResponse reports a full recompute run.
type RecomputeResponse struct {
	RunID           string             `json:"runId"`
	Trigger         string             `json:"trigger"`
	Status          string             `json:"status"`
	StartedAt       time.Time          `json:"startedAt"`
	FinishedAt      time.Time          `json:"finishedAt"`
	DurationMs      int64              `json:"durationMs"`
	CatalogSize     int                `json:"catalogSize"`
	RankedProducts  int                `json:"rankedProducts"`
	Threshold       int64              `json:"threshold"`
	ThresholdRank   int                `json:"thresholdRank"`
	BestSellers     int                `json:"bestSellers"`
	ProductsReset   int64              `json:"productsReset"`
	ProductsUpdated int                `json:"productsUpdated"`
	ProductsSkipped int                `json:"productsSkipped"`
	Interrupted     bool               `json:"interrupted"`
	Failures        []RecomputeFailure `json:"failures"`
	PolicyVersion   string             `json:"policyVersion,omitempty"`
}

type CacheInvalidateResponse struct {
	Removed int    `json:"removed"`
	Key     string `json:"key,omitempty"`
}
