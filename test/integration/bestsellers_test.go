//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	v1 "github.com/aevon-lab/bestsellers/internal/api/v1"
	"github.com/aevon-lab/bestsellers/internal/core/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, h *integrationHarness) {
	t.Helper()

	resetDatabase(t, h.db)

	seedProduct(t, h.db, "P1", "V1", "C1")
	seedProduct(t, h.db, "P2", "V1", "C2")
	seedProduct(t, h.db, "P3", "V2", "C1")
	seedProduct(t, h.db, "P4", "V2", "C2")
	seedProduct(t, h.db, "P5", "V2", "C2")

	at := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Second)
	seedSales(t, h.db,
		seedSale{productID: "P1", buyerID: "B1", quantity: 30, unitPrice: "10.00", status: "delivered", at: at},
		seedSale{productID: "P1", buyerID: "B2", quantity: 20, unitPrice: "10.00", status: "delivered", at: at},
		seedSale{productID: "P2", buyerID: "B1", quantity: 30, unitPrice: "5.50", status: "delivered", at: at},
		seedSale{productID: "P2", buyerID: "B3", quantity: 99, unitPrice: "5.50", status: "cancelled", at: at},
		seedSale{productID: "P3", buyerID: "B4", quantity: 10, unitPrice: "100.00", status: "delivered", at: at},
		seedSale{productID: "P5", buyerID: "B5", quantity: 500, unitPrice: "1.00", status: "returned", at: at},
	)
}

func TestBestSellers_QueryRanksDeliveredSales(t *testing.T) {
	h := startHarness(t, ranking.DefaultPolicy())
	defer h.close(t)
	seedCatalog(t, h)

	var resp v1.BestSellersResponse
	status := doJSON(t, h.client, http.MethodGet, h.baseURL+"/v1/bestsellers?period=all&limit=2", &resp)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "P1", resp.Items[0].ProductID)
	assert.Equal(t, int64(50), resp.Items[0].TotalQuantitySold)
	assert.Equal(t, "500", resp.Items[0].TotalRevenue.String())
	assert.Equal(t, int64(2), resp.Items[0].UniqueBuyerCount)
	assert.Equal(t, "P2", resp.Items[1].ProductID)
	assert.Equal(t, int64(30), resp.Items[1].TotalQuantitySold)

	assert.Equal(t, 3, resp.Pagination.Total)
	assert.True(t, resp.Pagination.HasMore)
	assert.Equal(t, 3, resp.Stats.TotalProducts)
	assert.Equal(t, int64(90), resp.Stats.TotalQuantity)
	assert.False(t, resp.Meta.Cached)

	var cached v1.BestSellersResponse
	status = doJSON(t, h.client, http.MethodGet, h.baseURL+"/v1/bestsellers?period=all&limit=2", &cached)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, cached.Meta.Cached)
	assert.Equal(t, resp.Meta.CacheKey, cached.Meta.CacheKey)
}

func TestBestSellers_QueryFiltersByVendor(t *testing.T) {
	h := startHarness(t, ranking.DefaultPolicy())
	defer h.close(t)
	seedCatalog(t, h)

	var resp v1.BestSellersResponse
	status := doJSON(t, h.client, http.MethodGet, h.baseURL+"/v1/bestsellers?period=all&vendor_id=V2", &resp)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "P3", resp.Items[0].ProductID)
	assert.Equal(t, 1, resp.Items[0].Rank)
}

func TestBestSellers_InvalidPeriodReturnsBadRequest(t *testing.T) {
	h := startHarness(t, ranking.DefaultPolicy())
	defer h.close(t)

	status := doJSON(t, h.client, http.MethodGet, h.baseURL+"/v1/bestsellers?period=fortnight", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBestSellers_RecomputePersistsFlags(t *testing.T) {
	// 5 products, share 0.1 -> N = max(2, 0) = 2 -> threshold is P2's 30 units.
	policy := ranking.Policy{CatalogShare: 0.1, MinCount: 2, RankCap: 100}
	h := startHarness(t, policy)
	defer h.close(t)
	seedCatalog(t, h)

	var run v1.RecomputeResponse
	status := doJSON(t, h.client, http.MethodPost, h.baseURL+"/v1/admin/bestsellers/recompute", &run)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, 5, run.CatalogSize)
	assert.Equal(t, int64(30), run.Threshold)
	assert.Equal(t, 2, run.BestSellers)
	assert.Empty(t, run.Failures)

	var persisted v1.PersistedBestSellersResponse
	status = doJSON(t, h.client, http.MethodGet, h.baseURL+"/v1/products/bestsellers", &persisted)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, persisted.Items, 2)
	assert.Equal(t, "P1", persisted.Items[0].ProductID)
	assert.Equal(t, 1, persisted.Items[0].BestSellerRank)
	assert.Equal(t, "P2", persisted.Items[1].ProductID)
	assert.Equal(t, 2, persisted.Items[1].BestSellerRank)
	assert.NotNil(t, persisted.Items[0].RankingUpdatedAt)

	var flagged bool
	require.NoError(t, h.db.QueryRow(`SELECT is_best_seller FROM products WHERE id = 'P3'`).Scan(&flagged))
	assert.False(t, flagged)
}

func TestBestSellers_RecomputeClearsStaleFlags(t *testing.T) {
	policy := ranking.Policy{CatalogShare: 0.1, MinCount: 2, RankCap: 100}
	h := startHarness(t, policy)
	defer h.close(t)
	seedCatalog(t, h)

	_, err := h.db.Exec(`UPDATE products SET is_best_seller = TRUE, best_seller_rank = 1 WHERE id = 'P4'`)
	require.NoError(t, err)

	var run v1.RecomputeResponse
	status := doJSON(t, h.client, http.MethodPost, h.baseURL+"/v1/admin/bestsellers/recompute", &run)
	require.Equal(t, http.StatusOK, status)

	var flagged bool
	var rank *int
	require.NoError(t, h.db.QueryRow(`SELECT is_best_seller, best_seller_rank FROM products WHERE id = 'P4'`).Scan(&flagged, &rank))
	assert.False(t, flagged)
	assert.Nil(t, rank)
}

func TestBestSellers_CacheInvalidation(t *testing.T) {
	h := startHarness(t, ranking.DefaultPolicy())
	defer h.close(t)
	seedCatalog(t, h)

	var resp v1.BestSellersResponse
	require.Equal(t, http.StatusOK, doJSON(t, h.client, http.MethodGet, h.baseURL+"/v1/bestsellers?period=all", &resp))

	var removed v1.CacheInvalidateResponse
	status := doJSON(t, h.client, http.MethodDelete,
		h.baseURL+"/v1/admin/bestsellers/cache?key="+url.QueryEscape(resp.Meta.CacheKey), &removed)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, removed.Removed)

	var fresh v1.BestSellersResponse
	require.Equal(t, http.StatusOK, doJSON(t, h.client, http.MethodGet, h.baseURL+"/v1/bestsellers?period=all", &fresh))
	assert.False(t, fresh.Meta.Cached)
}
