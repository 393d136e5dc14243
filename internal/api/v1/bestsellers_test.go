package v1

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestSellerItem_JSON(t *testing.T) {
	at := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	avg := decimal.RequireFromString("19.99")

	withAvg, err := json.Marshal(BestSellerItem{
		Rank:              1,
		ProductID:         "P1",
		TotalQuantitySold: 3,
		TotalRevenue:      decimal.RequireFromString("59.97"),
		AverageUnitPrice:  &avg,
		UniqueBuyerCount:  2,
		FirstSaleAt:       at,
		LastSaleAt:        at,
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(withAvg, &decoded))
	assert.Equal(t, "P1", decoded["productId"])
	assert.Equal(t, "59.97", decoded["totalRevenue"])
	assert.Equal(t, "19.99", decoded["averageUnitPrice"])
	assert.Equal(t, false, decoded["isBestSeller"])
	assert.NotContains(t, decoded, "bestSellerRank")

	withoutAvg, err := json.Marshal(BestSellerItem{ProductID: "P2", TotalRevenue: decimal.Zero})
	require.NoError(t, err)
	assert.NotContains(t, string(withoutAvg), "averageUnitPrice")
}

func TestPagination_JSON(t *testing.T) {
	data, err := json.Marshal(Pagination{Total: 45, Limit: 20, Offset: 20, HasMore: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":45,"limit":20,"offset":20,"hasMore":true}`, string(data))
}
