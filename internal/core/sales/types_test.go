package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProductMetric_AverageUnitPrice(t *testing.T) {
	m := ProductMetric{TotalQuantitySold: 4, TotalRevenue: decimal.RequireFromString("10.00")}
	avg, ok := m.AverageUnitPrice()
	require.True(t, ok)
	require.True(t, decimal.RequireFromString("2.5").Equal(avg))

	_, ok = ProductMetric{}.AverageUnitPrice()
	require.False(t, ok)
}

func TestOrderStatus_Countable(t *testing.T) {
	require.True(t, StatusDelivered.Countable())
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusShipped, StatusCancelled, StatusReturned} {
		require.False(t, s.Countable(), s)
	}
}

func TestSaleRecord_Revenue(t *testing.T) {
	r := SaleRecord{Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")}
	require.Equal(t, "59.97", r.Revenue().String())
}
