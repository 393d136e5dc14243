package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of the order a sale belongs to.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusReturned  OrderStatus = "returned"
)

// Countable reports whether a sale in this status may contribute to sales totals.
// Only delivered orders count; everything else is still reversible.
func (s OrderStatus) Countable() bool {
	return s == StatusDelivered
}

// SaleRecord is one order line as owned by the order subsystem.
// The ranking engine only reads these; a delivered record is immutable.
type SaleRecord struct {
	ID         int64
	OrderID    string
	ProductID  string
	BuyerID    string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Status     OrderStatus
	OccurredAt time.Time
}

// Revenue is quantity * unit price.
func (r SaleRecord) Revenue() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(r.Quantity))
}

// Filters narrows an aggregation. Empty fields mean "no constraint";
// set fields are combined with AND.
type Filters struct {
	VendorID   string
	CategoryID string
}

// ProductMetric is the sales summary of one product within a window/filter set.
// It is computed per query and never persisted.
type ProductMetric struct {
	ProductID         string
	TotalQuantitySold int64
	TotalRevenue      decimal.Decimal
	UniqueBuyerCount  int64
	FirstSaleAt       time.Time
	LastSaleAt        time.Time
}

// AverageUnitPrice returns revenue / quantity. ok is false when nothing was sold.
func (m ProductMetric) AverageUnitPrice() (avg decimal.Decimal, ok bool) {
	if m.TotalQuantitySold == 0 {
		return decimal.Zero, false
	}
	return m.TotalRevenue.Div(decimal.NewFromInt(m.TotalQuantitySold)).Round(4), true
}

// RankedEntry is a metric with its 1-based rank.
type RankedEntry struct {
	ProductMetric
	Rank         int
	IsBestSeller bool
}
