package aggregation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/sales"
	storagemocks "github.com/aevon-lab/bestsellers/internal/mocks/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 31, 15, 30, 0, 0, time.UTC)

func newTestAggregator(t *testing.T) (*Aggregator, *storagemocks.SalesLedger) {
	t.Helper()
	ledger := storagemocks.NewSalesLedger(t)
	agg := NewAggregator(ledger, time.Time{})
	agg.nowFn = func() time.Time { return fixedNow }
	return agg, ledger
}

func TestAggregator_ResolvesWindowBounds(t *testing.T) {
	tests := []struct {
		window sales.Window
		from   time.Time
	}{
		{sales.WindowDay, fixedNow.Add(-24 * time.Hour)},
		{sales.WindowWeek, fixedNow.Add(-7 * 24 * time.Hour)},
		{sales.WindowMonth, time.Date(2026, 3, 3, 15, 30, 0, 0, time.UTC)},
		{sales.WindowYear, time.Date(2025, 3, 31, 15, 30, 0, 0, time.UTC)},
		{sales.WindowAllTime, sales.DefaultEpoch},
	}

	for _, tt := range tests {
		t.Run(string(tt.window), func(t *testing.T) {
			agg, ledger := newTestAggregator(t)
			ledger.EXPECT().
				AggregateDelivered(mock.Anything, tt.from, fixedNow, sales.Filters{}).
				Return([]sales.ProductMetric{}, nil).
				Once()

			from, to, metrics, err := agg.AggregateRange(context.Background(), tt.window, sales.Filters{})
			require.NoError(t, err)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, fixedNow, to)
			assert.Empty(t, metrics)
		})
	}
}

func TestAggregator_PassesFilters(t *testing.T) {
	agg, ledger := newTestAggregator(t)
	filters := sales.Filters{VendorID: "v1", CategoryID: "c1"}
	want := []sales.ProductMetric{{
		ProductID:         "P1",
		TotalQuantitySold: 4,
		TotalRevenue:      decimal.NewFromInt(40),
		UniqueBuyerCount:  2,
	}}

	ledger.EXPECT().
		AggregateDelivered(mock.Anything, mock.Anything, mock.Anything, filters).
		Return(want, nil).
		Once()

	got, err := agg.Aggregate(context.Background(), sales.WindowWeek, filters)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAggregator_NilResultBecomesEmpty(t *testing.T) {
	agg, ledger := newTestAggregator(t)
	ledger.EXPECT().
		AggregateDelivered(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).
		Once()

	got, err := agg.Aggregate(context.Background(), sales.WindowDay, sales.Filters{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregator_WrapsLedgerFailure(t *testing.T) {
	agg, ledger := newTestAggregator(t)
	cause := errors.New("connection reset by peer")
	ledger.EXPECT().
		AggregateDelivered(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, cause).
		Once()

	_, err := agg.Aggregate(context.Background(), sales.WindowMonth, sales.Filters{})
	require.Error(t, err)
	assert.ErrorIs(t, err, sales.ErrDataSource)
	assert.ErrorIs(t, err, cause)

	var dsErr *sales.DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "aggregate delivered sales", dsErr.Op)
}

func TestAggregator_DeadlineStaysDetectable(t *testing.T) {
	agg, ledger := newTestAggregator(t)
	ledger.EXPECT().
		AggregateDelivered(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded).
		Once()

	_, err := agg.Aggregate(context.Background(), sales.WindowDay, sales.Filters{})
	assert.ErrorIs(t, err, sales.ErrDataSource)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAggregator_UnknownWindow(t *testing.T) {
	agg, _ := newTestAggregator(t)

	_, err := agg.Aggregate(context.Background(), sales.Window("fortnight"), sales.Filters{})
	assert.ErrorIs(t, err, sales.ErrInvalidArgument)
}

func TestAggregator_CustomEpoch(t *testing.T) {
	ledger := storagemocks.NewSalesLedger(t)
	epoch := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	agg := NewAggregator(ledger, epoch)
	agg.nowFn = func() time.Time { return fixedNow }

	ledger.EXPECT().
		AggregateDelivered(mock.Anything, epoch, fixedNow, sales.Filters{}).
		Return([]sales.ProductMetric{}, nil).
		Once()

	_, err := agg.Aggregate(context.Background(), sales.WindowAllTime, sales.Filters{})
	require.NoError(t, err)
	assert.Equal(t, epoch, agg.Epoch())
}
