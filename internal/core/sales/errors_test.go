package sales

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataSourceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDataSourceError("aggregate sales", cause)

	require.ErrorIs(t, err, ErrDataSource)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "data source: aggregate sales: connection refused", err.Error())

	wrapped := fmt.Errorf("query: %w", err)
	var dse *DataSourceError
	require.True(t, errors.As(wrapped, &dse))
	require.Equal(t, "aggregate sales", dse.Op)
}

func TestNewDataSourceError_NilAndAlreadyWrapped(t *testing.T) {
	require.NoError(t, NewDataSourceError("op", nil))

	inner := NewDataSourceError("inner", context.DeadlineExceeded)
	outer := NewDataSourceError("outer", fmt.Errorf("layer: %w", inner))

	var dse *DataSourceError
	require.True(t, errors.As(outer, &dse))
	require.Equal(t, "inner", dse.Op)
	require.ErrorIs(t, outer, context.DeadlineExceeded)
}

func TestInvalidArgumentf(t *testing.T) {
	err := InvalidArgumentf("limit %d out of range", 500)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Contains(t, err.Error(), "limit 500 out of range")
}
