package sales

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller input that is malformed or out of range.
	// Never retried; surfaced as HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDataSource marks failures of the sales ledger or the catalog store.
	// Retried by the caller's own policy; surfaced as HTTP 5xx.
	ErrDataSource = errors.New("data source error")
)

// InvalidArgumentf builds an error wrapping ErrInvalidArgument.
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// DataSourceError is returned when a backing store is unreachable or returns malformed data.
type DataSourceError struct {
	Op  string
	Err error
}

// NewDataSourceError wraps err. A nil err yields nil; an err that already is a
// DataSourceError is returned unchanged.
func NewDataSourceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var dse *DataSourceError
	if errors.As(err, &dse) {
		return err
	}
	return &DataSourceError{Op: op, Err: err}
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source: %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// Is matches ErrDataSource so callers can use errors.Is without knowing the concrete type.
func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}
