package postgres

import (
	"strconv"
	"strings"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/sales"
)

// predicate is one composable WHERE condition. column and op are fixed by the
// constructors below; the value always travels as a bind parameter.
type predicate struct {
	column string
	op     string
	value  interface{}
}

func statusIs(status sales.OrderStatus) predicate {
	return predicate{column: "s.order_status", op: "=", value: string(status)}
}

func occurredFrom(from time.Time) predicate {
	return predicate{column: "s.occurred_at", op: ">=", value: from}
}

func occurredTo(to time.Time) predicate {
	return predicate{column: "s.occurred_at", op: "<=", value: to}
}

func vendorIs(vendorID string) predicate {
	return predicate{column: "p.vendor_id", op: "=", value: vendorID}
}

func categoryIs(categoryID string) predicate {
	return predicate{column: "p.category_id", op: "=", value: categoryID}
}

// aggregatePredicates returns the fixed predicate chain for a delivered-sales
// aggregation: status, window, then the optional filters.
func aggregatePredicates(from, to time.Time, filters sales.Filters) []predicate {
	preds := []predicate{
		statusIs(sales.StatusDelivered),
		occurredFrom(from),
		occurredTo(to),
	}
	if filters.VendorID != "" {
		preds = append(preds, vendorIs(filters.VendorID))
	}
	if filters.CategoryID != "" {
		preds = append(preds, categoryIs(filters.CategoryID))
	}
	return preds
}

// buildWhere renders predicates as "WHERE a = $1 AND b >= $2 ..." with positional args.
func buildWhere(preds []predicate) (string, []interface{}) {
	if len(preds) == 0 {
		return "", nil
	}
	var sb strings.Builder
	args := make([]interface{}, 0, len(preds))
	for i, p := range preds {
		if i == 0 {
			sb.WriteString("\n\t\tWHERE ")
		} else {
			sb.WriteString("\n\t\t  AND ")
		}
		args = append(args, p.value)
		sb.WriteString(p.column)
		sb.WriteString(" ")
		sb.WriteString(p.op)
		sb.WriteString(" $")
		sb.WriteString(strconv.Itoa(len(args)))
	}
	return sb.String(), args
}

// aggregateQuery returns the grouped aggregation statement and its args.
func aggregateQuery(from, to time.Time, filters sales.Filters) (string, []interface{}) {
	where, args := buildWhere(aggregatePredicates(from, to, filters))
	return aggregateSelect + where + aggregateGroupOrder, args
}
