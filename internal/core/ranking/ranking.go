package ranking

import (
	"sort"

	"github.com/aevon-lab/bestsellers/internal/core/sales"
)

// DefaultMinSales excludes products that sold nothing.
const DefaultMinSales int64 = 1

// Less reports whether a ranks strictly ahead of b: more units sold first,
// then more revenue, then more distinct buyers. Equal keys are not ordered.
func Less(a, b sales.ProductMetric) bool {
	if a.TotalQuantitySold != b.TotalQuantitySold {
		return a.TotalQuantitySold > b.TotalQuantitySold
	}
	if c := a.TotalRevenue.Cmp(b.TotalRevenue); c != 0 {
		return c > 0
	}
	return a.UniqueBuyerCount > b.UniqueBuyerCount
}

// Rank filters out metrics below minSales, orders the rest with Less and assigns
// consecutive 1-based ranks. Ties on all three keys keep their input order, so the same
// input always yields the same pages. The input slice is not modified.
func Rank(metrics []sales.ProductMetric, minSales int64) []sales.RankedEntry {
	if minSales < DefaultMinSales {
		minSales = DefaultMinSales
	}

	kept := make([]sales.ProductMetric, 0, len(metrics))
	for _, m := range metrics {
		if m.TotalQuantitySold < minSales {
			continue
		}
		kept = append(kept, m)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return Less(kept[i], kept[j])
	})

	ranked := make([]sales.RankedEntry, len(kept))
	for i, m := range kept {
		ranked[i] = sales.RankedEntry{ProductMetric: m, Rank: i + 1}
	}
	return ranked
}
