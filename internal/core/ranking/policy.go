package ranking

import (
	"crypto/sha256"
	"fmt"
	"math"
	"os"

	"github.com/aevon-lab/bestsellers/internal/core/sales"
	"gopkg.in/yaml.v3"
)

const (
	defaultCatalogShare = 0.10
	defaultMinCount     = 5
	defaultRankCap      = 100
)

// Policy decides which ranked products are flagged as best sellers during a
// full-catalog recompute. Ad-hoc filtered queries never apply it.
type Policy struct {
	// CatalogShare is the fraction of the catalog whose N-th product sets the threshold.
	CatalogShare float64 `yaml:"catalog_share"`
	// MinCount is the floor for N regardless of catalog size.
	MinCount int `yaml:"min_count"`
	// RankCap bounds the flagged set: ranks beyond it are never flagged.
	RankCap int `yaml:"rank_cap"`
	// Fingerprint is the SHA-256 of the policy file; empty for DefaultPolicy.
	Fingerprint string `yaml:"-"`
}

// DefaultPolicy flags everything at or above the 10th percentile product (at least
// the 5th), capped at rank 100.
func DefaultPolicy() Policy {
	return Policy{
		CatalogShare: defaultCatalogShare,
		MinCount:     defaultMinCount,
		RankCap:      defaultRankCap,
	}
}

// Validate rejects policies that could flag nothing or everything by accident.
func (p Policy) Validate() error {
	if p.CatalogShare <= 0 || p.CatalogShare > 1 {
		return fmt.Errorf("catalog_share must be in (0, 1], got %v", p.CatalogShare)
	}
	if p.MinCount <= 0 {
		return fmt.Errorf("min_count must be > 0, got %d", p.MinCount)
	}
	if p.RankCap <= 0 {
		return fmt.Errorf("rank_cap must be > 0, got %d", p.RankCap)
	}
	return nil
}

// ThresholdRank returns N = max(MinCount, floor(catalogSize * CatalogShare)).
func (p Policy) ThresholdRank(catalogSize int) int {
	n := int(math.Floor(float64(catalogSize) * p.CatalogShare))
	if n < p.MinCount {
		n = p.MinCount
	}
	return n
}

// Threshold returns the quantity sold by the N-th ranked product. When fewer than
// N products are ranked the last one sets it. ok is false for an empty ranking.
func (p Policy) Threshold(ranked []sales.RankedEntry, catalogSize int) (threshold int64, n int, ok bool) {
	if len(ranked) == 0 {
		return 0, 0, false
	}
	n = p.ThresholdRank(catalogSize)
	idx := n - 1
	if idx >= len(ranked) {
		idx = len(ranked) - 1
	}
	return ranked[idx].TotalQuantitySold, n, true
}

// Apply returns a copy of ranked with IsBestSeller set for every entry that meets
// the threshold and sits within RankCap.
func (p Policy) Apply(ranked []sales.RankedEntry, catalogSize int) []sales.RankedEntry {
	out := make([]sales.RankedEntry, len(ranked))
	copy(out, ranked)

	threshold, _, ok := p.Threshold(ranked, catalogSize)
	if !ok {
		return out
	}
	for i := range out {
		out[i].IsBestSeller = out[i].Rank <= p.RankCap && out[i].TotalQuantitySold >= threshold
	}
	return out
}

// LoadPolicyFile reads a YAML policy. Missing keys keep their defaults; an empty
// path returns DefaultPolicy.
func LoadPolicyFile(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading ranking policy %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("parsing ranking policy %s: %w", path, err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, fmt.Errorf("ranking policy %s: %w", path, err)
	}
	policy.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))
	return policy, nil
}
