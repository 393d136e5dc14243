package projection

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/sales"
)

const (
	cacheKeyPrefix  = "bestsellers"
	cacheKeyVersion = "v1"
	anyValue        = "*"
)

// QueryRequest is an ad-hoc best-seller query as received from a caller.
type QueryRequest struct {
	Period string
	Page   int
	Limit  int
	// Offset wins over Page when set.
	Offset     *int
	VendorID   string
	CategoryID string
	MinSales   int64
}

// normalizedQuery holds a QueryRequest after defaulting and clamping.
// Two requests that normalize equally share a cache entry.
type normalizedQuery struct {
	window   sales.Window
	limit    int
	offset   int
	filters  sales.Filters
	minSales int64
}

// cacheKey is a pure function of the normalized parameters.
func (q normalizedQuery) cacheKey() string {
	return newKeyBuilder().
		add("period", string(q.window)).
		add("vendor", q.filters.VendorID).
		add("category", q.filters.CategoryID).
		add("min", strconv.FormatInt(q.minSales, 10)).
		add("offset", strconv.Itoa(q.offset)).
		add("limit", strconv.Itoa(q.limit)).
		build()
}

type keyBuilder struct {
	parts []string
}

func newKeyBuilder() *keyBuilder {
	return &keyBuilder{parts: []string{cacheKeyPrefix, cacheKeyVersion}}
}

// add appends name=value. Empty values become "*"; others are escaped so a
// value containing ":" or "=" cannot collide with another key.
func (b *keyBuilder) add(name, value string) *keyBuilder {
	if value == "" {
		value = anyValue
	} else {
		value = url.QueryEscape(value)
	}
	b.parts = append(b.parts, name+"="+value)
	return b
}

func (b *keyBuilder) build() string {
	return strings.Join(b.parts, ":")
}

// ServiceParameter configures paging defaults and the per-request budget.
type ServiceParameter struct {
	DefaultPageSize  int
	MaxPageSize      int
	Timeout          time.Duration
	// RecomputeTimeout bounds a manually triggered full recompute.
	RecomputeTimeout time.Duration
}

const (
	defaultPageSize         = 20
	maxPageSize             = 100
	defaultTimeout          = 10 * time.Second
	defaultRecomputeTimeout = 30 * time.Minute
)

func (p ServiceParameter) normalized() ServiceParameter {
	n := p
	if n.MaxPageSize <= 0 {
		n.MaxPageSize = maxPageSize
	}
	if n.DefaultPageSize <= 0 {
		n.DefaultPageSize = defaultPageSize
	}
	if n.DefaultPageSize > n.MaxPageSize {
		n.DefaultPageSize = n.MaxPageSize
	}
	if n.Timeout <= 0 {
		n.Timeout = defaultTimeout
	}
	if n.RecomputeTimeout <= 0 {
		n.RecomputeTimeout = defaultRecomputeTimeout
	}
	return n
}
