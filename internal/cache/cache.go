// Package cache is a sharded, TTL-bounded result cache.
package cache

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/partition"
)

const (
	DefaultTTL           = 10 * time.Minute
	DefaultSoftCap       = 80
	DefaultShards        = partition.DefaultShards
	DefaultSweepInterval = time.Minute
)

// Entry is an immutable cached value. Replacing a key swaps the whole entry.
type Entry[V any] struct {
	Key       string
	Value     V
	CreatedAt time.Time
	TTL       time.Duration
}

// Age is how long ago the entry was written.
func (e Entry[V]) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}

// Expired reports whether the entry has reached its TTL.
func (e Entry[V]) Expired(now time.Time) bool {
	return e.Age(now) >= e.TTL
}

// Options configure a ResultCache. Zero values fall back to the defaults.
type Options struct {
	TTL     time.Duration
	Shards  int
	SoftCap int
}

func (o Options) normalized() Options {
	n := o
	if n.TTL <= 0 {
		n.TTL = DefaultTTL
	}
	if n.Shards <= 0 {
		n.Shards = DefaultShards
	}
	if n.SoftCap <= 0 {
		n.SoftCap = DefaultSoftCap
	}
	return n
}

type shard[V any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[V]
}

// ResultCache maps query keys to computed results. Concurrent Puts for the same
// key are last-writer-wins; there is no request coalescing.
type ResultCache[V any] struct {
	shards  []*shard[V]
	ttl     time.Duration
	softCap int
	nowFn   func() time.Time
}

func New[V any](opts Options) *ResultCache[V] {
	opts = opts.normalized()
	c := &ResultCache[V]{
		shards:  make([]*shard[V], opts.Shards),
		ttl:     opts.TTL,
		softCap: opts.SoftCap,
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
	for i := range c.shards {
		c.shards[i] = &shard[V]{entries: make(map[string]Entry[V])}
	}
	return c
}

func (c *ResultCache[V]) shardFor(key string) *shard[V] {
	return c.shards[partition.For(key, len(c.shards))]
}

// TTL is the default time-to-live applied by Put.
func (c *ResultCache[V]) TTL() time.Duration {
	return c.ttl
}

// Get returns the live entry for key. Expired entries are removed and reported as a miss.
func (c *ResultCache[V]) Get(key string) (Entry[V], bool) {
	s := c.shardFor(key)
	now := c.nowFn()

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Entry[V]{}, false
	}
	if !e.Expired(now) {
		return e, true
	}

	s.mu.Lock()
	// Re-check: another writer may have replaced it meanwhile.
	if cur, ok := s.entries[key]; ok && cur.Expired(now) {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	return Entry[V]{}, false
}

// Put stores value under key with the default TTL.
func (c *ResultCache[V]) Put(key string, value V) Entry[V] {
	return c.PutWithTTL(key, value, c.ttl)
}

// PutWithTTL stores value with an explicit TTL. Non-positive ttl means the default.
func (c *ResultCache[V]) PutWithTTL(key string, value V, ttl time.Duration) Entry[V] {
	if ttl <= 0 {
		ttl = c.ttl
	}
	e := Entry[V]{Key: key, Value: value, CreatedAt: c.nowFn(), TTL: ttl}

	s := c.shardFor(key)
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()

	if size := c.Len(); size > c.softCap {
		slog.Warn("[ResultCache] Size above soft cap",
			"size", size,
			"soft_cap", c.softCap,
			"key", key)
	}
	return e
}

// Invalidate removes key and reports whether it was present.
func (c *ResultCache[V]) Invalidate(key string) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// InvalidateAll empties the cache and returns the number of removed entries.
func (c *ResultCache[V]) InvalidateAll() int {
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		removed += len(s.entries)
		s.entries = make(map[string]Entry[V])
		s.mu.Unlock()
	}
	return removed
}

// Len counts stored entries, including expired ones not yet swept.
func (c *ResultCache[V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// Sweep removes every expired entry and returns how many were dropped.
func (c *ResultCache[V]) Sweep() int {
	now := c.nowFn()
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for key, e := range s.entries {
			if e.Expired(now) {
				delete(s.entries, key)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (c *ResultCache[V]) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("[ResultCache] Starting sweeper", "interval", interval, "ttl", c.ttl)

	for {
		select {
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				slog.Debug("[ResultCache] Swept expired entries", "removed", removed)
			}
		case <-ctx.Done():
			slog.Info("[ResultCache] Stopping sweeper (context cancelled)")
			return
		}
	}
}

// EntryInfo describes one live entry for diagnostics.
type EntryInfo struct {
	Key        string  `json:"key"`
	AgeSeconds float64 `json:"ageSeconds"`
	TTLSeconds float64 `json:"ttlSeconds"`
}

// Stats is a point-in-time view of the cache. Expired entries are excluded.
type Stats struct {
	Size        int         `json:"size"`
	Keys        []string    `json:"keys"`
	SoftCap     int         `json:"softCap"`
	OverSoftCap bool        `json:"overSoftCap"`
	TTLSeconds  float64     `json:"ttlSeconds"`
	Entries     []EntryInfo `json:"entries"`
}

func (c *ResultCache[V]) Stats() Stats {
	now := c.nowFn()
	entries := make([]EntryInfo, 0)
	for _, s := range c.shards {
		s.mu.RLock()
		for key, e := range s.entries {
			if e.Expired(now) {
				continue
			}
			entries = append(entries, EntryInfo{
				Key:        key,
				AgeSeconds: e.Age(now).Seconds(),
				TTLSeconds: e.TTL.Seconds(),
			})
		}
		s.mu.RUnlock()
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return Stats{
		Size:        len(entries),
		Keys:        keys,
		SoftCap:     c.softCap,
		OverSoftCap: len(entries) > c.softCap,
		TTLSeconds:  c.ttl.Seconds(),
		Entries:     entries,
	}
}
