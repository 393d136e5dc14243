package cache

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T, opts Options) (*ResultCache[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	c := New[string](opts)
	c.nowFn = clock.Now
	return c, clock
}

func TestResultCache_PutGet(t *testing.T) {
	c, _ := newTestCache(t, Options{})

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Put("k", "v1")
	e, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v1", e.Value)
	assert.Equal(t, DefaultTTL, e.TTL)

	c.Put("k", "v2")
	e, ok = c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", e.Value)
}

func TestResultCache_ExpiresAtTTL(t *testing.T) {
	c, clock := newTestCache(t, Options{TTL: 10 * time.Minute})
	c.Put("k", "v")

	clock.Advance(10*time.Minute - time.Second)
	e, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 10*time.Minute-time.Second, e.Age(clock.Now()))

	clock.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry whose age equals the TTL is a miss")
	assert.Equal(t, 0, c.Len(), "expired entry is removed on read")
}

func TestResultCache_PutWithTTLOverridesDefault(t *testing.T) {
	c, clock := newTestCache(t, Options{TTL: time.Minute})
	c.PutWithTTL("long", "v", time.Hour)
	c.PutWithTTL("default", "v", 0)

	clock.Advance(2 * time.Minute)

	_, ok := c.Get("long")
	assert.True(t, ok)
	_, ok = c.Get("default")
	assert.False(t, ok)
}

func TestResultCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	c.Put("a", "1")
	c.Put("b", "2")
	c.Put("c", "3")

	assert.True(t, c.Invalidate("a"))
	assert.False(t, c.Invalidate("a"))
	_, ok := c.Get("a")
	assert.False(t, ok)

	assert.Equal(t, 2, c.InvalidateAll())
	assert.Equal(t, 0, c.Len())
}

func TestResultCache_Sweep(t *testing.T) {
	c, clock := newTestCache(t, Options{TTL: time.Minute})
	c.Put("old", "1")
	clock.Advance(30 * time.Second)
	c.Put("new", "2")
	clock.Advance(31 * time.Second)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("new")
	assert.True(t, ok)
}

func TestResultCache_Stats(t *testing.T) {
	c, clock := newTestCache(t, Options{TTL: time.Minute, SoftCap: 2})
	c.Put("b", "2")
	c.Put("a", "1")
	c.Put("c", "3")
	clock.Advance(15 * time.Second)

	stats := c.Stats()
	assert.Equal(t, 3, stats.Size)
	assert.Equal(t, []string{"a", "b", "c"}, stats.Keys)
	assert.Equal(t, 2, stats.SoftCap)
	assert.True(t, stats.OverSoftCap)
	assert.Equal(t, 60.0, stats.TTLSeconds)
	require.Len(t, stats.Entries, 3)
	assert.Equal(t, 15.0, stats.Entries[0].AgeSeconds)

	clock.Advance(time.Minute)
	stats = c.Stats()
	assert.Zero(t, stats.Size)
	assert.Empty(t, stats.Keys)
}

func TestResultCache_SoftCapNeverEvicts(t *testing.T) {
	c, _ := newTestCache(t, Options{SoftCap: 5})
	for i := 0; i < 20; i++ {
		c.Put("k"+strconv.Itoa(i), "v")
	}
	assert.Equal(t, 20, c.Len())
}

func TestResultCache_ConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(t, Options{Shards: 4})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := "k" + strconv.Itoa(i%25)
				c.Put(key, strconv.Itoa(w))
				c.Get(key)
				if i%50 == 0 {
					c.Invalidate(key)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 25)
}

func TestResultCache_StartSweeperStopsOnCancel(t *testing.T) {
	c, _ := newTestCache(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		c.StartSweeper(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
