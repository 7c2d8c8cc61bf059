// Package ttlcache provides the keyed, time-boxed cache shared by every
// endpoint. An entry is fresh while now-CreatedAt < duration; stale entries
// are kept until overwritten and never served.
package ttlcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"halfmoon/widget-service/internal/metrics"
)

// Entry is a stored value and the moment it was written.
type Entry[V any] struct {
	CreatedAt time.Time
	Value     V
}

// ComputeFn produces the value for a missing or stale key.
type ComputeFn[V any] func(ctx context.Context) (V, error)

type Cache[K comparable, V any] struct {
	name     string
	duration time.Duration
	clock    Clock
	coalesce bool
	flights  singleflight.Group

	mu    sync.Mutex
	store store[K, V]
}

// New creates a cache whose entries stay fresh for duration. name labels the
// cache in metrics.
func New[K comparable, V any](name string, duration time.Duration, opts ...Option) (*Cache[K, V], error) {
	if duration <= 0 {
		return nil, fmt.Errorf("cache %s: duration must be positive, got %s", name, duration)
	}

	o := options{clock: realClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	var s store[K, V] = newMapStore[K, V]()
	if o.capacity > 0 {
		bounded, err := newLRUStore[K, V](o.capacity)
		if err != nil {
			return nil, fmt.Errorf("cache %s: %w", name, err)
		}
		s = bounded
	}

	return &Cache[K, V]{
		name:     name,
		duration: duration,
		clock:    o.clock,
		coalesce: o.coalesce,
		store:    s,
	}, nil
}

func (c *Cache[K, V]) Name() string {
	return c.name
}

func (c *Cache[K, V]) Duration() time.Duration {
	return c.duration
}

// Get returns the value for key if it was written less than the cache
// duration ago.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	entry, ok := c.store.load(key)
	now := c.clock.Now()
	c.mu.Unlock()

	if !ok || now.Sub(entry.CreatedAt) >= c.duration {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		var zero V
		return zero, false
	}

	metrics.CacheHits.WithLabelValues(c.name).Inc()
	return entry.Value, true
}

// Put replaces any entry for key with value stamped at the current time.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	c.store.save(key, Entry[V]{CreatedAt: c.clock.Now(), Value: value})
	size := c.store.len()
	c.mu.Unlock()

	metrics.CacheEntries.WithLabelValues(c.name).Set(float64(size))
}

// Peek returns the raw entry for key regardless of its age.
func (c *Cache[K, V]) Peek(key K) (Entry[V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.peek(key)
}

// Len counts stored entries, stale ones included.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.len()
}

// GetOrCompute returns the fresh value for key, reporting cached=true, or
// calls compute and stores its result. A failed compute stores nothing and
// leaves any previous entry as it was.
//
// Without WithCoalescing, concurrent misses on one key each call compute and
// the last successful write wins.
func (c *Cache[K, V]) GetOrCompute(ctx context.Context, key K, compute ComputeFn[V]) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	if !c.coalesce {
		v, err := c.computeAndStore(ctx, key, compute)
		return v, false, err
	}

	res, err, _ := c.flights.Do(fmt.Sprintf("%v", key), func() (any, error) {
		return c.computeAndStore(ctx, key, compute)
	})
	v, _ := res.(V)
	return v, false, err
}

func (c *Cache[K, V]) computeAndStore(ctx context.Context, key K, compute ComputeFn[V]) (V, error) {
	v, err := compute(ctx)
	if err != nil {
		metrics.CacheComputeFailures.WithLabelValues(c.name).Inc()
		var zero V
		return zero, err
	}

	c.Put(key, v)
	return v, nil
}
