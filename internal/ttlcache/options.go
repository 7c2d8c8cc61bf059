package ttlcache

type options struct {
	clock    Clock
	capacity int
	coalesce bool
}

type Option func(*options)

// WithClock replaces the wall clock. Used by tests.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithCapacity bounds the cache to capacity keys with least-recently-used
// eviction. Zero or negative keeps the cache unbounded.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithCoalescing makes concurrent misses for the same key share a single
// compute call.
func WithCoalescing() Option {
	return func(o *options) {
		o.coalesce = true
	}
}
