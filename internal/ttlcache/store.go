package ttlcache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// store holds entries. Implementations are not required to be safe for
// concurrent use; Cache serializes access.
type store[K comparable, V any] interface {
	load(key K) (Entry[V], bool)
	peek(key K) (Entry[V], bool)
	save(key K, entry Entry[V])
	len() int
}

type mapStore[K comparable, V any] struct {
	entries map[K]Entry[V]
}

func newMapStore[K comparable, V any]() *mapStore[K, V] {
	return &mapStore[K, V]{entries: make(map[K]Entry[V])}
}

func (s *mapStore[K, V]) load(key K) (Entry[V], bool) {
	e, ok := s.entries[key]
	return e, ok
}

func (s *mapStore[K, V]) peek(key K) (Entry[V], bool) {
	return s.load(key)
}

func (s *mapStore[K, V]) save(key K, entry Entry[V]) {
	s.entries[key] = entry
}

func (s *mapStore[K, V]) len() int {
	return len(s.entries)
}

// lruStore bounds the number of keys; the least recently read or written key
// is dropped once capacity is reached.
type lruStore[K comparable, V any] struct {
	entries *lru.Cache[K, Entry[V]]
}

func newLRUStore[K comparable, V any](capacity int) (*lruStore[K, V], error) {
	entries, err := lru.New[K, Entry[V]](capacity)
	if err != nil {
		return nil, err
	}
	return &lruStore[K, V]{entries: entries}, nil
}

func (s *lruStore[K, V]) load(key K) (Entry[V], bool) {
	return s.entries.Get(key)
}

func (s *lruStore[K, V]) peek(key K) (Entry[V], bool) {
	return s.entries.Peek(key)
}

func (s *lruStore[K, V]) save(key K, entry Entry[V]) {
	s.entries.Add(key, entry)
}

func (s *lruStore[K, V]) len() int {
	return s.entries.Len()
}
