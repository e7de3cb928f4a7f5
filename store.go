package rangecache

import (
	"fmt"
	"log/slog"

	"github.com/merula/rangecache/lru"
)

// Interval is a closed index range over the backing array and the key
// under which its sum is cached. Two queries share a cache entry exactly
// when both bounds are equal.
type Interval struct {
	Left  int
	Right int
}

// Contains reports whether a write at index lands inside the interval,
// which is exactly the condition that makes a cached sum stale.
func (iv Interval) Contains(index int) bool {
	return iv.Left <= index && index <= iv.Right
}

// String renders the interval in closed-bound notation.
func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d]", iv.Left, iv.Right)
}

// Store answers range-sum queries over a mutable array of integers,
// memoizing results in a fixed-capacity LRU cache. Writes go through
// Update, which drops every cached interval containing the written index,
// so a cached sum is never served after the data under it has changed.
//
// Store is not safe for concurrent use; see SyncStore for a serialized
// wrapper.
type Store struct {
	values []int64
	cache  *lru.Cache[Interval, int64]
	logger *slog.Logger

	hits          uint64
	misses        uint64
	evictions     uint64
	invalidations uint64
}

// New creates a store over a copy of values whose cache holds at most
// capacity sums. The input slice is copied because the store must see
// every write to notice stale cache entries; mutating the caller's slice
// afterwards has no effect on the store.
//
// A capacity below 1 is rejected with ErrInvalidCapacity. An empty values
// slice is allowed, though every query against it fails with
// ErrOutOfRange.
func New(values []int64, capacity int, opts ...Option) (*Store, error) {
	cache, err := lru.New[Interval, int64](capacity, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{
		values: append([]int64(nil), values...),
		cache:  cache,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}

	return s, nil
}

// RangeSum returns the sum of the values at indices left through right,
// both inclusive. The bounds must satisfy 0 <= left <= right < Len() or
// RangeSum returns ErrOutOfRange without touching cache or array.
//
// A cached interval is served in O(1) and promoted to most-recently-used.
// A miss sums the slice directly, caches the result, and reports the
// least-recently-used interval evicted when the cache was already full.
func (s *Store) RangeSum(left, right int) (int64, error) {
	if left < 0 || left > right || right >= len(s.values) {
		return 0, fmt.Errorf("%w: interval [%d, %d] not within [0, %d)", ErrOutOfRange, left, right, len(s.values))
	}

	key := Interval{Left: left, Right: right}
	if sum, ok := s.cache.Get(key); ok {
		s.hits++
		s.log().Debug("range sum served from cache", "interval", key, "sum", sum)

		return sum, nil
	}

	var sum int64
	for _, v := range s.values[left : right+1] {
		sum += v
	}
	s.misses++
	if s.cache.Put(key, sum) {
		s.evictions++
	}
	s.log().Debug("range sum computed", "interval", key, "sum", sum)

	return sum, nil
}

// Update writes value at index and invalidates every cached interval
// containing index. The index must satisfy 0 <= index < Len() or Update
// returns ErrOutOfRange without touching cache or array.
//
// Invalidation scans the cache's key snapshot, so an update costs O(cache
// size) regardless of how many entries it drops. Intervals not containing
// index keep both their cached sum and their recency position.
func (s *Store) Update(index int, value int64) error {
	if index < 0 || index >= len(s.values) {
		return fmt.Errorf("%w: index %d not within [0, %d)", ErrOutOfRange, index, len(s.values))
	}

	s.values[index] = value
	var dropped uint64
	for _, key := range s.cache.Keys() {
		if key.Contains(index) {
			s.cache.Delete(key)
			dropped++
		}
	}
	s.invalidations += dropped
	s.log().Debug("value updated", "index", index, "value", value, "invalidated", dropped)

	return nil
}

// Len returns the length of the backing array.
func (s *Store) Len() int {
	return len(s.values)
}

// CacheLen returns the number of sums currently cached.
func (s *Store) CacheLen() int {
	return s.cache.Len()
}

// CacheCap returns the cache capacity.
func (s *Store) CacheCap() int {
	return s.cache.Cap()
}

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:          s.hits,
		Misses:        s.misses,
		Evictions:     s.evictions,
		Invalidations: s.invalidations,
	}
}

// log returns the configured logger or a no-op logger.
func (s *Store) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return s.logger
}
