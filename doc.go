// Package rangecache provides range-sum queries over a mutable array of
// integers, accelerated by a capacity-bounded LRU cache.
//
// This package provides the high-level query API through [Store]. The
// underlying cache is the generic [lru] subpackage, usable on its own for
// any key-value caching need.
//
// A store combines two pieces:
//   - A backing array of int64 values, owned by the store
//   - An LRU cache mapping query intervals to their precomputed sums
//
// # Quick Start
//
// Create a store and query it:
//
//	s, err := rangecache.New(values, 1024)
//	if err != nil {
//	    return err
//	}
//	sum, err := s.RangeSum(10, 500) // computed once, cached after
//
// Write through the store so stale sums are dropped:
//
//	err = s.Update(42, 7) // invalidates every cached interval containing 42
//
// # Coherence
//
// RangeSum never serves a sum that disagrees with the current array:
// Update removes every cached interval containing the written index before
// returning. Intervals untouched by the write keep their cached sums and
// their recency positions.
//
// # Concurrency
//
// Store is single-threaded. Wrap it in [SyncStore] to share one store
// across goroutines:
//
//	s, err := rangecache.NewSync(values, 1024)
//
// # Instrumentation
//
// [Store.Stats] exposes hit, miss, eviction, and invalidation counters,
// and [WithLogger] enables debug-level logging of cache activity:
//
//	s, err := rangecache.New(values, 1024, rangecache.WithLogger(logger))
package rangecache
