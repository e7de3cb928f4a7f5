package rangecache

import "sync"

// SyncStore wraps a Store with a mutex held for the whole of every
// operation.
//
// The lock must span whole operations: a RangeSum miss is a
// read-compute-cache sequence and an Update interleaves an array write
// with an invalidation scan, so guarding individual cache accesses would
// let a stale sum be cached between an update and its invalidation.
type SyncStore struct {
	mu    sync.Mutex
	store *Store
}

// NewSync creates a serialized store. It accepts the same arguments as New.
func NewSync(values []int64, capacity int, opts ...Option) (*SyncStore, error) {
	store, err := New(values, capacity, opts...)
	if err != nil {
		return nil, err
	}

	return &SyncStore{store: store}, nil
}

// RangeSum returns the sum of the values at indices left through right,
// both inclusive. See Store.RangeSum.
func (s *SyncStore) RangeSum(left, right int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.RangeSum(left, right)
}

// Update writes value at index and invalidates every cached interval
// containing index. See Store.Update.
func (s *SyncStore) Update(index int, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Update(index, value)
}

// Len returns the length of the backing array.
func (s *SyncStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Len()
}

// CacheLen returns the number of sums currently cached.
func (s *SyncStore) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.CacheLen()
}

// CacheCap returns the cache capacity.
func (s *SyncStore) CacheCap() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.CacheCap()
}

// Stats returns a snapshot of the store's counters.
func (s *SyncStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Stats()
}
