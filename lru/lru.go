// Package lru provides a generic fixed-capacity cache with strict
// least-recently-used eviction.
//
// The cache maintains an exact recency order over its entries: Get and Put
// both promote the touched key to most-recently-used, and a Put that would
// grow the cache past its capacity evicts the single least-recently-used
// entry first. Get, Put, and Delete run in O(1); Keys runs in O(size).
//
// Cache is not safe for concurrent use. Callers sharing a cache across
// goroutines must serialize access externally.
package lru

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned by New when capacity is less than 1.
var ErrInvalidCapacity = errors.New("lru: capacity must be at least 1")

// EvictCallback is invoked for entries displaced by capacity pressure.
// It is not called for Delete or Purge, so callers can count genuine
// evictions separately from removals they initiated themselves.
type EvictCallback[K comparable, V any] func(key K, value V)

// Cache is a fixed-capacity key-value store with strict LRU eviction.
// Lookups go through a map while recency order lives in a linked list,
// with map values acting as node handles into the list.
//
// The zero value is not valid; use New.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]*entry[K, V]
	order    *recencyList[K, V]
	onEvict  EvictCallback[K, V]
}

// New creates a cache holding at most capacity entries. A capacity below 1
// is rejected with ErrInvalidCapacity, since such a cache could never
// retain an entry. onEvict may be nil.
func New[K comparable, V any](capacity int, onEvict EvictCallback[K, V]) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	return &Cache[K, V]{
		capacity: capacity,
		items:    make(map[K]*entry[K, V], capacity),
		order:    newRecencyList[K, V](),
		onEvict:  onEvict,
	}, nil
}

// Get returns the value stored under key and promotes the key to
// most-recently-used. A miss changes nothing.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	e, ok := c.items[key]
	if !ok {
		return value, false
	}
	c.order.moveToFront(e)

	return e.value, true
}

// Put stores value under key and marks the key most-recently-used,
// inserting or overwriting as needed. When an insert grows the cache past
// its capacity the least-recently-used entry is evicted and Put reports
// true. Overwrites never evict.
func (c *Cache[K, V]) Put(key K, value V) (evicted bool) {
	if e, ok := c.items[key]; ok {
		e.value = value
		c.order.moveToFront(e)

		return false
	}

	c.items[key] = c.order.pushFront(key, value)
	if len(c.items) <= c.capacity {
		return false
	}
	c.evictOldest()

	return true
}

// Delete removes key and reports whether it was present. Deleting an
// absent key is a no-op, not an error.
func (c *Cache[K, V]) Delete(key K) bool {
	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeEntry(e)

	return true
}

// Peek returns the value stored under key without disturbing its recency
// position.
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	e, ok := c.items[key]
	if !ok {
		return value, false
	}

	return e.value, true
}

// Contains reports whether key is present, without recency side effects.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.items[key]

	return ok
}

// Keys returns every cached key ordered from least- to most-recently-used.
// The slice is freshly allocated and never aliases cache internals, so it
// stays valid while the caller mutates the cache, including deleting the
// keys it lists.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.items))
	for e := c.order.back(); e != nil; e = c.order.prevEntry(e) {
		keys = append(keys, e.key)
	}

	return keys
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the configured capacity.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Purge drops every entry without invoking the eviction callback.
func (c *Cache[K, V]) Purge() {
	clear(c.items)
	c.order.init()
}

func (c *Cache[K, V]) evictOldest() {
	e := c.order.back()
	if e == nil {
		return
	}
	c.removeEntry(e)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

func (c *Cache[K, V]) removeEntry(e *entry[K, V]) {
	delete(c.items, e.key)
	c.order.remove(e)
}
