package rangecache

import (
	"errors"

	"github.com/merula/rangecache/lru"
)

// Sentinel errors. Returned errors wrap these with the offending bounds;
// match them with errors.Is.
var (
	// ErrOutOfRange is returned when a query interval or an update index
	// falls outside the backing array. The failing call changes nothing.
	ErrOutOfRange = errors.New("rangecache: out of range")

	// ErrInvalidCapacity is returned when a store is created with a cache
	// capacity below 1. Re-exported from lru so callers matching it do not
	// need to import that package.
	ErrInvalidCapacity = lru.ErrInvalidCapacity
)
