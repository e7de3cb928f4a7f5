package rangecache

// Stats is a point-in-time snapshot of a store's counters.
//
// Hits and Misses count RangeSum outcomes. Evictions counts cache entries
// displaced by capacity pressure, while Invalidations counts entries
// dropped because an update landed inside their interval; the two removal
// counters never overlap.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	Invalidations uint64
}

// HitRatio returns the fraction of queries served from cache, or 0 before
// any query has been made.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}
