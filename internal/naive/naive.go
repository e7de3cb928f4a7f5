// Package naive provides an uncached range-sum store. It is the oracle
// for coherence tests and the baseline the benchmark harness compares the
// cached store against.
package naive

// Store answers range-sum queries by direct summation on every call.
// Callers are expected to pass valid bounds; out-of-range access panics
// like any slice access.
type Store struct {
	values []int64
}

// New creates a store over a copy of values.
func New(values []int64) *Store {
	return &Store{values: append([]int64(nil), values...)}
}

// RangeSum returns the sum of the values at indices left through right,
// both inclusive.
func (s *Store) RangeSum(left, right int) int64 {
	var sum int64
	for _, v := range s.values[left : right+1] {
		sum += v
	}

	return sum
}

// Update writes value at index.
func (s *Store) Update(index int, value int64) {
	s.values[index] = value
}

// Len returns the length of the backing array.
func (s *Store) Len() int {
	return len(s.values)
}
