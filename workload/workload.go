// Package workload generates the synthetic operation mixes used to
// exercise and benchmark the range-sum store.
//
// Real query traffic is skewed, and the generator reproduces that shape:
// most queries revisit a small fixed pool of hot intervals, a minority
// draw uniform random intervals, and a small share of operations are
// point updates. All randomness is seeded, so a configuration always
// produces the same workload.
package workload

import "math/rand"

// OpKind discriminates generated operations.
type OpKind uint8

const (
	// OpRangeSum queries the sum over the closed interval [Left, Right].
	OpRangeSum OpKind = iota
	// OpUpdate writes Value at Index.
	OpUpdate
)

// Op is a single generated operation. Left and Right are set for
// OpRangeSum, Index and Value for OpUpdate.
type Op struct {
	Kind  OpKind
	Left  int
	Right int
	Index int
	Value int64
}

// Generation defaults, chosen to produce a cache-friendly read-heavy mix.
const (
	DefaultHotPool    = 30
	DefaultHotProb    = 0.95
	DefaultUpdateProb = 0.03
	DefaultMaxValue   = 100
)

type config struct {
	seed       int64
	hotPool    int
	hotProb    float64
	updateProb float64
	maxValue   int64
}

// Option configures generation.
type Option func(*config)

// WithSeed seeds the generator. Equal seeds yield equal output.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithHotPool sets the number of fixed hot intervals queries draw from.
func WithHotPool(n int) Option {
	return func(c *config) { c.hotPool = n }
}

// WithHotProb sets the probability that a query draws from the hot pool
// instead of picking a uniform random interval.
func WithHotProb(p float64) Option {
	return func(c *config) { c.hotProb = p }
}

// WithUpdateProb sets the share of operations that are point updates.
func WithUpdateProb(p float64) Option {
	return func(c *config) { c.updateProb = p }
}

// WithMaxValue sets the inclusive upper bound for generated values, which
// are drawn uniformly from [1, max]. Bounds below 1 are raised to 1.
func WithMaxValue(max int64) Option {
	return func(c *config) { c.maxValue = max }
}

func newConfig(opts []Option) config {
	cfg := config{
		seed:       1,
		hotPool:    DefaultHotPool,
		hotProb:    DefaultHotProb,
		updateProb: DefaultUpdateProb,
		maxValue:   DefaultMaxValue,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.hotPool < 0 {
		cfg.hotPool = 0
	}
	if cfg.maxValue < 1 {
		cfg.maxValue = 1
	}

	return cfg
}

// Values generates n array values drawn uniformly from [1, max]. It
// returns nil when n is less than 1.
func Values(n int, opts ...Option) []int64 {
	if n < 1 {
		return nil
	}
	cfg := newConfig(opts)
	rng := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // reproducibility matters here, not unpredictability

	values := make([]int64, n)
	for i := range values {
		values[i] = 1 + rng.Int63n(cfg.maxValue)
	}

	return values
}

// Ops generates q operations for an array of length n. Every emitted
// operation is valid for that length: 0 <= Left <= Right < n for queries
// and 0 <= Index < n for updates. It returns nil when n or q is less
// than 1.
//
// Hot intervals straddle the array midpoint, so they overlap each other
// heavily and a single update can invalidate many of them at once.
func Ops(n, q int, opts ...Option) []Op {
	if n < 1 || q < 1 {
		return nil
	}
	cfg := newConfig(opts)
	rng := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // reproducibility matters here, not unpredictability

	hot := make([]Op, cfg.hotPool)
	for i := range hot {
		hot[i] = Op{
			Kind:  OpRangeSum,
			Left:  rng.Intn(n/2 + 1),
			Right: n/2 + rng.Intn(n-n/2),
		}
	}

	ops := make([]Op, 0, q)
	for range q {
		if rng.Float64() < cfg.updateProb {
			ops = append(ops, Op{
				Kind:  OpUpdate,
				Index: rng.Intn(n),
				Value: 1 + rng.Int63n(cfg.maxValue),
			})

			continue
		}
		if len(hot) > 0 && rng.Float64() < cfg.hotProb {
			ops = append(ops, hot[rng.Intn(len(hot))])

			continue
		}
		left := rng.Intn(n)
		ops = append(ops, Op{
			Kind:  OpRangeSum,
			Left:  left,
			Right: left + rng.Intn(n-left),
		})
	}

	return ops
}
