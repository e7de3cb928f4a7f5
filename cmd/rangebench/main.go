// Command rangebench replays a synthetic range-sum workload against the
// cached store and against direct summation, then reports throughput,
// cache counters, and the speedup the cache delivers.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync/atomic"
	"time"

	"github.com/felixge/fgprof"
	"github.com/rcrowley/go-metrics"
	"golang.org/x/sync/errgroup"

	"github.com/merula/rangecache"
	"github.com/merula/rangecache/internal/naive"
	"github.com/merula/rangecache/workload"
)

type config struct {
	arrayLen    int
	queries     int
	capacity    int
	seed        int64
	hotPool     int
	hotProb     float64
	updateProb  float64
	workers     int
	withMetrics bool
	fgProfile   string
	cpuProfile  string
	memProfile  string
	traceFile   string
}

//nolint:unused // sink variable prevents compiler optimizations while profiling
var sinkSum int64

func main() {
	cfg := parseFlags()

	genOpts := []workload.Option{
		workload.WithSeed(cfg.seed),
		workload.WithHotPool(cfg.hotPool),
		workload.WithHotProb(cfg.hotProb),
		workload.WithUpdateProb(cfg.updateProb),
	}
	values := workload.Values(cfg.arrayLen, genOpts...)
	ops := workload.Ops(cfg.arrayLen, cfg.queries, genOpts...)
	if len(values) == 0 || len(ops) == 0 {
		log.Fatal("array length and operation count must be positive")
	}
	log.Printf("workload: n=%d q=%d capacity=%d seed=%d hot-pool=%d p-hot=%.2f p-update=%.2f workers=%d",
		cfg.arrayLen, cfg.queries, cfg.capacity, cfg.seed, cfg.hotPool, cfg.hotProb, cfg.updateProb, cfg.workers)

	var stopFG func() error
	if cfg.fgProfile != "" {
		fgFile, fgErr := os.Create(cfg.fgProfile)
		if fgErr != nil {
			log.Fatal(fgErr)
		}
		stopFG = fgprof.Start(fgFile, fgprof.FormatPprof)
		defer func() {
			if err := stopFG(); err != nil {
				log.Printf("fgprof stop error: %v", err)
			}
			_ = fgFile.Close()
		}()
	}

	if cfg.cpuProfile != "" {
		cpuFile, cpuErr := os.Create(cfg.cpuProfile)
		if cpuErr != nil {
			log.Fatal(cpuErr) //nolint:gocritic // exitAfterDefer is intentional - profile cleanup is best-effort
		}
		if cpuErr = pprof.StartCPUProfile(cpuFile); cpuErr != nil {
			log.Fatal(cpuErr)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}()
	}

	if cfg.traceFile != "" {
		traceFile, traceErr := os.Create(cfg.traceFile)
		if traceErr != nil {
			log.Fatal(traceErr)
		}
		if traceErr = trace.Start(traceFile); traceErr != nil {
			log.Fatal(traceErr)
		}
		defer func() {
			trace.Stop()
			_ = traceFile.Close()
		}()
	}

	var ins *instruments
	if cfg.withMetrics {
		ins = newInstruments()
	}

	uncached := runUncached(values, ops)
	cached, stats, err := runCached(cfg, values, ops, ins)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile != "" {
		runtime.GC()
		f, err := os.Create(cfg.memProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
		_ = f.Close()
	}

	report(cfg, uncached, cached, stats, ins)
}

type passResult struct {
	ops     int
	elapsed time.Duration
}

func (r passResult) nsPerOp() int64 {
	if r.ops == 0 {
		return 0
	}
	return r.elapsed.Nanoseconds() / int64(r.ops)
}

// rangeStore is the slice of the store API the replay loop needs; both
// the single-threaded and the serialized store satisfy it.
type rangeStore interface {
	RangeSum(left, right int) (int64, error)
	Update(index int, value int64) error
}

func runUncached(values []int64, ops []workload.Op) passResult {
	s := naive.New(values)

	start := time.Now()
	var total int64
	for _, op := range ops {
		switch op.Kind {
		case workload.OpRangeSum:
			total += s.RangeSum(op.Left, op.Right)
		case workload.OpUpdate:
			s.Update(op.Index, op.Value)
		}
	}
	sinkSum = total

	return passResult{ops: len(ops), elapsed: time.Since(start)}
}

func runCached(cfg config, values []int64, ops []workload.Op, ins *instruments) (passResult, rangecache.Stats, error) {
	if cfg.workers > 1 {
		store, err := rangecache.NewSync(values, cfg.capacity)
		if err != nil {
			return passResult{}, rangecache.Stats{}, err
		}

		start := time.Now()
		if err := replayParallel(store, ops, cfg.workers, ins); err != nil {
			return passResult{}, rangecache.Stats{}, err
		}

		return passResult{ops: len(ops), elapsed: time.Since(start)}, store.Stats(), nil
	}

	store, err := rangecache.New(values, cfg.capacity)
	if err != nil {
		return passResult{}, rangecache.Stats{}, err
	}

	start := time.Now()
	var total int64
	for _, op := range ops {
		sum, err := applyOp(store, op, ins)
		if err != nil {
			return passResult{}, rangecache.Stats{}, err
		}
		total += sum
	}
	sinkSum = total

	return passResult{ops: len(ops), elapsed: time.Since(start)}, store.Stats(), nil
}

func replayParallel(s rangeStore, ops []workload.Op, workers int, ins *instruments) error {
	var eg errgroup.Group
	for w := range workers {
		eg.Go(func() error {
			var local int64
			for i := w; i < len(ops); i += workers {
				sum, err := applyOp(s, ops[i], ins)
				if err != nil {
					return err
				}
				local += sum
			}
			atomic.AddInt64(&sinkSum, local)

			return nil
		})
	}

	return eg.Wait()
}

func applyOp(s rangeStore, op workload.Op, ins *instruments) (int64, error) {
	switch op.Kind {
	case workload.OpRangeSum:
		var sum int64
		var err error
		if ins != nil {
			ins.query.Time(func() { sum, err = s.RangeSum(op.Left, op.Right) })
		} else {
			sum, err = s.RangeSum(op.Left, op.Right)
		}

		return sum, err

	case workload.OpUpdate:
		var err error
		if ins != nil {
			ins.update.Time(func() { err = s.Update(op.Index, op.Value) })
		} else {
			err = s.Update(op.Index, op.Value)
		}

		return 0, err

	default:
		return 0, fmt.Errorf("unknown op kind: %d", op.Kind)
	}
}

// instruments holds the per-operation latency timers for the cached pass.
type instruments struct {
	registry metrics.Registry
	query    metrics.Timer
	update   metrics.Timer
}

func newInstruments() *instruments {
	registry := metrics.NewRegistry()

	return &instruments{
		registry: registry,
		query:    metrics.NewRegisteredTimer("rangesum.latency", registry),
		update:   metrics.NewRegisteredTimer("update.latency", registry),
	}
}

func (ins *instruments) recordStats(stats rangecache.Stats) {
	metrics.NewRegisteredCounter("cache.hits", ins.registry).Inc(int64(stats.Hits))                   //nolint:gosec // bounded by operation count
	metrics.NewRegisteredCounter("cache.misses", ins.registry).Inc(int64(stats.Misses))               //nolint:gosec // bounded by operation count
	metrics.NewRegisteredCounter("cache.evictions", ins.registry).Inc(int64(stats.Evictions))         //nolint:gosec // bounded by operation count
	metrics.NewRegisteredCounter("cache.invalidations", ins.registry).Inc(int64(stats.Invalidations)) //nolint:gosec // bounded by operation count
}

func report(cfg config, uncached, cached passResult, stats rangecache.Stats, ins *instruments) {
	fmt.Printf("uncached ops=%d elapsed=%s ns/op=%d\n", uncached.ops, uncached.elapsed, uncached.nsPerOp())
	fmt.Printf("cached ops=%d elapsed=%s ns/op=%d workers=%d\n", cached.ops, cached.elapsed, cached.nsPerOp(), cfg.workers)
	if cached.elapsed > 0 {
		fmt.Printf("speedup=%.1fx\n", float64(uncached.elapsed)/float64(cached.elapsed))
	}
	fmt.Printf("hits=%d misses=%d hit-ratio=%.1f%% evictions=%d invalidations=%d\n",
		stats.Hits, stats.Misses, stats.HitRatio()*100, stats.Evictions, stats.Invalidations)

	if ins != nil {
		ins.recordStats(stats)
		metrics.WriteOnce(ins.registry, os.Stdout)
	}
}

func parseFlags() config {
	var cfg config
	flag.IntVar(&cfg.arrayLen, "n", 100_000, "backing array length")
	flag.IntVar(&cfg.queries, "q", 50_000, "number of operations to generate")
	flag.IntVar(&cfg.capacity, "capacity", 1000, "sum cache capacity")
	flag.Int64Var(&cfg.seed, "seed", 1, "random seed")
	flag.IntVar(&cfg.hotPool, "hot-pool", workload.DefaultHotPool, "number of hot intervals")
	flag.Float64Var(&cfg.hotProb, "p-hot", workload.DefaultHotProb, "probability a query draws from the hot pool")
	flag.Float64Var(&cfg.updateProb, "p-update", workload.DefaultUpdateProb, "share of operations that are point updates")
	flag.IntVar(&cfg.workers, "workers", 1, "cached-pass workers; >1 drives the serialized store concurrently")
	flag.BoolVar(&cfg.withMetrics, "metrics", false, "collect per-operation latency timers (adds overhead to the cached pass)")
	flag.StringVar(&cfg.fgProfile, "fgprofile", "", "write fgprof (wall clock) profile to file")
	flag.StringVar(&cfg.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	flag.StringVar(&cfg.memProfile, "memprofile", "", "write heap profile to file")
	flag.StringVar(&cfg.traceFile, "trace", "", "write trace to file")
	flag.Parse()

	return cfg
}
