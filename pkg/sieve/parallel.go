package sieve

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	lserrors "github.com/vnykmshr/lazystream/pkg/common/errors"
	"github.com/vnykmshr/lazystream/pkg/common/validation"
	"github.com/vnykmshr/lazystream/pkg/scheduling/workerpool"
	"github.com/vnykmshr/lazystream/pkg/streaming/stream"
)

// ParallelConfig configures the parallel sieve.
type ParallelConfig struct {
	// Parallelism is the modulus P of the residue classes. Must be prime;
	// P-1 workers scan the classes 1..P-1 and the primes up to P are seeds.
	Parallelism int

	// BatchSize is how many primes each worker produces per refill.
	BatchSize int

	// Cache is the trial division Memo the workers test candidates against.
	// Nil creates a fresh Trial sieve.
	Cache *stream.Memo[int64]
}

// DefaultParallelConfig returns the default configuration: 5 residue
// classes and batches of 10001 primes.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		Parallelism: 5,
		BatchSize:   10001,
	}
}

// Validate checks the configuration.
func (c ParallelConfig) Validate() error {
	if err := validation.ValidatePrime("sieve", "Parallelism", c.Parallelism); err != nil {
		return err
	}
	return validation.ValidatePositive("sieve", "BatchSize", c.BatchSize)
}

// Parallel produces the primes in ascending order by scanning residue
// classes concurrently. Refills run all workers to completion on a worker
// pool, then merge their output into an ordered set.
//
// A value is emitted only once every worker has passed it (the watermark),
// so the order is global even when one class runs ahead of the others.
// Parallel itself is not safe for concurrent use and must be closed.
type Parallel struct {
	config    ParallelConfig
	opts      options
	cache     *stream.Memo[int64]
	workers   []stream.Stream[int64]
	last      []int64
	merged    *mergeSet
	watermark int64
	pool      workerpool.Pool
	root      int64
	primed    bool
	batches   int
}

// NewParallel returns a parallel sieve, or a ValidationError if config is
// invalid.
func NewParallel(config ParallelConfig, opts ...Option) (*Parallel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	o := newOptions("parallel", opts)
	cache := config.Cache
	if cache == nil {
		cache = Trial(WithName(o.name+"-cache"), WithMetrics(o.metrics), WithLogger(o.logger))
	}

	modulus := int64(config.Parallelism)
	var seeds []int64
	for i := 0; cache.At(i) <= modulus; i++ {
		seeds = append(seeds, cache.At(i))
	}

	workers := make([]stream.Stream[int64], config.Parallelism-1)
	for r := range workers {
		residue := int64(r + 1)
		workers[r] = stream.Filter[int64](
			stream.Every[int64](stream.Naturals(residue+modulus), config.Parallelism),
			func(n int64) bool { return isPrimeAgainst(cache, n) },
		)
	}

	return &Parallel{
		config:    config,
		opts:      o,
		cache:     cache,
		workers:   workers,
		last:      make([]int64, len(workers)),
		merged:    newMergeSet(seeds...),
		watermark: math.MinInt64,
		pool: workerpool.NewWithConfig(workerpool.Config{
			WorkerCount: len(workers),
			Name:        o.name,
			Metrics:     o.metrics,
		}),
	}, nil
}

// Root implements stream.Stream. The first call runs the first refill.
func (p *Parallel) Root() int64 {
	if !p.primed {
		p.root = p.pop()
		p.primed = true
	}
	return p.root
}

// Advance implements stream.Stream. It panics if a worker fails or the
// sieve is closed.
func (p *Parallel) Advance() int64 {
	p.Root()
	p.root = p.pop()
	return p.root
}

// Close stops the worker pool and waits for it to exit.
func (p *Parallel) Close() {
	<-p.pool.Shutdown()
}

// Cache returns the Memo the workers test candidates against.
func (p *Parallel) Cache() *stream.Memo[int64] {
	return p.cache
}

func (p *Parallel) pop() int64 {
	for {
		if v, ok := p.merged.popAtMost(p.watermark); ok {
			p.opts.metrics.PrimeEmitted(p.opts.name)
			return v
		}
		p.refill()
	}
}

// refill runs one batch on every worker and raises the watermark to the
// smallest last value among them.
func (p *Parallel) refill() {
	start := time.Now()
	batch := p.config.BatchSize

	tasks := make([]workerpool.Task, len(p.workers))
	for i, w := range p.workers {
		tasks[i] = workerpool.TaskFunc(func(ctx context.Context) error {
			values := stream.Take(w, batch)
			w.Advance()
			p.merged.add(values...)
			p.last[i] = values[len(values)-1]
			return nil
		})
	}

	if err := p.pool.RunAll(context.Background(), tasks); err != nil {
		panic(lserrors.NewOperationError("sieve", "refill", err).
			WithContext(fmt.Sprintf("batch %d", p.batches+1)))
	}
	p.batches++
	p.watermark = slices.Min(p.last)

	d := time.Since(start)
	buffered := p.merged.size()
	p.opts.metrics.ObserveRefill(p.opts.name, d, buffered, p.watermark)
	p.opts.logger.WithFields(logrus.Fields{
		"sieve":     p.opts.name,
		"batch":     p.batches,
		"watermark": p.watermark,
		"buffered":  buffered,
		"duration":  d,
	}).Debug("refill complete")
}
