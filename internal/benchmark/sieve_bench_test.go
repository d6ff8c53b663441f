package benchmark

import (
	"fmt"
	"testing"

	"github.com/vnykmshr/lazystream/pkg/sieve"
	"github.com/vnykmshr/lazystream/pkg/streaming/stream"
)

const benchPrimes = 20000

// BenchmarkSieveEngines compares the three engines on the same prefix.
func BenchmarkSieveEngines(b *testing.B) {
	b.Run("trial", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			stream.Take[int64](sieve.Trial(), benchPrimes)
		}
	})

	b.Run("multiples", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			stream.Take[int64](sieve.NewMultiples(), benchPrimes)
		}
	})

	for _, parallelism := range []int{3, 5, 7} {
		b.Run(fmt.Sprintf("parallel_%d", parallelism), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				p, err := sieve.NewParallel(sieve.ParallelConfig{Parallelism: parallelism, BatchSize: 2000})
				if err != nil {
					b.Fatalf("failed to create sieve: %v", err)
				}
				stream.Take[int64](p, benchPrimes)
				p.Close()
			}
		})
	}
}

// BenchmarkParallelBatchSize measures how refill granularity affects throughput.
func BenchmarkParallelBatchSize(b *testing.B) {
	for _, batch := range []int{100, 1000, 10001} {
		b.Run(fmt.Sprintf("batch_%d", batch), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				p, err := sieve.NewParallel(sieve.ParallelConfig{Parallelism: 5, BatchSize: batch})
				if err != nil {
					b.Fatalf("failed to create sieve: %v", err)
				}
				stream.Take[int64](p, benchPrimes)
				p.Close()
			}
		})
	}
}

// BenchmarkWarmStart measures resuming from a cached prefix against a cold start.
func BenchmarkWarmStart(b *testing.B) {
	prefix := stream.Take[int64](sieve.Trial(), benchPrimes)

	b.Run("cold", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			cache := sieve.Trial()
			stream.Take[int64](sieve.Continue(cache, prefix[len(prefix)-1]), 1000)
		}
	})

	b.Run("warm", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			cache := sieve.TrialFrom(prefix)
			stream.Take[int64](sieve.Continue(cache, prefix[len(prefix)-1]), 1000)
		}
	})
}
