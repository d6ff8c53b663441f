/*
Package lazystream provides lazily evaluated infinite streams in Go and
three prime number sieves built on them.

Streams (pkg/streaming):
  - stream: cursor streams with Map, Filter, Every, Split, Aggregate, Diff
    and the replayable Memo

Sieves (pkg/sieve):
  - Trial: trial division against a memoized prime cache
  - Multiples: cascading elimination of multiples, one Diff per prime
  - Parallel: residue classes scanned on a worker pool
  - checkpoint: Redis and in-memory persistence for warm starts

Support:
  - scheduling/workerpool: fork/join worker pool
  - metrics: Prometheus instrumentation

Example usage:

	import (
		"github.com/vnykmshr/lazystream/pkg/sieve"
		"github.com/vnykmshr/lazystream/pkg/streaming/stream"
	)

	primes := sieve.NewMultiples()
	fmt.Println(stream.Take[int64](primes, 5)) // [2 3 5 7 11]
*/
package lazystream
