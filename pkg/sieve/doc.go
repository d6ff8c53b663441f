/*
Package sieve generates the ascending sequence of prime numbers with three
interchangeable engines, each a stream.Stream[int64].

  - Trial: trial division against a memoized cache of the primes found so
    far. The returned stream.Memo doubles as the prime cache of the others.
  - Multiples: the sieve of Eratosthenes as a cascade of stream.Diff filters,
    one per prime, each installed when the candidates reach its square.
  - Parallel: residue classes modulo a prime P scanned concurrently on a
    worker pool and merged into an ordered set.

All engines agree on every prefix:

	p, err := sieve.NewParallel(sieve.DefaultParallelConfig())
	if err != nil {
		return err
	}
	defer p.Close()
	fmt.Println(stream.Take[int64](p, 10)) // [2 3 5 7 11 13 17 19 23 29]

Warm start:

TrialFrom rebuilds the trial division cache from a saved prefix, and
Continue resumes after a given value using an existing cache without moving
its cursor. The checkpoint subpackage persists the prefix.

Values are int64 and overflow is not checked; Multiples computes p*p for
every prime it meets.
*/
package sieve
