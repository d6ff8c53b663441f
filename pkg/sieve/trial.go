package sieve

import (
	"github.com/vnykmshr/lazystream/pkg/common/validation"
	"github.com/vnykmshr/lazystream/pkg/streaming/stream"
)

// trialRule finds the next prime by trial division against the primes
// already in the cache. The primes must be ascending and complete up to the
// square root of every candidate.
type trialRule struct {
	head *stream.Counter
	opts options
}

func (r *trialRule) next(primes []int64) (int64, bool) {
	for {
		n := r.head.Root()
		r.head.Advance()
		if dividesNone(n, primes) {
			r.opts.metrics.PrimeEmitted(r.opts.name)
			r.opts.metrics.SetCacheSize(r.opts.name, len(primes)+1)
			return n, true
		}
	}
}

// dividesNone reports whether no prime up to the square root of n divides n.
func dividesNone(n int64, primes []int64) bool {
	for _, p := range primes {
		if p > n/p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}
	return true
}

// Trial returns the trial division sieve. The primes are kept in the Memo,
// so it doubles as the prime cache of Continue and Parallel.
func Trial(opts ...Option) *stream.Memo[int64] {
	return TrialFrom(nil, opts...)
}

// TrialFrom returns a trial division sieve whose cache starts with primes.
// primes must be the complete ascending prefix of the primes, as produced
// by an earlier Trial; otherwise later values are wrong. Only the ordering
// is checked: TrialFrom panics if primes is not strictly ascending.
func TrialFrom(primes []int64, opts ...Option) *stream.Memo[int64] {
	if err := validation.ValidateAscending("sieve", "primes", primes); err != nil {
		panic(err)
	}
	first := int64(2)
	if len(primes) > 0 {
		first = primes[len(primes)-1] + 1
	}
	rule := &trialRule{
		head: stream.Naturals(first),
		opts: newOptions("trial", opts),
	}
	rule.opts.metrics.SetCacheSize(rule.opts.name, len(primes))
	return stream.NewMemoFrom(primes, rule.next)
}

// isPrimeAgainst tests n against the primes of cache, extending the cache
// as far as the square root of n. Safe for concurrent use.
func isPrimeAgainst(cache *stream.Memo[int64], n int64) bool {
	if n < 2 {
		return false
	}
	for i := 0; ; i++ {
		p := cache.At(i)
		if p > n/p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}
}

// Continue returns the primes strictly greater than after, tested by trial
// division against cache. The cache cursor is not moved; the cache is only
// extended as far as the square roots of the candidates require.
func Continue(cache *stream.Memo[int64], after int64) stream.Stream[int64] {
	if err := validation.ValidateNotNil("sieve", "cache", cache); err != nil {
		panic(err)
	}
	first := max(after+1, 2)
	return stream.Filter[int64](stream.Naturals(first), func(n int64) bool {
		return isPrimeAgainst(cache, n)
	})
}
