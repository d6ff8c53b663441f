package sieve

import (
	"github.com/sirupsen/logrus"

	"github.com/vnykmshr/lazystream/pkg/streaming/stream"
)

// Multiples is the sieve of Eratosthenes built from streams. Each prime p
// installs a Diff that removes its multiples, but only once the candidates
// reach p*p, so no bounded sieve array is ever allocated.
//
// The state machine holds the candidate stream and a split pair of the
// stream the next prime's multiples are drawn from. Both are replaced when
// a filter is installed; the old streams are owned by the new ones.
type Multiples struct {
	root    int64
	next    stream.Stream[int64]
	pending [2]stream.Stream[int64]
	filters int
	opts    options
}

// NewMultiples returns the multiples elimination sieve.
func NewMultiples(opts ...Option) *Multiples {
	a, b := stream.Split(stream.Skip[int64](stream.Naturals(1), 1))
	m := &Multiples{
		root:    2,
		next:    stream.Skip[int64](stream.Naturals(1), 1),
		pending: [2]stream.Stream[int64]{a, b},
		opts:    newOptions("multiples", opts),
	}
	m.opts.metrics.PrimeEmitted(m.opts.name)
	return m
}

// Root implements stream.Stream.
func (m *Multiples) Root() int64 {
	return m.root
}

// Advance implements stream.Stream.
func (m *Multiples) Advance() int64 {
	p := m.pending[0].Root()
	m.root = m.next.Advance()
	if m.root == p*p {
		m.eliminate(p)
	}
	m.opts.metrics.PrimeEmitted(m.opts.name)
	return m.root
}

// eliminate installs the filter for the multiples of p. The candidates have
// just reached p*p, so everything below it is already prime.
func (m *Multiples) eliminate(p int64) {
	times := func(n int64) int64 { return n * p }
	multiples, rest := stream.Split[int64](stream.Map(m.pending[0], times))

	a, b := stream.Split[int64](stream.Diff(stream.Skip[int64](m.pending[1], 1), stream.Stream[int64](multiples)))
	m.pending = [2]stream.Stream[int64]{a, b}
	m.next = stream.Diff(m.next, stream.Stream[int64](rest))
	m.root = m.next.Root()

	m.filters++
	m.opts.metrics.SetFilters(m.opts.name, m.filters)
	m.opts.logger.WithFields(logrus.Fields{
		"sieve":   m.opts.name,
		"prime":   p,
		"filters": m.filters,
	}).Debug("elimination filter installed")
}

// Filters returns how many elimination filters are installed.
func (m *Multiples) Filters() int {
	return m.filters
}
