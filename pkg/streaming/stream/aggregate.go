package stream

import (
	"cmp"

	"github.com/vnykmshr/lazystream/pkg/common/validation"
)

// CombineFunc computes the next value of an Aggregator from its two inputs.
// It is the only code allowed to advance first and second.
type CombineFunc[T any] func(first, second Stream[T]) T

// Aggregator derives a stream from two input streams and a CombineFunc. It
// keeps nothing but the last value produced and never advances the inputs
// itself.
type Aggregator[T any] struct {
	owner
	first   Stream[T]
	second  Stream[T]
	combine CombineFunc[T]
	root    T
	primed  bool
}

// Aggregate takes ownership of first and second and combines them with fn.
// The first value is computed on the first call to Root or Advance.
func Aggregate[T any](first, second Stream[T], fn CombineFunc[T]) *Aggregator[T] {
	require("Aggregate", validation.ValidateNotNil("stream", "combine", fn))
	return &Aggregator[T]{
		first:   adopt("Aggregate", first),
		second:  adopt("Aggregate", second),
		combine: fn,
	}
}

// Root implements Stream.
func (a *Aggregator[T]) Root() T {
	if !a.primed {
		a.Advance()
	}
	return a.root
}

// Advance implements Stream.
func (a *Aggregator[T]) Advance() T {
	a.root = a.combine(a.first, a.second)
	a.primed = true
	return a.root
}

// Diff returns the ordered set difference source \ elim. Both inputs must be
// non-decreasing; each value is decided by looking at the two roots only.
func Diff[T cmp.Ordered](source, elim Stream[T]) *Aggregator[T] {
	return Aggregate(source, elim, difference[T])
}

func difference[T cmp.Ordered](source, elim Stream[T]) T {
	s, e := source.Root(), elim.Root()
	for {
		switch {
		case s > e:
			// elim is behind: catch it up before deciding on s
			e = elim.Advance()
		case s == e:
			s = source.Advance()
			e = elim.Advance()
		default:
			source.Advance()
			return s
		}
	}
}
