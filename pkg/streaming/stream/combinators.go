package stream

import "github.com/vnykmshr/lazystream/pkg/common/validation"

// Mapped applies a function to every value of the stream it owns.
type Mapped[T, U any] struct {
	owner
	source Stream[T]
	fn     func(T) U
	root   U
}

// Map takes ownership of s and returns a stream of fn applied to its values.
// The unmapped values are no longer reachable through s's new owner.
func Map[T, U any](s Stream[T], fn func(T) U) *Mapped[T, U] {
	require("Map", validation.ValidateNotNil("stream", "fn", fn))
	source := adopt("Map", s)
	return &Mapped[T, U]{
		source: source,
		fn:     fn,
		root:   fn(source.Root()),
	}
}

// Root implements Stream.
func (m *Mapped[T, U]) Root() U {
	return m.root
}

// Advance implements Stream.
func (m *Mapped[T, U]) Advance() U {
	m.root = m.fn(m.source.Advance())
	return m.root
}

// Filtered keeps only the values of its source that satisfy a predicate.
type Filtered[T any] struct {
	owner
	source Stream[T]
	pred   func(T) bool
	root   T
}

// Filter takes ownership of s and returns the stream of its values matching
// pred. The source is advanced right away until its root matches, so the
// first Root already satisfies pred. Filter never returns if no further
// value of s matches.
func Filter[T any](s Stream[T], pred func(T) bool) *Filtered[T] {
	require("Filter", validation.ValidateNotNil("stream", "pred", pred))
	f := &Filtered[T]{
		source: adopt("Filter", s),
		pred:   pred,
	}
	f.root = f.source.Root()
	if !pred(f.root) {
		f.Advance()
	}
	return f
}

// Root implements Stream.
func (f *Filtered[T]) Root() T {
	return f.root
}

// Advance implements Stream.
func (f *Filtered[T]) Advance() T {
	for {
		f.root = f.source.Advance()
		if f.pred(f.root) {
			return f.root
		}
	}
}

// Sampled reports one value out of every step values of its source.
type Sampled[T any] struct {
	owner
	source Stream[T]
	step   int
	root   T
}

// Every takes ownership of s and returns a stream starting at s's current
// root whose Advance performs exactly step advances on s. Used for
// down-sampling, e.g. reporting every 10000th prime.
func Every[T any](s Stream[T], step int) *Sampled[T] {
	require("Every", validation.ValidatePositive("stream", "step", step))
	source := adopt("Every", s)
	return &Sampled[T]{
		source: source,
		step:   step,
		root:   source.Root(),
	}
}

// Root implements Stream.
func (e *Sampled[T]) Root() T {
	return e.root
}

// Advance implements Stream.
func (e *Sampled[T]) Advance() T {
	for i := 0; i < e.step; i++ {
		e.root = e.source.Advance()
	}
	return e.root
}

// Original returns the sampled stream without transferring ownership.
// Callers use it to reach an underlying Memo, e.g. to Reset it.
func (e *Sampled[T]) Original() Stream[T] {
	return e.source
}

// Step returns the number of source advances per Advance.
func (e *Sampled[T]) Step() int {
	return e.step
}
