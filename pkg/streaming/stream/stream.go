package stream

import (
	lserrors "github.com/vnykmshr/lazystream/pkg/common/errors"
	"github.com/vnykmshr/lazystream/pkg/common/validation"
)

// Stream is a cursor over an unbounded sequence of values.
//
// Root must be O(1), free of side effects and idempotent: calling it any
// number of times without an intervening Advance returns the same value.
// Advance moves the cursor one logical step forward and returns the new Root.
// Values passed by the cursor are gone unless a combinator buffers them.
type Stream[T any] interface {
	// Root returns the value under the cursor.
	Root() T

	// Advance moves the cursor forward and returns the new root.
	Advance() T
}

// Wrapper is implemented by streams that keep a non-owning reference to the
// stream they sample from.
type Wrapper[T any] interface {
	Original() Stream[T]
}

// Original returns the stream s was built from, or nil when s does not
// expose one.
func Original[T any](s Stream[T]) Stream[T] {
	if w, ok := s.(Wrapper[T]); ok {
		return w.Original()
	}
	return nil
}

// Skip advances s n times and returns it. The skipped values are not seen
// by anything else. s must not be owned by a combinator.
func Skip[T any](s Stream[T], n int) Stream[T] {
	unowned("Skip", s)
	require("Skip", validation.ValidateNonNegative("stream", "n", n))
	for ; n > 0; n-- {
		s.Advance()
	}
	return s
}

// Take returns n values starting with the current root, advancing s n-1
// times in between. The cursor is left on the last value returned. s must
// not be owned by a combinator.
func Take[T any](s Stream[T], n int) []T {
	unowned("Take", s)
	require("Take", validation.ValidateNonNegative("stream", "n", n))
	out := make([]T, 0, n)
	if n == 0 {
		return out
	}
	out = append(out, s.Root())
	for len(out) < n {
		out = append(out, s.Advance())
	}
	return out
}

// Counter is the Peano-style natural number generator: every Advance adds
// one to the root. Values past math.MaxInt64 wrap around silently.
type Counter struct {
	owner
	root int64
}

// Naturals returns a Counter whose first root is first.
func Naturals(first int64) *Counter {
	return &Counter{root: first}
}

// Root implements Stream.
func (c *Counter) Root() int64 {
	return c.root
}

// Advance implements Stream.
func (c *Counter) Advance() int64 {
	c.root++
	return c.root
}

// claimer is implemented by every stream in this package. A stream can be
// claimed by exactly one combinator; a second claim is a contract violation.
type claimer interface {
	claim() bool
	owned() bool
}

type owner struct {
	claimed bool
}

func (o *owner) claim() bool {
	if o.claimed {
		return false
	}
	o.claimed = true
	return true
}

func (o *owner) owned() bool {
	return o.claimed
}

// adopt transfers ownership of s to the combinator performing op.
func adopt[T any](op string, s Stream[T]) Stream[T] {
	require(op, validation.ValidateNotNil("stream", "source", s))
	if c, ok := s.(claimer); ok && !c.claim() {
		require(op, lserrors.ErrConsumed)
	}
	return s
}

// unowned checks that s may still be advanced directly by the caller.
func unowned[T any](op string, s Stream[T]) {
	require(op, validation.ValidateNotNil("stream", "source", s))
	if c, ok := s.(claimer); ok && c.owned() {
		require(op, lserrors.ErrConsumed)
	}
}

// require panics when err reports a violated precondition.
func require(op string, err error) {
	if err != nil {
		panic(lserrors.NewOperationError("stream", op, err))
	}
}
