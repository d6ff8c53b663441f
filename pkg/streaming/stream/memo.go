package stream

import (
	"iter"
	"slices"
	"sync"

	"github.com/vnykmshr/lazystream/pkg/common/validation"
)

// ComputeFunc extends a Memo. Given every value computed so far it returns
// the next value to append, or ok=false when this attempt produced nothing
// (the Memo simply calls it again). It must not modify computed, and the
// same computed slice must always lead to the same next value.
type ComputeFunc[T any] func(computed []T) (next T, ok bool)

// memoBuffer is the append-only store shared by all cursors of a Memo.
// Extension is serialized by mu; readers only need a snapshot because
// values below len are never written again.
type memoBuffer[T any] struct {
	mu      sync.RWMutex
	values  []T
	compute ComputeFunc[T]
}

func (b *memoBuffer[T]) snapshot() []T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.values
}

// at returns the i-th value, computing up to it if needed.
func (b *memoBuffer[T]) at(i int) T {
	if values := b.snapshot(); i < len(values) {
		return values[i]
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// Another goroutine may have extended the buffer while we waited.
	for i >= len(b.values) {
		if next, ok := b.compute(slices.Clip(b.values)); ok {
			b.values = append(b.values, next)
		}
	}
	return b.values[i]
}

// Memo is a replayable stream backed by a growable buffer and a ComputeFunc.
// The buffer is safe for concurrent use; the cursor belongs to a single
// goroutine. Use Fork to give another goroutine its own cursor.
type Memo[T any] struct {
	owner
	buf *memoBuffer[T]
	pos int
}

// NewMemo returns an empty Memo extended by compute.
func NewMemo[T any](compute ComputeFunc[T]) *Memo[T] {
	return NewMemoFrom(nil, compute)
}

// NewMemoFrom returns a Memo whose buffer starts with a copy of initial.
// compute must continue the sequence initial begins.
func NewMemoFrom[T any](initial []T, compute ComputeFunc[T]) *Memo[T] {
	require("NewMemo", validation.ValidateNotNil("stream", "compute", compute))
	return &Memo[T]{
		buf: &memoBuffer[T]{
			values:  slices.Clone(initial),
			compute: compute,
		},
	}
}

// Root implements Stream. It runs the ComputeFunc until the buffer covers
// the cursor.
func (m *Memo[T]) Root() T {
	return m.buf.at(m.pos)
}

// Advance implements Stream.
func (m *Memo[T]) Advance() T {
	m.Root()
	m.pos++
	return m.Root()
}

// Reset rewinds the cursor to the first value. The buffer is kept, so the
// values are replayed rather than recomputed.
func (m *Memo[T]) Reset() {
	m.pos = 0
}

// Position returns the cursor index.
func (m *Memo[T]) Position() int {
	return m.pos
}

// Len returns how many values have been computed so far.
func (m *Memo[T]) Len() int {
	return len(m.buf.snapshot())
}

// At returns the i-th value of the sequence without moving the cursor,
// computing it if necessary.
func (m *Memo[T]) At(i int) T {
	require("At", validation.ValidateNonNegative("stream", "index", i))
	return m.buf.at(i)
}

// Values returns a copy of the values computed so far.
func (m *Memo[T]) Values() []T {
	return slices.Clone(m.buf.snapshot())
}

// Computed iterates over the values computed so far. It never extends the
// buffer and never moves the cursor.
func (m *Memo[T]) Computed() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range m.buf.snapshot() {
			if !yield(v) {
				return
			}
		}
	}
}

// All iterates over the whole sequence, extending the buffer on demand. The
// sequence is infinite unless the consumer stops. The cursor is untouched.
func (m *Memo[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; ; {
			values := m.buf.snapshot()
			for ; i < len(values); i++ {
				if !yield(values[i]) {
					return
				}
			}
			m.buf.at(i)
		}
	}
}

// Fork returns a new Memo with its own cursor at position zero that shares
// this Memo's buffer and ComputeFunc.
func (m *Memo[T]) Fork() *Memo[T] {
	return &Memo[T]{buf: m.buf}
}
