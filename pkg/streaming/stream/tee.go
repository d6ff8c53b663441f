package stream

import "github.com/emirpasic/gods/queues/linkedlistqueue"

// teeState is shared by the two halves of a Split. Values read from the
// source by the leading child wait in buffer until the other child pops them.
type teeState[T any] struct {
	source Stream[T]
	buffer *linkedlistqueue.Queue
	leader int
}

// Tee is one of the two views returned by Split.
type Tee[T any] struct {
	owner
	id     int
	root   T
	shared *teeState[T]
}

// Split takes ownership of s and returns two streams that each observe
// exactly the sequence s would have produced. The children advance
// independently; memory use is bounded by how far one runs ahead of the
// other. s must not be used after the call.
func Split[T any](s Stream[T]) (*Tee[T], *Tee[T]) {
	source := adopt("Split", s)
	shared := &teeState[T]{
		source: source,
		buffer: linkedlistqueue.New(),
	}
	root := source.Root()
	return &Tee[T]{id: 0, root: root, shared: shared},
		&Tee[T]{id: 1, root: root, shared: shared}
}

// Root implements Stream.
func (t *Tee[T]) Root() T {
	return t.root
}

// Advance implements Stream. The leading child, or either child when the
// buffer is empty, reads from the source and queues the value for its
// sibling; the lagging child drains the queue first.
func (t *Tee[T]) Advance() T {
	s := t.shared
	if s.buffer.Empty() || s.leader == t.id {
		if s.buffer.Empty() {
			s.leader = t.id
		}
		t.root = s.source.Advance()
		s.buffer.Enqueue(t.root)
		return t.root
	}
	v, _ := s.buffer.Dequeue()
	t.root = v.(T)
	return t.root
}

// Buffered returns how many values the leading child is ahead of its sibling.
func (t *Tee[T]) Buffered() int {
	return t.shared.buffer.Size()
}
