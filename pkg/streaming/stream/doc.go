/*
Package stream provides cursor-based, lazily advanced, infinite streams and
the combinators that compose them.

A Stream exposes two operations:

	Root() T    // the value under the cursor; O(1), idempotent
	Advance() T // move the cursor forward and return the new root

Every combinator returns another Stream, so pipelines compose to any depth.

Basic Usage:

	evens := stream.Filter(stream.Naturals(1), func(n int64) bool { return n%2 == 0 })
	fmt.Println(stream.Take[int64](evens, 3)) // [2 4 6]

Ownership:

Combinators take ownership of the streams they wrap. Map, Filter, Every,
Split, Aggregate and Diff each claim their inputs; handing a stream from this
package to a second combinator panics with an error wrapping
errors.ErrConsumed. Skip and Take mutate the stream in place and return it
(or its values) without claiming it.

Combinators:

  - Map: apply a function to every value
  - Filter: keep values matching a predicate; the first root already matches
  - Every: report one value out of every k, keeping a non-owning Original link
  - Split: two independent views over one source with a shared FIFO buffer
  - Aggregate: a stream computed from two inputs by a CombineFunc
  - Diff: ordered set difference of two non-decreasing streams

Memo:

Memo is a replayable stream backed by an append-only buffer and a
ComputeFunc. Reset replays the buffer from the start, Fork hands out an
independent cursor, and All/Computed iterate over the values without touching
any cursor. The buffer may be read and extended from several goroutines; a
cursor may not.

Limitations:

Streams over int64 use fixed-width arithmetic. Counter and any mapping that
multiplies values wrap around silently past math.MaxInt64.

Streams hold no goroutines and support no cancellation: an Advance runs until
the next value is ready.
*/
package stream
