/*
Package streaming groups the lazy stream packages.

  - stream: cursor streams, combinators (Map, Filter, Every, Split, Diff)
    and the replayable Memo

Basic usage:

	odds := stream.Filter(stream.Naturals(1), func(n int64) bool { return n%2 == 1 })
	fmt.Println(stream.Take[int64](odds, 3)) // [1 3 5]
*/
package streaming
