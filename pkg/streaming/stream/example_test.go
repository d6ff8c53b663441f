package stream

import "fmt"

// Example demonstrates composing combinators over the natural numbers.
func Example() {
	multiplesOfThree := Filter(Stream[int64](Naturals(1)), func(n int64) bool { return n%3 == 0 })
	doubled := Map[int64, int64](multiplesOfThree, func(n int64) int64 { return 2 * n })

	fmt.Println(Take[int64](doubled, 5))
	// Output: [6 12 18 24 30]
}

// ExampleSplit shows two views over one source advancing independently.
func ExampleSplit() {
	a, b := Split[int64](Naturals(1))

	fmt.Println(Take[int64](a, 3))
	fmt.Println(Take[int64](b, 5))
	fmt.Println(Take[int64](a, 3))
	// Output:
	// [1 2 3]
	// [1 2 3 4 5]
	// [3 4 5]
}

// ExampleDiff removes the even numbers from the naturals.
func ExampleDiff() {
	evens := Map[int64, int64](Naturals(1), func(n int64) int64 { return 2 * n })

	fmt.Println(Take[int64](Diff[int64](Naturals(1), evens), 5))
	// Output: [1 3 5 7 9]
}

// ExampleEvery samples one value out of four.
func ExampleEvery() {
	fmt.Println(Take[int64](Every[int64](Skip[int64](Naturals(1), 4), 4), 5))
	// Output: [5 9 13 17 21]
}

// ExampleMemo builds a replayable Fibonacci stream.
func ExampleMemo() {
	fib := NewMemo(func(computed []int64) (int64, bool) {
		n := len(computed)
		if n < 2 {
			return int64(n), true
		}
		return computed[n-1] + computed[n-2], true
	})

	fmt.Println(Take[int64](fib, 10))
	fib.Reset()
	fmt.Println(fib.Root(), fib.Len())
	// Output:
	// [0 1 1 2 3 5 8 13 21 34]
	// 0 10
}
