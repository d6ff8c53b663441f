package sieve_test

import (
	"fmt"

	"github.com/vnykmshr/lazystream/pkg/sieve"
	"github.com/vnykmshr/lazystream/pkg/streaming/stream"
)

func Example() {
	fmt.Println(stream.Take[int64](sieve.Trial(), 10))
	fmt.Println(stream.Take[int64](sieve.NewMultiples(), 10))

	p, err := sieve.NewParallel(sieve.DefaultParallelConfig())
	if err != nil {
		panic(err)
	}
	defer p.Close()
	fmt.Println(stream.Take[int64](p, 10))
	// Output:
	// [2 3 5 7 11 13 17 19 23 29]
	// [2 3 5 7 11 13 17 19 23 29]
	// [2 3 5 7 11 13 17 19 23 29]
}

func ExampleContinue() {
	cache := sieve.Trial()
	stream.Take[int64](cache, 25) // primes below 100

	fmt.Println(stream.Take(sieve.Continue(cache, 100), 5))
	// Output: [101 103 107 109 113]
}
