package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestTimeout is the default timeout for tests
const TestTimeout = 5 * time.Second

// FirstPrimes lists the primes below 100, the reference output every sieve must reproduce.
var FirstPrimes = []int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

// WithTimeout creates a context with the default test timeout
func WithTimeout(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), TestTimeout)
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t testing.TB, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// AssertSliceEqual fails the test with a diff if got and want differ.
func AssertSliceEqual[T any](t testing.TB, got, want []T) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

// AssertPanics fails the test unless fn panics, and returns the recovered value.
func AssertPanics(t testing.TB, fn func()) (recovered interface{}) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatal("expected panic, got none")
		}
	}()
	fn()
	return nil
}
