package sieve

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies that no parallel sieve leaks its worker pool.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
