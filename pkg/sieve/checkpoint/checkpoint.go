// Package checkpoint persists the prime cache of a trial division sieve so
// that a later run can warm start with sieve.TrialFrom.
package checkpoint

import (
	"context"
	"slices"
	"sync"

	"github.com/pkg/errors"

	lserrors "github.com/vnykmshr/lazystream/pkg/common/errors"
	"github.com/vnykmshr/lazystream/pkg/common/validation"
)

// Store saves and loads an ascending prefix of the primes.
type Store interface {
	// Save replaces the stored prefix with primes.
	Save(ctx context.Context, primes []int64) error

	// Load returns the stored prefix, or an error wrapping
	// errors.ErrNotFound when nothing has been saved.
	Load(ctx context.Context) ([]int64, error)
}

// MemoryStore keeps the prefix in memory. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	primes []int64
	saved  bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, primes []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validation.ValidateAscending("checkpoint", "primes", primes); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primes = slices.Clone(primes)
	s.saved = true
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return nil, errors.Wrap(lserrors.ErrNotFound, "memory checkpoint")
	}
	return slices.Clone(s.primes), nil
}
