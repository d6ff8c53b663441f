package sieve

import (
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// mergeSet is the ordered, deduplicating collection the parallel workers
// insert into. Workers add concurrently; the coordinator pops.
type mergeSet struct {
	mu  sync.Mutex
	set *treeset.Set
}

func newMergeSet(seeds ...int64) *mergeSet {
	s := &mergeSet{set: treeset.NewWith(utils.Int64Comparator)}
	s.add(seeds...)
	return s
}

func (s *mergeSet) add(values ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range values {
		s.set.Add(v)
	}
}

// popAtMost removes and returns the smallest value if it does not exceed
// limit.
func (s *mergeSet) popAtMost(limit int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.set.Iterator()
	if !it.First() {
		return 0, false
	}
	v := it.Value().(int64)
	if v > limit {
		return 0, false
	}
	s.set.Remove(v)
	return v, true
}

func (s *mergeSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Size()
}
