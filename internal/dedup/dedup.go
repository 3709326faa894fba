// Package dedup provides a bounded, concurrency-safe record of recently
// processed message ids. It is the admission gate in front of all
// webhook event processing.
package dedup

import "sync"

// Set remembers the last capacity distinct ids. When full, admitting a
// new id evicts the oldest one, so an id older than the last capacity
// admissions may be admitted again. State lives only in memory.
type Set struct {
	mu       sync.Mutex
	capacity int
	seen     map[string]struct{}
	order    []string
	next     int
	size     int
}

// New creates a Set holding up to capacity ids
func New(capacity int) *Set {
	if capacity <= 0 {
		capacity = 1
	}
	return &Set{
		capacity: capacity,
		seen:     make(map[string]struct{}, capacity),
		order:    make([]string, capacity),
	}
}

// Admit records id and returns true iff it was not already present.
// A rejected id leaves the set unchanged.
func (s *Set) Admit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[id]; ok {
		return false
	}

	if s.size == s.capacity {
		delete(s.seen, s.order[s.next])
	} else {
		s.size++
	}
	s.order[s.next] = id
	s.next = (s.next + 1) % s.capacity
	s.seen[id] = struct{}{}
	return true
}

// Len returns the number of ids currently recorded
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}
