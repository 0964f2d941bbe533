package cache

import "sync"

// Slot is a thread-safe cache holding at most one entry.
// The zero value is empty and ready to use.
type Slot[K comparable, V any] struct {
	mu     sync.Mutex
	key    K
	value  V
	valid  bool
	hits   uint64
	misses uint64
}

// Get returns the cached value if the slot holds one for key.
func (s *Slot[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid && s.key == key {
		s.hits++
		return s.value, true
	}
	s.misses++
	var zero V
	return zero, false
}

// Peek returns the cached entry, whatever its key, without counting a hit.
func (s *Slot[K, V]) Peek() (K, V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, s.value, s.valid
}

// Set replaces the entry.
func (s *Slot[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key, s.value, s.valid = key, value, true
}

// Reset empties the slot so the next lookup misses.
func (s *Slot[K, V]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zeroK K
	var zeroV V
	s.key, s.value, s.valid = zeroK, zeroV, false
}

// GetOrCreate returns the value cached for key or creates and stores it.
// create runs under the slot lock, so concurrent callers with the same key
// produce a single value. The bool reports whether the value was cached.
func (s *Slot[K, V]) GetOrCreate(key K, create func() V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid && s.key == key {
		s.hits++
		return s.value, true
	}
	s.misses++
	value := create()
	s.key, s.value, s.valid = key, value, true
	return value, false
}

// Stats returns slot statistics.
func (s *Slot[K, V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Capacity: 1, Hits: s.hits, Misses: s.misses}
	if s.valid {
		st.Len = 1
	}
	st.HitRate = hitRate(s.hits, s.misses)
	return st
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits is the number of lookups that found a value.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 when there were no lookups.
	HitRate float64
	// Evictions is the number of entries dropped to stay within Capacity.
	Evictions uint64
}

func hitRate(hits, misses uint64) float64 {
	if total := hits + misses; total > 0 {
		return float64(hits) / float64(total)
	}
	return 0
}
