package cache

import "sync"

// lruNode is a node in a doubly-linked recency list.
type lruNode[K comparable, V any] struct {
	key   K
	value V
	prev  *lruNode[K, V]
	next  *lruNode[K, V]
}

// LRU is a thread-safe cache that holds at most capacity entries and
// evicts the least recently used one when full.
//
// LRU must not be copied after creation (has mutex).
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]*lruNode[K, V]

	// head is the most recently used node, tail the least.
	head *lruNode[K, V]
	tail *lruNode[K, V]

	hits, misses, evictions uint64

	// onEvict, if set, is called with entries dropped for capacity.
	onEvict func(K, V)
}

// NewLRU creates a cache holding up to capacity entries.
// A capacity below 1 is treated as 1.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		entries:  make(map[K]*lruNode[K, V], capacity),
	}
}

// OnEvict registers fn to be called, under the cache lock, for every
// entry evicted to make room.
func (c *LRU[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get retrieves a value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(node)
	return node.value, true
}

// Set stores a value, evicting the least recently used entry if needed.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		node.value = value
		c.moveToFront(node)
		return
	}

	node := &lruNode[K, V]{key: key, value: value}
	c.entries[key] = node
	c.pushFront(node)

	for len(c.entries) > c.capacity {
		oldest := c.tail
		c.unlink(oldest)
		delete(c.entries, oldest.key)
		c.evictions++
		if c.onEvict != nil {
			c.onEvict(oldest.key, oldest.value)
		}
	}
}

// Delete removes an entry. Returns true if it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.unlink(node)
	delete(c.entries, key)
	return true
}

// Clear removes all entries without calling the eviction callback.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*lruNode[K, V], c.capacity)
	c.head, c.tail = nil, nil
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.entries))
	for n := c.head; n != nil; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   hitRate(c.hits, c.misses),
		Evictions: c.evictions,
	}
}

// Caller must hold c.mu for the list helpers below.

func (c *LRU[K, V]) pushFront(node *lruNode[K, V]) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *LRU[K, V]) moveToFront(node *lruNode[K, V]) {
	if node == c.head {
		return
	}
	c.unlink(node)
	c.pushFront(node)
}

func (c *LRU[K, V]) unlink(node *lruNode[K, V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
	node.prev, node.next = nil, nil
}
