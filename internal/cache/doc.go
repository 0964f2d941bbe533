// Package cache provides the memoization primitives of the render
// pipeline.
//
// # Slot[K, V]
//
// A single-entry cache. It remembers the last value produced together with
// the key it was produced for, and is the memo behind a renderer's output
// image.
//
//	var s cache.Slot[key, *Image]
//	img := s.GetOrCreate(k, render)
//
// # LRU[K, V]
//
// A bounded map with least-recently-used eviction, used to keep finished
// thumbnails between batches.
//
// # Thread Safety
//
// Both types are safe for concurrent use and must not be copied after
// first use (they contain mutexes).
package cache
