package ui

import (
	"hash/fnv"
	"sync"
)

// RenderCache memoizes rendered markdown keyed by content and width. It is
// bounded; when full it is cleared rather than tracking recency, which is
// enough for a catalog of a few dozen records.
type RenderCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	maxSize int
	hits    int
	misses  int
}

// NewRenderCache creates a new render cache with the specified max size.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize <= 0 {
		maxSize = 64
	}
	return &RenderCache{entries: make(map[uint64]string), maxSize: maxSize}
}

// ComputeKey hashes the inputs with FNV-1a.
func ComputeKey(content string, width int) uint64 {
	h := fnv.New64a()
	h.Write([]byte(content))
	var b [8]byte
	u := uint64(width)
	for i := range b {
		b[i] = byte(u >> (8 * i))
	}
	h.Write(b[:])
	return h.Sum64()
}

// GetOrCompute retrieves from cache or computes if missing.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() string) string {
	rc.mu.Lock()
	if v, ok := rc.entries[key]; ok {
		rc.hits++
		rc.mu.Unlock()
		return v
	}
	rc.misses++
	rc.mu.Unlock()

	v := compute()

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if len(rc.entries) >= rc.maxSize {
		rc.entries = make(map[uint64]string)
	}
	rc.entries[key] = v
	return v
}

// Stats returns hit and miss counts.
func (rc *RenderCache) Stats() (hits, misses int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hits, rc.misses
}

// Len returns the number of cached entries.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}
