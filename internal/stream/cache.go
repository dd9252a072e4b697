package stream

import (
	"fmt"

	"csfix/internal/source"
	"csfix/internal/trace"
)

// Cache maps text fingerprints to the streams built from that text. It has no
// eviction policy: callers clear it between independent jobs.
//
// Cache is not safe for concurrent mutation of the same key; concurrent
// hosts shard one cache per worker.
type Cache struct {
	entries map[source.Digest]*Stream
	tracer  trace.Tracer
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[source.Digest]*Stream), tracer: trace.Nop}
}

// WithTracer makes the cache report hits, misses, sets and evictions to t
// at ScopeCache.
func (c *Cache) WithTracer(t trace.Tracer) *Cache {
	if t == nil {
		t = trace.Nop
	}
	c.tracer = t
	return c
}

// Get returns the stream stored under key.
func (c *Cache) Get(key source.Digest) (*Stream, error) {
	s, ok := c.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("cache key %s: %w", key.Short(), ErrOutOfBounds)
	}
	return s, nil
}

// Lookup is Get without an error for the absent case.
func (c *Cache) Lookup(key source.Digest) (*Stream, bool) {
	s, ok := c.entries[key]
	if ok {
		trace.Point(c.tracer, trace.ScopeCache, "cache:hit", key.Short())
	} else {
		trace.Point(c.tracer, trace.ScopeCache, "cache:miss", key.Short())
	}
	return s, ok
}

// Has reports whether key is present.
func (c *Cache) Has(key source.Digest) bool {
	_, ok := c.entries[key]
	return ok
}

// Set stores s under key, replacing any previous entry.
func (c *Cache) Set(key source.Digest, s *Stream) {
	if prev, ok := c.entries[key]; ok && prev == s {
		return
	}
	c.entries[key] = s
	trace.Point(c.tracer, trace.ScopeCache, "cache:set", key.Short())
}

// ClearKey evicts one entry.
func (c *Cache) ClearKey(key source.Digest) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	trace.Point(c.tracer, trace.ScopeCache, "cache:evict", key.Short())
}

// Clear evicts every entry.
func (c *Cache) Clear() {
	if len(c.entries) == 0 {
		return
	}
	clear(c.entries)
	trace.Point(c.tracer, trace.ScopeCache, "cache:clear", "")
}

// Len returns the number of entries.
func (c *Cache) Len() int { return len(c.entries) }

// release evicts key only while it still belongs to s.
func (c *Cache) release(key source.Digest, s *Stream) {
	if cur, ok := c.entries[key]; ok && cur == s {
		c.ClearKey(key)
	}
}
