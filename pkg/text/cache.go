package text

import (
	"container/list"
	"sync"

	"github.com/go-drift/mvu/pkg/graphics"
)

// DefaultCacheSize bounds the number of memoized measurements.
const DefaultCacheSize = 10000

// Cache memoizes an underlying measurer with least-recently-used eviction.
type Cache struct {
	mu      sync.Mutex
	inner   Measurer
	maxSize int
	entries map[cacheKey]*list.Element
	lru     *list.List // front is most recently used
}

type cacheKey struct {
	content string
	size    float64
}

type cacheEntry struct {
	key  cacheKey
	size graphics.Size
}

// NewCache wraps inner. A non-positive maxSize uses DefaultCacheSize.
func NewCache(inner Measurer, maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Cache{
		inner:   inner,
		maxSize: maxSize,
		entries: make(map[cacheKey]*list.Element),
		lru:     list.New(),
	}
}

// Measure implements Measurer.
func (c *Cache) Measure(content string, size float64) graphics.Size {
	key := cacheKey{content: content, size: size}

	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		s := elem.Value.(*cacheEntry).size
		c.mu.Unlock()
		return s
	}
	c.mu.Unlock()

	// Measure outside the lock; a racing duplicate just overwrites.
	s := c.inner.Measure(content, size)

	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).size = s
		return s
	}
	for c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, size: s})
	return s
}

// Len returns the number of cached measurements.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Clear drops every cached measurement.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*list.Element)
	c.lru.Init()
}
