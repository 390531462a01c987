package catalog

import (
	"container/list"
	"sync"

	"github.com/datainsight-lab/datainsight/internal/core/storage"
)

// LRUCache is a thread-safe LRU cache of decoded datasets keyed by ID.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	cache    map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	id    string
	entry *storage.Entry
}

// NewLRUCache creates a new LRU cache with the given capacity.
func NewLRUCache(capacity int) *LRUCache {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns a copy of the cached entry, or nil.
// The dataset itself is shared: datasets are never mutated after load.
func (c *LRUCache) Get(id string) *storage.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.cache[id]
	if !exists {
		return nil
	}

	c.order.MoveToFront(elem)
	cp := *elem.Value.(*cacheEntry).entry
	return &cp
}

// Put adds an entry, evicting the least recently used one if full.
func (c *LRUCache) Put(entry *storage.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := *entry
	if elem, exists := c.cache[entry.ID]; exists {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).entry = &cp
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.cache, oldest.Value.(*cacheEntry).id)
			c.order.Remove(oldest)
		}
	}

	c.cache[entry.ID] = c.order.PushFront(&cacheEntry{id: entry.ID, entry: &cp})
}

// Invalidate removes one entry.
func (c *LRUCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.cache[id]; exists {
		delete(c.cache, id)
		c.order.Remove(elem)
	}
}

// Len returns the number of cached entries.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
