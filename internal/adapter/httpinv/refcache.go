package httpinv

import (
	"context"
	"sync"

	"github.com/jmpettit/location-import-service/internal/domain"
	"github.com/jmpettit/location-import-service/internal/importer"
)

// CachedInventory wraps an Inventory and caches its reference-data lookups.
// LocationType and Status records are provisioned once and immutable, so the
// per-row GetLocationType calls the importer makes never need to hit the API
// twice. Location get-or-create and save always pass through.
type CachedInventory struct {
	inner importer.Inventory

	types *lruCache

	mu     sync.Mutex
	active *domain.Status
}

// NewCachedInventory creates a cache decorator around an inventory store.
func NewCachedInventory(inner importer.Inventory, maxEntries int) *CachedInventory {
	return &CachedInventory{
		inner: inner,
		types: newLRUCache(maxEntries),
	}
}

func (c *CachedInventory) GetLocationType(ctx context.Context, name string) (domain.LocationType, error) {
	if t, ok := c.types.get(name); ok {
		return t, nil
	}
	t, err := c.inner.GetLocationType(ctx, name)
	if err != nil {
		return t, err
	}
	c.types.put(name, t)
	return t, nil
}

func (c *CachedInventory) GetActiveStatus(ctx context.Context) (domain.Status, error) {
	c.mu.Lock()
	cached := c.active
	c.mu.Unlock()
	if cached != nil {
		return *cached, nil
	}

	s, err := c.inner.GetActiveStatus(ctx)
	if err != nil {
		return s, err
	}
	c.mu.Lock()
	c.active = &s
	c.mu.Unlock()
	return s, nil
}

func (c *CachedInventory) GetOrCreateLocation(ctx context.Context, key importer.LocationKey, defaults importer.LocationDefaults) (*domain.Location, bool, error) {
	return c.inner.GetOrCreateLocation(ctx, key, defaults)
}

func (c *CachedInventory) SaveLocation(ctx context.Context, loc *domain.Location) error {
	return c.inner.SaveLocation(ctx, loc)
}

// lruCache is a small thread-safe LRU cache for location type records.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.LocationType
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.LocationType, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.LocationType{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.LocationType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
