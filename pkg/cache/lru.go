package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache is a fixed capacity map that drops the least recently used entry
// once full. It is safe for concurrent use. The evict callback runs outside
// the cache lock, so it may call back into the cache.
type LRUCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List // front is most recent
	onEvict  func(K, V)
}

// NewLRUCache panics unless capacity is positive.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// SetEvictCallback registers fn for entries leaving the cache through
// eviction, Remove or Clear, and for values that lost a GetOrCreate race.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(key K, value V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// GetOrCreate returns the cached value for key or stores the result of
// create. create runs without the cache lock, so a slow constructor never
// blocks other keys. When two callers race on one key both may run create;
// the first to store wins, every caller gets its value and the other value
// goes to the evict callback. created reports whether this call stored it.
func (c *LRUCache[K, V]) GetOrCreate(key K, create func() V) (value V, created bool) {
	if v, ok := c.Get(key); ok {
		return v, false
	}

	fresh := create()

	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		value = el.Value.(*entry[K, V]).value
		fn := c.onEvict
		c.mu.Unlock()
		notify(fn, []*entry[K, V]{{key: key, value: fresh}})
		return value, false
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: fresh})
	var evicted []*entry[K, V]
	for c.order.Len() > c.capacity {
		evicted = append(evicted, c.unlink(c.order.Back()))
	}
	fn := c.onEvict
	c.mu.Unlock()

	notify(fn, evicted)
	return fresh, true
}

func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	el, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	e := c.unlink(el)
	fn := c.onEvict
	c.mu.Unlock()

	notify(fn, []*entry[K, V]{e})
	return e.value, true
}

func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache, passing every entry to the evict callback.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	evicted := make([]*entry[K, V], 0, c.order.Len())
	for el := c.order.Back(); el != nil; el = el.Prev() {
		evicted = append(evicted, el.Value.(*entry[K, V]))
	}
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
	fn := c.onEvict
	c.mu.Unlock()

	notify(fn, evicted)
}

// unlink requires c.mu.
func (c *LRUCache[K, V]) unlink(el *list.Element) *entry[K, V] {
	e := c.order.Remove(el).(*entry[K, V])
	delete(c.items, e.key)
	return e
}

func notify[K comparable, V any](fn func(K, V), entries []*entry[K, V]) {
	if fn == nil {
		return
	}
	for _, e := range entries {
		fn(e.key, e.value)
	}
}
