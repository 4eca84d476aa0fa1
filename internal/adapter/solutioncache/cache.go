// Package solutioncache bounds repeat SWASHES runs with an in-memory LRU.
package solutioncache

import (
	"context"
	"sync"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
	"github.com/couchcryptid/swashes-solutions/internal/observability"
)

// CachedSolver wraps a Solver with an in-memory LRU cache keyed by the case.
// SWASHES is deterministic, so a cached table never goes stale; the bound
// only limits memory for fine discretizations.
type CachedSolver struct {
	inner   domain.Solver
	cache   *lruCache
	metrics *observability.Metrics
}

// New creates a cache decorator around a solver.
func New(inner domain.Solver, maxEntries int, metrics *observability.Metrics) *CachedSolver {
	return &CachedSolver{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSolver) Solve(ctx context.Context, sc domain.Case) (*domain.Table, error) {
	key := sc.Key()
	if table, ok := c.cache.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return table, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	table, err := c.inner.Solve(ctx, sc)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, table)
	return table, nil
}

// lruCache is a simple thread-safe LRU cache for solution tables.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value *domain.Table
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (*domain.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value *domain.Table) {
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
