package memoize

import (
	"sync"
)

// call tracks one in-flight computation. Waiters block on wg and read the
// outcome fields only after Wait returns.
type call[V any] struct {
	wg  sync.WaitGroup
	val V
	err error
	rec any // captured panic value; re-raised in every caller
}

// Cache memoizes computations by key. The first Do for a key runs the
// computation and stores the result; every later Do for the same key returns
// the stored value without running anything. Concurrent first calls coalesce:
// exactly one computation runs and all callers receive its outcome.
//
// A failed computation stores nothing, so the next Do for that key runs it
// again. Entries are never evicted and never expire; they live as long as
// the Cache.
//
// Safe for concurrent use. A computation must not call Do on its own cache
// with the same key; such a call would wait on itself.
type Cache[K comparable, V any] struct {
	log   Logger
	hooks Hooks

	mu      sync.Mutex
	entries map[K]V
	flights map[K]*call[V]
}

func newCache[K comparable, V any](opts Options) *Cache[K, V] {
	c := &Cache[K, V]{
		entries: make(map[K]V),
		flights: make(map[K]*call[V]),
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return c
}

// Do returns the stored value for key, or runs compute to produce it.
// On success the result is stored and returned. On error nothing is stored
// and the error is returned as-is. If compute panics, the panic is re-raised
// in every coalesced caller and nothing is stored.
func (c *Cache[K, V]) Do(key K, compute func() (V, error)) (V, error) {
	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		c.hooks.Hit()
		return v, nil
	}
	if fl, ok := c.flights[key]; ok {
		// another goroutine is computing this key; share its outcome
		c.mu.Unlock()
		fl.wg.Wait()
		if fl.rec != nil {
			panic(fl.rec)
		}
		if fl.err != nil {
			return fl.val, fl.err
		}
		c.hooks.Hit()
		return fl.val, nil
	}

	fl := new(call[V])
	fl.wg.Add(1)
	c.flights[key] = fl
	c.mu.Unlock()

	c.hooks.Miss()
	c.run(key, fl, compute)

	if fl.rec != nil {
		panic(fl.rec)
	}
	if fl.err != nil {
		c.hooks.Failure(fl.err)
		c.log.Debug("compute failed; nothing stored", Fields{"key": key, "err": fl.err})
		return fl.val, fl.err
	}
	return fl.val, nil
}

// run executes compute for fl, publishes the outcome, and releases waiters.
// The flight entry is removed in all cases; only a success stores a value.
func (c *Cache[K, V]) run(key K, fl *call[V], compute func() (V, error)) {
	defer func() {
		c.mu.Lock()
		delete(c.flights, key)
		if fl.rec == nil && fl.err == nil {
			c.entries[key] = fl.val
		}
		c.mu.Unlock()
		fl.wg.Done()
	}()

	defer func() {
		if r := recover(); r != nil {
			fl.rec = r
		}
	}()
	fl.val, fl.err = compute()
}

// Get peeks at the stored value for key without computing anything.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	v, ok := c.entries[key]
	c.mu.Unlock()
	return v, ok
}

// Len reports the number of stored entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	return n
}
