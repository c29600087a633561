package transit

import (
	"sync"
	"time"
)

// CacheKey identifies a cached reachability computation: an origin stop and
// the hour-granularity bucket its query instant falls into. Scrubbing
// within the same hour reuses one computation rather than recomputing per
// minute or per tile request.
type CacheKey struct {
	Origin string
	Bucket time.Time
}

// BucketHour truncates an instant to the start of its hour, the cache's key
// granularity.
func BucketHour(instant time.Time) time.Time {
	return instant.Truncate(time.Hour)
}

type cacheEntry struct {
	key   CacheKey
	table ReachabilityTable
}

// Cache is the single-slot, double-checked-locking reachability cache: one
// shared entry guarded by a read/write lock. A read-side hit never blocks
// concurrent readers; a miss upgrades to the write side, re-checks the key
// (another writer may have just filled it), and only then recomputes.
type Cache struct {
	mu      sync.RWMutex
	entry   *cacheEntry
	compute func(origin string, instant time.Time) (ReachabilityTable, error)
}

// NewCache builds a Cache that computes misses with the given function.
func NewCache(compute func(origin string, instant time.Time) (ReachabilityTable, error)) *Cache {
	return &Cache{compute: compute}
}

// Get returns the reachability table for key, computing and storing it on a
// miss. A panic inside compute while the write lock is held is recovered
// here and reported as a PoisonError rather than crashing the caller's
// goroutine.
func (c *Cache) Get(key CacheKey) (table ReachabilityTable, err error) {
	c.mu.RLock()
	if c.entry != nil && c.entry.key == key {
		table = c.entry.table
		c.mu.RUnlock()
		return table, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check: another goroutine may have already filled this key while
	// we were waiting for the write lock.
	if c.entry != nil && c.entry.key == key {
		return c.entry.table, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = &PoisonError{Cause: r}
		}
	}()

	computed, computeErr := c.compute(key.Origin, key.Bucket)
	if computeErr != nil {
		return nil, computeErr
	}

	c.entry = &cacheEntry{key: key, table: computed}
	return computed, nil
}
