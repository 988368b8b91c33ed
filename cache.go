package fluentval

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

// RuleCache stores the rule list built for a validator definition type so the
// definition logic runs at most once per type for the lifetime of the process.
// Concurrent first-use races for the same key are collapsed into a single
// build; every caller observes the same completed result, never a torn one.
//
// Values are stored as []Rule[T] behind an any; Define copies the snapshot
// into each validator instance so callers never mutate the cached list.
type RuleCache struct {
	mu      sync.RWMutex
	entries map[reflect.Type]any
	group   singleflight.Group
}

// NewRuleCache creates an empty rule cache. Most applications use the shared
// process-wide cache implicitly through Define; an explicit cache is useful
// for tests and for composition roots that want isolated lifetimes.
func NewRuleCache() *RuleCache {
	return &RuleCache{entries: make(map[reflect.Type]any)}
}

// defaultRuleCache is the process-wide cache used when no explicit cache is
// injected at construction time.
var defaultRuleCache = NewRuleCache()

// DefaultRuleCache returns the shared process-wide rule cache.
func DefaultRuleCache() *RuleCache {
	return defaultRuleCache
}

// GetOrBuild returns the cached value for key, building it with build on
// first use. Exactly one execution of build per key is observable; concurrent
// callers for the same key wait for the single build and share its result.
func (c *RuleCache) GetOrBuild(key reflect.Type, build func() any) any {
	c.mu.RLock()
	if v, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do(flightKey(key), func() (any, error) {
		// Recheck under the write path: a previous flight may have stored
		// the entry between our read miss and this call.
		c.mu.RLock()
		if v, ok := c.entries[key]; ok {
			c.mu.RUnlock()
			return v, nil
		}
		c.mu.RUnlock()

		built := build()

		c.mu.Lock()
		c.entries[key] = built
		c.mu.Unlock()
		return built, nil
	})
	return v
}

// flightKey derives a singleflight key from the type's identity.
// Type.String alone is not unique: same-named types from packages with the
// same base name collide on it, which would merge unrelated builds.
func flightKey(key reflect.Type) string {
	return fmt.Sprintf("%s@%p", key, key)
}

// Clear drops every cached entry. Definitions run again on next use.
func (c *RuleCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[reflect.Type]any)
	c.mu.Unlock()
}

// Len returns the number of cached definition types.
func (c *RuleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
