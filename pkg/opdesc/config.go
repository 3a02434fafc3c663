package opdesc

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// injectPattern matches {{key}} references inside configuration values
var injectPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.\-]*)\s*\}\}`)

// Config is the mutable key/value store holding a caller's supplied
// arguments. Validation mutates it in place; a single Config must not be
// validated concurrently, but reads and writes themselves are safe.
type Config struct {
	mu     sync.RWMutex
	order  []string
	values map[string]any
}

// NewConfig creates a configuration store seeded from an initial map. Seed
// keys are recorded in sorted order so iteration is deterministic.
func NewConfig(initial map[string]any) *Config {
	c := &Config{values: make(map[string]any, len(initial))}

	keys := make([]string, 0, len(initial))
	for key := range initial {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		c.order = append(c.order, key)
		c.values[key] = initial[key]
	}
	return c
}

// Get returns the value for a key, or nil when absent
func (c *Config) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.values[key]
}

// Has reports whether a key is set
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.values[key]
	return exists
}

// Set stores a value under a key
func (c *Config) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.values[key]; !exists {
		c.order = append(c.order, key)
	}
	c.values[key] = value
}

// Delete removes a key
func (c *Config) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.values[key]; !exists {
		return
	}
	delete(c.values, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Keys returns all set keys in insertion order
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// Len returns the number of set keys
func (c *Config) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.values)
}

// All returns a copy of the stored values
func (c *Config) All() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]any, len(c.values))
	for key, value := range c.values {
		result[key] = value
	}
	return result
}

// Inject substitutes {{key}} references in text with the string form of the
// stored value. The reserved token {{uuid}} produces a fresh UUID when no
// "uuid" key is set, for idempotency keys and request IDs. Unresolved
// references are left intact.
func (c *Config) Inject(text string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return injectPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := injectPattern.FindStringSubmatch(match)[1]
		if value, exists := c.values[key]; exists {
			return fmt.Sprint(value)
		}
		if key == "uuid" {
			return uuid.NewString()
		}
		return match
	})
}
