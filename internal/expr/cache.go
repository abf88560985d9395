package expr

import "sync"

// Cache memoizes Analyze per distinct text value. The presenter re-runs
// classification on every keystroke, so each field holds one of these to
// keep backspacing through a long expression from re-scanning it.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Analysis
	maxSize int
}

// NewCache creates a cache bounded to maxSize distinct texts. When the
// bound is hit the cache is reset rather than evicted entry by entry; the
// working set of a single input field is tiny.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &Cache{
		entries: make(map[string]Analysis),
		maxSize: maxSize,
	}
}

// Analyze returns the memoized classification for text, computing it on a
// miss.
func (c *Cache) Analyze(text string) Analysis {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a, ok := c.entries[text]; ok {
		return a
	}
	if len(c.entries) >= c.maxSize {
		c.entries = make(map[string]Analysis)
	}
	a := Analyze(text)
	c.entries[text] = a
	return a
}

// Len returns the number of memoized texts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
