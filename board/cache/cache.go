// Package cache memoizes formatted cell rectangles. Full repaints after a
// dialog closes re-format every cell even though almost none of them
// changed; keying the finished byte stream by cell hash and rectangle makes
// those repaints a map lookup.
package cache

// Key identifies one formatted rectangle: the cell value (by hash) and
// where and how large it was painted.
type Key struct {
	Hash   uint64
	Width  int
	Height int
	X      int
	Y      int
}

type Cache struct {
	entries map[Key]string
	max     int
}

// New creates a cache bounded to max entries. When the bound is hit the
// cache is dropped wholesale; per-entry eviction is not worth the
// bookkeeping for the handful of cells a board holds.
func New(max int) *Cache {
	return &Cache{
		entries: make(map[Key]string),
		max:     max,
	}
}

func (c *Cache) Get(k Key) (string, bool) {
	s, ok := c.entries[k]
	return s, ok
}

func (c *Cache) Put(k Key, s string) {
	if len(c.entries) >= c.max {
		clear(c.entries)
	}
	c.entries[k] = s
}

func (c *Cache) Len() int {
	return len(c.entries)
}
