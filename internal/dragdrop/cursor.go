package dragdrop

import "sync"

// CursorCell holds the last known viewport coordinates. It is an explicit
// shared-state cell passed by handle to its consumers; writers are the
// pointer/drag event handlers, readers are the arbiter and the router.
type CursorCell struct {
	mu   sync.Mutex
	x, y int
	set  bool
}

func NewCursorCell() *CursorCell {
	return &CursorCell{}
}

func (c *CursorCell) Set(x, y int) {
	c.mu.Lock()
	c.x, c.y = x, y
	c.set = true
	c.mu.Unlock()
}

// Position returns the last recorded coordinates; ok is false until the
// first write of the process.
func (c *CursorCell) Position() (x, y int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.x, c.y, c.set
}
