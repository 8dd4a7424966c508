package dnd

// Counter tracks net drag-enter/leave events across nested surfaces. A drag
// that crosses from a parent into a child fires leave and enter on overlapping
// boundaries, so the "dragging" state is derived from the depth alone and
// never from the raw events.
type Counter struct {
	depth int
}

// Enter records a boundary crossing into a surface and reports whether a drag
// is active afterwards.
func (c *Counter) Enter() bool {
	c.depth++
	return c.Active()
}

// Leave records a boundary crossing out of a surface. The depth never drops
// below zero.
func (c *Counter) Leave() bool {
	if c.depth > 0 {
		c.depth--
	}
	return c.Active()
}

// Reset clears the depth, as happens when a drop completes.
func (c *Counter) Reset() {
	c.depth = 0
}

// Depth returns the current nesting depth.
func (c *Counter) Depth() int {
	return c.depth
}

// Active reports whether something is being dragged over the surface.
func (c *Counter) Active() bool {
	return c.depth > 0
}
