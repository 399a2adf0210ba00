package ink

// compositor isolates the in-progress stroke from the persistent layer.
//
// Stamps for the active stroke accumulate on an ephemeral layer; Commit
// blends that layer onto the persistent layer in one operation and clears
// it. Overlapping semi-transparent stamps within one stroke therefore
// composite against prior strokes exactly once, as a flattened unit,
// instead of re-accumulating opacity on every frame.
type compositor struct {
	alloc      Allocator
	persistent Layer
	accum      Layer

	width  int
	height int
	scale  float64

	// pending counts stamps accumulated since the last commit.
	pending int

	released bool
}

// newCompositor allocates the persistent and accumulation layers.
func newCompositor(alloc Allocator, width, height int, scale float64) (*compositor, error) {
	persistent, err := alloc.NewLayer(width, height, scale)
	if err != nil {
		return nil, err
	}
	accum, err := alloc.NewLayer(width, height, scale)
	if err != nil {
		_ = persistent.Release()
		return nil, err
	}
	return &compositor{
		alloc:      alloc,
		persistent: persistent,
		accum:      accum,
		width:      width,
		height:     height,
		scale:      scale,
	}, nil
}

// Begin prepares the accumulation layer for a new stroke. The engine
// guarantees at most one active session; any stamps still pending from an
// interrupted session were flushed by the preceding Commit.
func (c *compositor) Begin() {
	if c.released {
		return
	}
	c.accum.Clear()
	c.pending = 0
}

// Add renders stamps into the accumulation layer without clearing prior
// content. Stamps are append-only within a session.
func (c *compositor) Add(stamps ...Stamp) {
	if c.released || len(stamps) == 0 {
		return
	}
	c.accum.DrawStamps(stamps, false)
	c.pending += len(stamps)
}

// Commit blends the accumulated stroke onto the persistent layer in a
// single operation and clears the accumulation layer. With no pending
// stamps it is a no-op, so Commit is idempotent and safe to call when no
// stroke is active.
//
// Returns the number of stamps committed.
func (c *compositor) Commit() int {
	if c.released || c.pending == 0 {
		return 0
	}
	c.persistent.DrawLayer(c.accum)
	c.accum.Clear()
	n := c.pending
	c.pending = 0
	return n
}

// Resize reallocates both layers at the new dimensions. Content is lost:
// committed strokes as well as any uncommitted accumulation. The caller
// decides what to do with an interrupted session.
func (c *compositor) Resize(width, height int) error {
	if c.released {
		return nil
	}
	_ = c.persistent.Release()
	_ = c.accum.Release()
	c.pending = 0

	persistent, err := c.alloc.NewLayer(width, height, c.scale)
	if err != nil {
		c.released = true
		return err
	}
	accum, err := c.alloc.NewLayer(width, height, c.scale)
	if err != nil {
		_ = persistent.Release()
		c.released = true
		return err
	}
	c.persistent = persistent
	c.accum = accum
	c.width = width
	c.height = height
	return nil
}

// Release frees both layers. Idempotent; all operations after Release are
// no-ops.
func (c *compositor) Release() error {
	if c.released {
		return nil
	}
	c.released = true
	c.pending = 0

	err := c.persistent.Release()
	if err2 := c.accum.Release(); err == nil {
		err = err2
	}
	return err
}
