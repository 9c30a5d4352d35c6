// Package replay implements Cursor: a sequential navigator over an
// ordered list of checkpoints loaded from a checkpoint.Manager.
package replay

import (
	"github.com/tx2pack/tx2pack/checkpoint"
	"github.com/tx2pack/tx2pack/errs"
)

// Cursor holds an ordered list of checkpoints, a position in [0, len) or
// -1 when empty, and whether Next wraps around at the end.
type Cursor struct {
	checkpoints []checkpoint.Checkpoint
	index       int
	loopEnabled bool
}

// New creates an empty, non-looping Cursor.
func New() *Cursor {
	return &Cursor{index: -1}
}

// SetLoopEnabled toggles whether Next wraps from the last entry to the
// first instead of becoming a no-op.
func (c *Cursor) SetLoopEnabled(enabled bool) {
	c.loopEnabled = enabled
}

// LoadFromManager populates the cursor's list in ListCheckpoints order and
// resets the position to 0 (or -1 if the manager has no checkpoints).
func (c *Cursor) LoadFromManager(m *checkpoint.Manager) {
	c.checkpoints = m.ListCheckpoints()
	if len(c.checkpoints) == 0 {
		c.index = -1

		return
	}
	c.index = 0
}

// Current returns the checkpoint at the cursor's position, or false if the
// cursor is empty.
func (c *Cursor) Current() (checkpoint.Checkpoint, bool) {
	if c.index < 0 {
		return checkpoint.Checkpoint{}, false
	}

	return c.checkpoints[c.index], true
}

// Next advances the position by one. If already at the last entry, it
// wraps to 0 when looping is enabled, otherwise it is a no-op. Returns
// whether the position changed.
func (c *Cursor) Next() bool {
	if len(c.checkpoints) == 0 {
		return false
	}
	if c.index+1 < len(c.checkpoints) {
		c.index++

		return true
	}
	if c.loopEnabled {
		c.index = 0

		return true
	}

	return false
}

// Previous is Next's mirror image.
func (c *Cursor) Previous() bool {
	if len(c.checkpoints) == 0 {
		return false
	}
	if c.index-1 >= 0 {
		c.index--

		return true
	}
	if c.loopEnabled {
		c.index = len(c.checkpoints) - 1

		return true
	}

	return false
}

// Seek moves directly to position i. InvalidCheckpoint if i is out of
// range.
func (c *Cursor) Seek(i int) error {
	if i < 0 || i >= len(c.checkpoints) {
		return errs.NewInvalidCheckpoint("cursor seek index out of range")
	}
	c.index = i

	return nil
}

// SeekToStart moves to position 0; a no-op if the cursor is empty.
func (c *Cursor) SeekToStart() {
	if len(c.checkpoints) == 0 {
		return
	}
	c.index = 0
}

// SeekToEnd moves to the last position; a no-op if the cursor is empty.
func (c *Cursor) SeekToEnd() {
	if len(c.checkpoints) == 0 {
		return
	}
	c.index = len(c.checkpoints) - 1
}

// Len returns the number of loaded checkpoints.
func (c *Cursor) Len() int {
	return len(c.checkpoints)
}

// Index returns the current position, or -1 if empty.
func (c *Cursor) Index() int {
	return c.index
}
