// Package clock compresses absolute ticks into the 16-bit relative deltas
// carried by each record frame.
//
// Most consecutive log events on one thread occur within a few microseconds
// of each other, so a 16-bit delta scaled by format.TicksPerUnit covers the
// typical inter-event gap using a quarter of the footprint of a full
// timestamp. When the delta would overflow, the compressor rebases: it
// remembers the new absolute tick as its base and reports rebased = true so
// the caller can emit a record_type = 1 frame carrying that base.
package clock

import (
	"github.com/Shai-Koffman/binary-logger/format"
	"github.com/Shai-Koffman/binary-logger/tick"
)

// Compressor converts absolute Ticks into 16-bit relative deltas. It is not
// safe for concurrent use: each producer owns exactly one Compressor,
// matching the one-thread-per-producer lifecycle in spec §5.
type Compressor struct {
	base    tick.Tick
	hasBase bool

	// nowFunc is tick.Now by default; tests substitute a deterministic
	// source to drive Relative across the rebase boundary without waiting
	// on real elapsed ticks.
	nowFunc func() tick.Tick
}

// New returns a Compressor with no base; the next call to Relative rebases.
func New() *Compressor {
	return &Compressor{nowFunc: tick.Now}
}

// Relative returns the compressed delta since the compressor's base, in
// format.TicksPerUnit units, along with whether this call rebased.
//
// The first call after construction or Reset always rebases (delta = 0).
// Thereafter, delta = (now - base) / TicksPerUnit; if that would exceed
// 65535, the compressor rebases to now instead of returning an invalid
// delta. A tick source that appears to move backward yields delta = 0
// rather than wrapping (tick.Tick.Sub saturates).
func (c *Compressor) Relative() (delta uint16, rebased bool) {
	now := c.nowFunc()

	if !c.hasBase {
		c.base = now
		c.hasBase = true

		return 0, true
	}

	raw := now.Sub(c.base) / format.TicksPerUnit
	if raw > 0xFFFF {
		c.base = now
		return 0, true
	}

	return uint16(raw), false
}

// Absolute returns the current tick directly, bypassing compression.
func (c *Compressor) Absolute() tick.Tick {
	return c.nowFunc()
}

// Base returns the compressor's current base tick and whether one has been
// established. It is used by the producer to fill a rebase frame's payload.
func (c *Compressor) Base() (base tick.Tick, ok bool) {
	return c.base, c.hasBase
}

// Reset clears the compressor's base; the next Relative call rebases.
func (c *Compressor) Reset() {
	c.hasBase = false
	c.base = 0
}
