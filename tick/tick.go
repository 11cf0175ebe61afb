// Package tick reads the platform's highest-resolution monotonic counter.
//
// Tick is deliberately opaque: its frequency is platform-dependent and
// callers must not assume any particular ratio to wall-clock time. Only the
// format.TicksPerUnit divisor, applied by the clock package, gives ticks
// meaning, and only as a
// ratio between consecutive reads on the same thread.
package tick

// Tick is a hardware or OS monotonic counter value. It is comparable only to
// other Ticks read from the same machine and is not meaningful across
// process restarts or machines.
type Tick uint64

// Sub returns a-b, saturating at zero instead of wrapping if the counter
// ever appears to move backward (e.g. after a CPU migration on a platform
// with unsynchronized per-core counters).
func (a Tick) Sub(b Tick) Tick {
	if a < b {
		return 0
	}

	return a - b
}
