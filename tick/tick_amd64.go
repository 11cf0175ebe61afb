//go:build amd64

package tick

// readTSC reads the CPU time-stamp counter via RDTSC. Implemented in
// tick_amd64.s.
func readTSC() uint64

// Now returns the current value of the CPU time-stamp counter.
//
// RDTSC is unsynchronized across cores on some older hardware and can run
// ahead or behind after a thread migrates between cores; Tick.Sub saturates
// at zero to absorb the rare backward jump rather than wrapping.
func Now() Tick {
	return Tick(readTSC())
}
