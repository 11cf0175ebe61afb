//go:build arm64

package tick

// readCNTVCT reads the architectural virtual counter register. Implemented
// in tick_arm64.s.
func readCNTVCT() uint64

// Now returns the current value of the ARM generic timer's virtual counter.
func Now() Tick {
	return Tick(readCNTVCT())
}
