//go:build !amd64 && !arm64

package tick

import "time"

// epoch anchors Now to the wall-clock nanoseconds at package init; later
// reads advance by time.Since, which uses the monotonic clock reading and
// so never moves backward when the wall clock is adjusted.
var epoch = time.Now()

// Now returns a monotonic nanosecond counter on platforms without a
// dedicated fast hardware counter reader.
func Now() Tick {
	return Tick(epoch.UnixNano() + int64(time.Since(epoch)))
}
