// Package sink defines the hand-off contract the producer uses to deliver
// filled buffers (spec §4.6/§6), plus a handful of concrete sinks: a no-op
// sink for tests, a file sink, a compressing decorator, and an
// asynchronous decorator that copies and queues for a background writer.
//
// The engine treats a sink as infallible: HandOff has no return value.
// Implementations that can fail (disk full, network error) must handle the
// failure internally — log and drop, count, or terminate — since there is
// no back-channel to the producer (spec §7).
package sink

// Sink receives a buffer image handed off by a Producer.
//
// buf includes the 8-byte little-endian length header written at buffer
// offset 0 (spec §6 "Buffer container format"). HandOff must finish reading
// buf before returning: the producer reuses the underlying array for the
// next buffer as soon as HandOff returns. A sink that wants to keep the
// bytes past its return (e.g. to hand them to another goroutine) must copy
// them first.
type Sink interface {
	HandOff(buf []byte)
}

// NoopSink discards every buffer handed to it. Useful for benchmarks and
// tests that only care about the producer's own bookkeeping.
type NoopSink struct{}

var _ Sink = NoopSink{}

// HandOff discards buf.
func (NoopSink) HandOff(buf []byte) {}
