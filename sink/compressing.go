package sink

import (
	"log"

	"github.com/Shai-Koffman/binary-logger/compress"
)

// CompressingSink compresses each buffer image with a compress.Codec before
// forwarding it to an inner sink. It is the wrapper sink spec.md §9 calls
// out as a legitimate, out-of-core-scope extension: the engine itself never
// compresses, but a sink is free to.
//
// Compression happens synchronously on the producer's thread, same as any
// other sink; pick a fast codec (compress.TypeS2 or compress.TypeLZ4) if
// hand-off latency matters more than ratio.
type CompressingSink struct {
	inner Sink
	codec compress.Codec
}

var _ Sink = (*CompressingSink)(nil)

// NewCompressingSink wraps inner with the given codec.
func NewCompressingSink(inner Sink, codec compress.Codec) *CompressingSink {
	return &CompressingSink{inner: inner, codec: codec}
}

// HandOff compresses buf and forwards the result to the inner sink. A
// compression error is logged and the buffer is dropped (spec §7: the sink
// has no back-channel).
func (s *CompressingSink) HandOff(buf []byte) {
	compressed, err := s.codec.Compress(buf)
	if err != nil {
		log.Printf("binlog: compressing sink dropped %d bytes: %v", len(buf), err)
		return
	}

	s.inner.HandOff(compressed)
}
