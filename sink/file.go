package sink

import (
	"io"
	"log"
)

// FileSink writes each handed-off buffer straight through to an io.Writer
// (typically an *os.File opened in append mode). Writes happen synchronously
// on the producer's thread, per the sink contract; a producer backed by a
// slow disk will block on HandOff for as long as the write takes.
type FileSink struct {
	w io.Writer
}

var _ Sink = (*FileSink)(nil)

// NewFileSink wraps w as a Sink.
func NewFileSink(w io.Writer) *FileSink {
	return &FileSink{w: w}
}

// HandOff writes buf to the underlying writer. A write error is logged and
// the buffer is dropped: the sink contract gives the producer no back
// channel to report failure (spec §7).
func (s *FileSink) HandOff(buf []byte) {
	if _, err := s.w.Write(buf); err != nil {
		log.Printf("binlog: file sink dropped %d bytes: %v", len(buf), err)
	}
}
