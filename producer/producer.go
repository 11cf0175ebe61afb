// Package producer implements the double-buffered, per-thread log producer
// (spec §4.5): Append encodes one record into the active buffer, swapping
// to the other buffer and handing the filled one to a sink.Sink whenever a
// record would overrun it.
//
// A Producer must be owned and driven by exactly one goroutine for its
// entire lifetime (spec §5 "Scheduling"); it takes no lock on the hot path,
// so concurrent Append calls from multiple goroutines race.
package producer

import (
	"encoding/binary"

	"github.com/Shai-Koffman/binary-logger/clock"
	"github.com/Shai-Koffman/binary-logger/errs"
	"github.com/Shai-Koffman/binary-logger/format"
	"github.com/Shai-Koffman/binary-logger/internal/options"
	"github.com/Shai-Koffman/binary-logger/internal/pool"
	"github.com/Shai-Koffman/binary-logger/record"
	"github.com/Shai-Koffman/binary-logger/sink"
)

// MinCapacity is the smallest buffer capacity a Producer accepts.
//
// Spec §6 names CAP >= 16 as the bare construction minimum, but a fresh
// Producer's very first Append always emits a rebase marker frame before
// the triggering record (see Append), and both frames are checked against
// the same empty-buffer budget. A capacity that could hold 16 bytes but not
// the rebase frame (FrameHeaderSize + RebasePayloadSize = 16 bytes) plus at
// least the smallest possible record frame (FrameHeaderSize + a 1-byte
// zero-argument payload = 9 bytes) would accept construction and then
// reject every single Append with ErrRecordTooLarge — permanently unusable.
// MinCapacity is raised to guarantee the first Append always has room for
// both frames.
const MinCapacity = format.BufferHeaderSize +
	(format.FrameHeaderSize + format.RebasePayloadSize) +
	(format.FrameHeaderSize + 1)

// Producer owns two fixed-capacity buffers and appends record frames into
// whichever is active, swapping and handing the filled buffer to its sink
// when a record would overrun it.
type Producer struct {
	active   *pool.FixedBuffer
	inactive *pool.FixedBuffer
	pos      int
	capacity int
	snk      sink.Sink
	clk      *clock.Compressor
	bufPool  *pool.FixedBufferPool
	closed   bool
}

// Option configures a Producer at construction time.
type Option = options.Option[*Producer]

// WithClock overrides the Producer's timestamp compressor. Intended for
// tests that need deterministic rebase behavior; production callers should
// not need this.
func WithClock(c *clock.Compressor) Option {
	return options.NoError(func(p *Producer) { p.clk = c })
}

// New creates a Producer with the given buffer capacity and sink. capacity
// must be at least MinCapacity; sink must not be nil (spec §6).
func New(capacity int, snk sink.Sink, opts ...Option) (*Producer, error) {
	if capacity < MinCapacity {
		return nil, errs.ErrInvalidCapacity
	}
	if snk == nil {
		return nil, errs.ErrNilSink
	}

	bufPool := pool.ForCapacity(capacity)
	p := &Producer{
		active:   bufPool.Get(),
		inactive: bufPool.Get(),
		pos:      format.BufferHeaderSize,
		capacity: capacity,
		snk:      snk,
		clk:      clock.New(),
		bufPool:  bufPool,
	}

	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// Append encodes one record with the given format ID and arguments into
// the active buffer, swapping buffers first if the record would not fit.
//
// If the timestamp compressor rebases, Append first writes a dedicated
// rebase marker frame (record_type = format.TypeRebase) carrying the new
// absolute base tick, then writes the record itself with delta = 0 — see
// DESIGN.md for why a rebase gets its own frame rather than overloading the
// record's own payload.
func (p *Producer) Append(formatID uint16, args ...record.Arg) error {
	if p.closed {
		return errs.ErrClosed
	}

	delta, rebased := p.clk.Relative()

	if rebased {
		base, _ := p.clk.Base()
		rebaseSize := format.FrameHeaderSize + format.RebasePayloadSize
		if err := p.writeFrame(rebaseSize, func(dst []byte) (int, error) {
			return record.EncodeRebase(dst, uint64(base))
		}); err != nil {
			return err
		}
	}

	size, err := record.Size(args)
	if err != nil {
		return err
	}

	return p.writeFrame(size, func(dst []byte) (int, error) {
		return record.Encode(dst, format.TypeNormal, delta, formatID, args)
	})
}

// writeFrame swaps buffers if size would overrun the active buffer, then
// encodes into it via encode.
func (p *Producer) writeFrame(size int, encode func(dst []byte) (int, error)) error {
	if size > p.capacity-format.BufferHeaderSize {
		return errs.ErrRecordTooLarge
	}

	if p.pos+size > p.capacity {
		p.swap()
	}

	n, err := encode(p.active.B[p.pos:])
	if err != nil {
		return err
	}

	p.pos += n

	return nil
}

// swap writes the active buffer's length header (the number of frame bytes
// after the 8-byte header, spec §6), exchanges active and
// inactive, resets the write position, and synchronously hands the filled
// buffer to the sink (spec §4.5 "Swap").
func (p *Producer) swap() {
	binary.LittleEndian.PutUint64(p.active.B[0:8], uint64(p.pos-format.BufferHeaderSize))

	filled, filledLen := p.active, p.pos
	p.active, p.inactive = p.inactive, filled
	p.pos = format.BufferHeaderSize

	p.snk.HandOff(filled.B[:filledLen])
}

// Flush hands off the active buffer's contents if any record has been
// appended since the last Flush or Swap; otherwise it is a no-op (spec
// §4.5 "Flush").
func (p *Producer) Flush() error {
	if p.closed {
		return errs.ErrClosed
	}

	if p.pos > format.BufferHeaderSize {
		p.swap()
	}

	return nil
}

// Close flushes any pending records through the sink and releases the
// Producer's buffers back to the pool. Close is idempotent; calling Append
// or Flush after Close returns errs.ErrClosed.
func (p *Producer) Close() error {
	if p.closed {
		return nil
	}

	err := p.Flush()
	p.closed = true

	p.bufPool.Put(p.active)
	p.bufPool.Put(p.inactive)
	p.active = nil
	p.inactive = nil

	return err
}

// Pos returns the current write offset within the active buffer. Exposed
// for tests that assert on the producer's internal bookkeeping.
func (p *Producer) Pos() int {
	return p.pos
}

// Capacity returns the Producer's fixed buffer capacity.
func (p *Producer) Capacity() int {
	return p.capacity
}
