package decoder

import (
	"encoding/binary"
	"errors"
	"io"
	"iter"
	"math"
	"unicode/utf8"

	"github.com/Shai-Koffman/binary-logger/errs"
	"github.com/Shai-Koffman/binary-logger/format"
	"github.com/Shai-Koffman/binary-logger/registry"
)

// Decoder reads a concatenated run of buffer images and reconstructs
// timestamped Entry values. It is constructed around a read-only byte
// slice and holds no mutable global state beyond its own cursor and
// rebase bookkeeping (spec §4.2 "Lifecycle").
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	data   []byte
	cursor int
	bufEnd int

	baseTimestamp uint64
	hasBase       bool

	reg *registry.Registry
}

// New returns a Decoder over data, resolving format IDs against reg. Pass
// registry.Global() to decode a stream produced by producers that interned
// their format strings in the process-wide registry.
func New(data []byte, reg *registry.Registry) *Decoder {
	return &Decoder{data: data, reg: reg}
}

// ReadEntry returns the next entry in the stream. It returns io.EOF once
// every buffer image has been fully consumed, and errs.ErrMalformedStream
// if a frame has an unrecognized record_type or is truncated before its
// declared fields end (spec §4.7 step 2 and §7). Bytes already decoded
// before a malformed frame remain valid; the caller simply stops calling
// ReadEntry.
func (d *Decoder) ReadEntry() (Entry, error) {
	for {
		if d.cursor >= d.bufEnd {
			if err := d.advanceBuffer(); err != nil {
				return Entry{}, err
			}
			if d.cursor >= d.bufEnd {
				// Buffer image with zero frames; move to the next one.
				continue
			}
		}

		entry, isRebase, err := d.readFrame()
		if err != nil {
			return Entry{}, err
		}
		if isRebase {
			continue
		}

		return entry, nil
	}
}

// advanceBuffer positions the cursor past the next 8-byte buffer header,
// clamping the declared length to the bytes actually remaining.
func (d *Decoder) advanceBuffer() error {
	if d.cursor >= len(d.data) {
		return io.EOF
	}

	if len(d.data)-d.cursor < format.BufferHeaderSize {
		return errs.ErrMalformedStream
	}

	length := binary.LittleEndian.Uint64(d.data[d.cursor : d.cursor+format.BufferHeaderSize])
	d.cursor += format.BufferHeaderSize

	end := d.cursor + int(length)
	if end > len(d.data) || length > uint64(len(d.data)) {
		end = len(d.data)
	}
	d.bufEnd = end

	return nil
}

// readFrame decodes one frame at the cursor, advancing it past the frame.
// isRebase reports whether the frame was a rebase marker, in which case
// entry is the zero value and the caller should keep reading.
func (d *Decoder) readFrame() (entry Entry, isRebase bool, err error) {
	if d.bufEnd-d.cursor < format.FrameHeaderSize {
		return Entry{}, false, errs.ErrMalformedStream
	}

	hdr := d.data[d.cursor : d.cursor+format.FrameHeaderSize]
	recordType := format.RecordType(hdr[0])
	if !recordType.Valid() {
		return Entry{}, false, errs.ErrMalformedStream
	}

	delta := binary.LittleEndian.Uint16(hdr[2:4])
	formatID := binary.LittleEndian.Uint16(hdr[4:6])
	payloadLen := int(binary.LittleEndian.Uint16(hdr[6:8]))

	payloadStart := d.cursor + format.FrameHeaderSize
	avail := d.bufEnd - payloadStart
	if payloadLen > avail {
		payloadLen = avail // defensive clamp, spec §4.7 step 4
	}

	payload := d.data[payloadStart : payloadStart+payloadLen]

	if recordType == format.TypeRebase {
		if len(payload) < format.RebasePayloadSize {
			return Entry{}, false, errs.ErrMalformedStream
		}

		d.baseTimestamp = binary.LittleEndian.Uint64(payload[:format.RebasePayloadSize])
		d.hasBase = true
		d.cursor = payloadStart + payloadLen

		return Entry{}, true, nil
	}

	args, err := parseArgs(payload)
	if err != nil {
		return Entry{}, false, err
	}

	var timestamp uint64
	if d.hasBase {
		timestamp = d.baseTimestamp + uint64(delta)
	}

	formatString, known := "", false
	if d.reg != nil {
		formatString, known = d.reg.Resolve(formatID)
	}

	d.cursor = payloadStart + payloadLen

	return Entry{
		Timestamp:    timestamp,
		FormatID:     formatID,
		FormatString: formatString,
		FormatKnown:  known,
		Args:         args,
	}, false, nil
}

// parseArgs decodes payload's arg_count followed by that many (u32 length,
// raw bytes) pairs, classifying each by length (spec §4.7 step 7).
func parseArgs(payload []byte) ([]Arg, error) {
	if len(payload) < 1 {
		return nil, errs.ErrMalformedStream
	}

	count := int(payload[0])
	args := make([]Arg, 0, count)
	off := 1

	for i := 0; i < count; i++ {
		if off+4 > len(payload) {
			return nil, errs.ErrMalformedStream
		}

		length := int(binary.LittleEndian.Uint32(payload[off : off+4]))
		off += 4

		if length < 0 || off+length > len(payload) {
			return nil, errs.ErrMalformedStream
		}

		raw := payload[off : off+length]
		off += length

		args = append(args, classify(raw))
	}

	return args, nil
}

// classify applies the size-based heuristic from spec §4.7 step 7.
//
// 4- and 8-byte arguments are read with binary.NativeEndian, matching how
// record.Uint32/Int32/Float64/Int64/Float32 write them (spec §3: "argument
// payload is host-endian raw bytes"). Only the frame header fields (delta,
// format_id, payload_length) are normatively little-endian; argument bytes
// are not.
func classify(raw []byte) Arg {
	switch len(raw) {
	case 1:
		return Arg{Kind: KindBool, Bool: raw[0] != 0}
	case 4:
		return Arg{Kind: KindInt32, Int32: int32(binary.NativeEndian.Uint32(raw))}
	case 8:
		return Arg{Kind: KindFloat64, Float: math.Float64frombits(binary.NativeEndian.Uint64(raw))}
	default:
		if utf8.Valid(raw) {
			return Arg{Kind: KindString, Str: string(raw)}
		}

		cp := make([]byte, len(raw))
		copy(cp, raw)

		return Arg{Kind: KindBytes, Bytes: cp}
	}
}

// IsExhausted reports whether err signals a clean end of stream, as
// opposed to a malformed frame.
func IsExhausted(err error) bool {
	return errors.Is(err, io.EOF)
}

// All returns an iterator over the decoder's remaining entries, stopping
// silently at a clean end of stream and stopping the range (without a
// panic) if a malformed frame is hit; entries decoded before a malformed
// frame are still yielded. Callers that need to distinguish the two ends
// should drive ReadEntry directly instead.
func (d *Decoder) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for {
			entry, err := d.ReadEntry()
			if err != nil {
				return
			}

			if !yield(entry) {
				return
			}
		}
	}
}
