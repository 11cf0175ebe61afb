// Package record implements the on-buffer frame encoding described in spec
// §3-§4: a small fixed header (record type, delta, format id, payload
// length) followed by a length-prefixed argument list whose bytes are the
// raw in-memory representation of each value in host byte order.
package record

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Arg is one call-site argument, already reduced to its raw in-memory
// bytes.
//
// Values up to 8 bytes (every fixed-size primitive, and short strings) are
// stored inline in b; Arg is then a plain value type with no heap-backed
// fields, so constructing one and passing it through Producer.Append does
// not allocate as long as the call site's argument slice does not escape.
// Only a string or byte slice longer than 8 bytes falls back to extra,
// which reuses the string's own bytes (for String) or holds a private copy
// of the slice (for Bytes).
const inlineCap = 8

type Arg struct {
	b     [inlineCap]byte
	n     uint8
	extra []byte
}

// Len returns the number of raw bytes this argument occupies on the wire,
// excluding its 4-byte length prefix.
func (a Arg) Len() int {
	if a.extra != nil {
		return len(a.extra)
	}

	return int(a.n)
}

// bytes returns the argument's raw byte representation.
func (a Arg) bytes() []byte {
	if a.extra != nil {
		return a.extra
	}

	return a.b[:a.n]
}

// Bool encodes a boolean as a single byte. The decoder classifies any
// 1-byte argument as boolean (spec §4.7 step 7).
func Bool(v bool) Arg {
	var a Arg
	if v {
		a.b[0] = 1
	}
	a.n = 1

	return a
}

// Uint32 encodes an unsigned 32-bit integer in host byte order. The decoder
// classifies any 4-byte argument as a 32-bit integer.
func Uint32(v uint32) Arg {
	var a Arg
	binary.NativeEndian.PutUint32(a.b[:4], v)
	a.n = 4

	return a
}

// Int32 encodes a signed 32-bit integer in host byte order.
func Int32(v int32) Arg {
	return Uint32(uint32(v))
}

// Float64 encodes a 64-bit float in host byte order. The decoder classifies
// any 8-byte argument as a 64-bit float.
func Float64(v float64) Arg {
	var a Arg
	binary.NativeEndian.PutUint64(a.b[:8], math.Float64bits(v))
	a.n = 8

	return a
}

// Int64 encodes a signed 64-bit integer in host byte order.
//
// Its 8-byte width is indistinguishable from Float64 by the decoder's
// length-based classification (spec §9 "Design Notes" flags this as a known
// lossy heuristic). Prefer Int32 when the value fits, or format it to a
// string at the call site if it must decode unambiguously.
func Int64(v int64) Arg {
	return Float64(math.Float64frombits(uint64(v)))
}

// Float32 encodes a 32-bit float in host byte order.
//
// Its 4-byte width is indistinguishable from Int32 by the decoder (same
// caveat as Int64).
func Float32(v float32) Arg {
	return Uint32(math.Float32bits(v))
}

// String encodes a UTF-8 string as its raw bytes. Any argument whose length
// is not 1, 4 or 8 decodes as a string if its bytes are valid UTF-8.
//
// Strings of 8 bytes or fewer are copied inline; longer strings keep a
// reference to the string's own backing bytes (already allocated by the
// caller, not newly allocated here).
func String(v string) Arg {
	if len(v) <= inlineCap {
		var a Arg
		copy(a.b[:], v)
		a.n = uint8(len(v))

		return a
	}

	// The encoder only reads extra, so viewing the string's immutable bytes
	// directly is safe and avoids the copy a []byte(v) conversion makes.
	return Arg{extra: unsafe.Slice(unsafe.StringData(v), len(v))}
}

// Bytes encodes an opaque byte slice, copying it so the caller may reuse or
// mutate the source slice afterward. Decodes as a string if the bytes are
// valid UTF-8, otherwise as opaque bytes (spec §4.7 step 7).
func Bytes(v []byte) Arg {
	if len(v) <= inlineCap {
		var a Arg
		copy(a.b[:], v)
		a.n = uint8(len(v))

		return a
	}

	cp := make([]byte, len(v))
	copy(cp, v)

	return Arg{extra: cp}
}
