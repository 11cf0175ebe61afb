package record

import (
	"encoding/binary"

	"github.com/Shai-Koffman/binary-logger/errs"
	"github.com/Shai-Koffman/binary-logger/format"
)

// PayloadSize returns the encoded payload size of args: one argument-count
// byte plus a 4-byte length prefix and raw bytes per argument. It returns
// errs.ErrTooManyArgs if len(args) exceeds format.MaxArgCount, or
// errs.ErrRecordTooLarge if the payload would exceed format.MaxPayloadLength.
func PayloadSize(args []Arg) (int, error) {
	if len(args) > format.MaxArgCount {
		return 0, errs.ErrTooManyArgs
	}

	size := 1
	for _, a := range args {
		size += 4 + a.Len()
	}

	if size > format.MaxPayloadLength {
		return 0, errs.ErrRecordTooLarge
	}

	return size, nil
}

// Size returns the total frame size (header + payload) for args.
func Size(args []Arg) (int, error) {
	payload, err := PayloadSize(args)
	if err != nil {
		return 0, err
	}

	return format.FrameHeaderSize + payload, nil
}

// Encode writes a normal record frame into dst, returning the number of
// bytes written. dst must be at least as large as Size(args); callers
// (typically the producer) check this before encoding so Encode itself
// never needs to grow anything.
func Encode(dst []byte, recordType format.RecordType, delta uint16, formatID uint16, args []Arg) (int, error) {
	payloadLen, err := PayloadSize(args)
	if err != nil {
		return 0, err
	}

	total := format.FrameHeaderSize + payloadLen
	if len(dst) < total {
		return 0, errs.ErrRecordTooLarge
	}

	dst[0] = byte(recordType)
	dst[1] = 0
	binary.LittleEndian.PutUint16(dst[2:4], delta)
	binary.LittleEndian.PutUint16(dst[4:6], formatID)
	binary.LittleEndian.PutUint16(dst[6:8], uint16(payloadLen))

	p := dst[format.FrameHeaderSize:total]
	p[0] = byte(len(args))
	off := 1
	for _, a := range args {
		raw := a.bytes()
		binary.LittleEndian.PutUint32(p[off:off+4], uint32(len(raw)))
		off += 4
		copy(p[off:off+len(raw)], raw)
		off += len(raw)
	}

	return total, nil
}

// EncodeRebase writes a rebase marker frame (record_type = format.TypeRebase)
// into dst. Its payload is the raw 8-byte absolute tick baseTick, per the
// spec §9 recommendation for the rebase-payload ambiguity; format_id and
// delta are both zero and carry no meaning for this frame.
func EncodeRebase(dst []byte, baseTick uint64) (int, error) {
	total := format.FrameHeaderSize + format.RebasePayloadSize
	if len(dst) < total {
		return 0, errs.ErrRecordTooLarge
	}

	dst[0] = byte(format.TypeRebase)
	dst[1] = 0
	binary.LittleEndian.PutUint16(dst[2:4], 0)
	binary.LittleEndian.PutUint16(dst[4:6], 0)
	binary.LittleEndian.PutUint16(dst[6:8], uint16(format.RebasePayloadSize))
	binary.LittleEndian.PutUint64(dst[format.FrameHeaderSize:total], baseTick)

	return total, nil
}
