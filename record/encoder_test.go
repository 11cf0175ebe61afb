package record

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Shai-Koffman/binary-logger/errs"
	"github.com/Shai-Koffman/binary-logger/format"
)

func TestEncode_SingleIntegerRoundTripLayout(t *testing.T) {
	args := []Arg{Int32(42)}
	size, err := Size(args)
	require.NoError(t, err)

	dst := make([]byte, size)
	n, err := Encode(dst, format.TypeNormal, 0, 7, args)
	require.NoError(t, err)
	require.Equal(t, size, n)

	require.Equal(t, byte(format.TypeNormal), dst[0])
	require.Equal(t, byte(0), dst[1])
	require.Equal(t, uint16(0), binary.LittleEndian.Uint16(dst[2:4]))
	require.Equal(t, uint16(7), binary.LittleEndian.Uint16(dst[4:6]))

	payloadLen := binary.LittleEndian.Uint16(dst[6:8])
	require.Equal(t, uint16(1+4+4), payloadLen) // argCount + len-prefix + 4-byte int

	payload := dst[8 : 8+payloadLen]
	require.Equal(t, byte(1), payload[0])
	require.Equal(t, uint32(4), binary.LittleEndian.Uint32(payload[1:5]))
}

func TestEncode_MultiArgumentPayloadLayout(t *testing.T) {
	// scenario 6: i32, bool, f64
	args := []Arg{Int32(1), Bool(true), Float64(2.5)}
	size, err := Size(args)
	require.NoError(t, err)

	dst := make([]byte, size)
	_, err = Encode(dst, format.TypeNormal, 3, 1, args)
	require.NoError(t, err)

	payloadLen := binary.LittleEndian.Uint16(dst[6:8])
	payload := dst[8 : 8+payloadLen]

	require.Equal(t, byte(3), payload[0]) // arg_count

	off := 1
	require.Equal(t, uint32(4), binary.LittleEndian.Uint32(payload[off:off+4]))
	off += 4
	off += 4 // skip the i32 bytes

	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(payload[off:off+4]))
	off += 4
	require.Equal(t, byte(1), payload[off]) // bool true
	off += 1

	require.Equal(t, uint32(8), binary.LittleEndian.Uint32(payload[off:off+4]))
	off += 4
	off += 8

	require.Equal(t, int(payloadLen), off)
}

func TestEncode_TooManyArgs(t *testing.T) {
	args := make([]Arg, 256)
	for i := range args {
		args[i] = Bool(true)
	}

	_, err := Size(args)
	require.True(t, errors.Is(err, errs.ErrTooManyArgs))
}

func TestEncode_PayloadTooLarge(t *testing.T) {
	big := string(make([]byte, 2000))
	_, err := Size([]Arg{String(big)})
	require.True(t, errors.Is(err, errs.ErrRecordTooLarge))
}

func TestEncode_DestinationTooSmall(t *testing.T) {
	args := []Arg{Int32(1)}
	dst := make([]byte, 4)
	_, err := Encode(dst, format.TypeNormal, 0, 1, args)
	require.Error(t, err)
}

func TestEncodeRebase_Layout(t *testing.T) {
	dst := make([]byte, 16)
	n, err := EncodeRebase(dst, 0x0102030405060708)
	require.NoError(t, err)
	require.Equal(t, 16, n)

	require.Equal(t, byte(format.TypeRebase), dst[0])
	require.Equal(t, uint16(0), binary.LittleEndian.Uint16(dst[2:4]))
	require.Equal(t, uint16(format.RebasePayloadSize), binary.LittleEndian.Uint16(dst[6:8]))
	require.Equal(t, uint64(0x0102030405060708), binary.LittleEndian.Uint64(dst[8:16]))
}

func TestArg_EmptyStringZeroLen(t *testing.T) {
	a := String("")
	require.Equal(t, 0, a.Len())
}
