// Package compress provides optional compression codecs for sinks that want
// to shrink a handed-off buffer image before writing it to durable storage
// or across the network.
//
// The core producer never compresses (spec §1 scope: compression belongs to
// the external sink, not the engine). sink.CompressingSink wraps one of
// these codecs around an inner sink.
package compress

import "fmt"

// Type identifies a compression algorithm.
type Type uint8

const (
	TypeNone Type = iota
	TypeZstd
	TypeS2
	TypeLZ4
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeZstd:
		return "Zstd"
	case TypeS2:
		return "S2"
	case TypeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a buffer image.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Type]Codec{
	TypeNone: NewNoOpCompressor(),
	TypeZstd: NewZstdCompressor(),
	TypeS2:   NewS2Compressor(),
	TypeLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the given Type.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported compression type: %s", t)
}
