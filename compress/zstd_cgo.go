//go:build cgozstd

package compress

import "github.com/valyala/gozstd"

// ZstdCompressor compresses buffer images using valyala/gozstd, a cgo
// binding to the reference libzstd. Built only with -tags cgozstd; the
// default build uses the pure-Go klauspost/compress/zstd codec in
// zstd_pure.go so the module stays cgo-free unless explicitly requested.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a cgo-backed Zstd compressor.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Compress compresses data using libzstd at the default level.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses libzstd-compressed data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
