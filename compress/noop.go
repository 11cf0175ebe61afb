package compress

// NoOpCompressor bypasses compression entirely, returning the input as-is.
// Passed to sink.CompressingSink it forwards buffers unchanged; it is useful
// for baseline performance measurements or when the sink itself already
// compresses (e.g. a gzip-wrapped file writer).
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a no-op compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
