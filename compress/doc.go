// Package compress is ported from mebo's compress package and re-homed onto
// binlog's buffer images: the Codec interface and the None/S2/LZ4/Zstd
// implementations keep their shape. Codecs are keyed by this package's own
// Type rather than mebo's format enum, mebo's CreateCodec and
// CompressionStats are not included, and the cgo Zstd backend is selected
// with the cgozstd build tag.
package compress
