// Package compress implements the body compression stage of the snapshot
// encode/decode pipeline.
//
// # Overview
//
// Compression is applied once, to the fully serialized PackedSnapshot body,
// never to the header. Three codecs are supported, selected per snapshot
// and recorded in the header's compression tag byte:
//
//   - None: identity, zero overhead.
//   - Lz4: fast decompression, moderate ratio.
//   - Zstd(level): best ratio, tunable speed/ratio tradeoff via level 1-19.
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec builds the right Codec from a format.CompressionType tag plus
// a level (ignored except for Zstd).
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use; pooled
// encoders/decoders are synchronized internally.
package compress
