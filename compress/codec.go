package compress

import (
	"fmt"

	"github.com/tx2pack/tx2pack/format"
)

// Compressor compresses a serialized snapshot body.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller.
//   - Input slice is not modified.
//   - Internal buffers may be reused for efficiency.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a body previously produced by a Compressor
// using the same algorithm.
//
// Error conditions:
//   - Returns an error if input data is corrupted or invalid.
//   - Returns an error if decompression buffer allocation fails.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression for one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the given
// compression tag. level is only meaningful for Zstd (1..19, see
// ZstdCodec); it is ignored for None and Lz4.
func CreateCodec(compressionType format.CompressionType, level int) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoopCodec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(level), nil
	default:
		return nil, fmt.Errorf("compress: invalid compression type: %s", compressionType)
	}
}
